package record

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
)

// fingerprintLen is the number of hex digits kept from the hash. Twelve
// digits are plenty for corpus-scale collision resistance while keeping the
// key short in the output files.
const fingerprintLen = 12

var (
	// whitespaceRe matches one or more whitespace characters.
	whitespaceRe = regexp.MustCompile(`\s+`)

	// punctuationRe matches anything that is neither a word character nor
	// whitespace. Unicode letters and digits count as word characters so
	// non-ASCII prompt text survives normalization.
	punctuationRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

// NormalizeText applies the fingerprint normalization: trim, lowercase,
// collapse whitespace, strip punctuation. Near-duplicate prompt texts
// normalize to the same string.
func NormalizeText(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = punctuationRe.ReplaceAllString(s, "")
	return s
}

// Fingerprint computes the content fingerprint used as the deduplication
// key. Collision of fingerprints is the deliberate coarse-equality
// criterion for near-duplicate records.
func Fingerprint(text string) string {
	sum := md5.Sum([]byte(NormalizeText(text)))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}
