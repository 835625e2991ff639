package pipeline

import (
	"strings"
	"unicode/utf8"

	"promptdex/internal/record"
)

// minPromptChars is the final content gate: every record in the master file
// has a best text at least this long.
const minPromptChars = 30

// NoisePhrases are placeholder texts that mark a record as noise when the
// trimmed lowercase text equals the phrase or starts with "<phrase>...".
var NoisePhrases = []string{
	"coming soon", "new page", "placeholder", "lorem ipsum",
	"test", "untitled", "example",
}

// FilterNoise removes placeholder, empty, and too-short records. Order is
// preserved for survivors.
func FilterNoise(records []record.Record) ([]record.Record, int) {
	clean := make([]record.Record, 0, len(records))
	removed := 0

	for _, rec := range records {
		text := rec.BestText()
		if utf8.RuneCountInString(text) < minPromptChars {
			removed++
			continue
		}
		if isPlaceholder(text) {
			removed++
			continue
		}
		clean = append(clean, rec)
	}

	return clean, removed
}

// isPlaceholder reports whether the text is one of the known placeholder
// phrases.
func isPlaceholder(text string) bool {
	lower := strings.TrimSpace(strings.ToLower(text))
	for _, phrase := range NoisePhrases {
		if lower == phrase || strings.HasPrefix(lower, phrase+"...") {
			return true
		}
	}
	return false
}
