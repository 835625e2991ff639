// Package pipeline orchestrates the batch transform: extraction across all
// captures, deduplication, noise filtering, categorization, and the output
// files. Single-threaded and deterministic: reprocessing the same input set
// yields the same corpus, with the first occurrence of a duplicate winning.
package pipeline

import (
	"unicode/utf8"

	"promptdex/internal/record"
)

// minDedupTextChars drops records with no usable text before they can claim
// a fingerprint. Such records are not counted as duplicates.
const minDedupTextChars = 20

// Deduplicate merges records that share a content fingerprint. The first
// record seen with a given fingerprint is kept as canonical and stays at
// its position in the output; each later record with the same fingerprint
// increments the duplicate count and is merged into the canonical record;
// only fields absent or null on the canonical are copied over. The
// canonical record's _sources accumulates every contributor's source table
// tag in merge order.
func Deduplicate(records []record.Record) ([]record.Record, int) {
	seen := make(map[string]record.Record)
	unique := make([]record.Record, 0, len(records))
	dupes := 0

	for _, rec := range records {
		text := rec.DedupText()
		if text == "" || utf8.RuneCountInString(text) < minDedupTextChars {
			continue
		}

		fp := record.Fingerprint(text)
		if canonical, ok := seen[fp]; ok {
			dupes++
			canonical.Merge(rec)
			canonical.AddSource(rec.SourceTable())
			continue
		}

		rec.AddSource(rec.SourceTable())
		seen[fp] = rec
		unique = append(unique, rec)
	}

	return unique, dupes
}
