package search

import (
	"math/rand"
	"strings"

	"promptdex/internal/errors"
	"promptdex/internal/record"
)

// RandomInput contains parameters for the Random operation.
type RandomInput struct {
	Category string
	Model    string
}

// Random picks one prompt at random from the records matching the filters,
// formatted with full text.
func Random(records []record.Record, input RandomInput) (*FormattedPrompt, error) {
	filtered := records
	if input.Category != "" {
		filtered = keep(filtered, func(r record.Record) bool {
			return strings.EqualFold(r.Category(), input.Category)
		})
	}
	if input.Model != "" {
		filtered = keep(filtered, func(r record.Record) bool {
			return strings.EqualFold(r.Model(), input.Model)
		})
	}
	if len(filtered) == 0 {
		return nil, errors.NewNotFound("no prompts match the filters")
	}

	choice := filtered[rand.Intn(len(filtered))]
	f := Format(choice, 0, true)
	return &f, nil
}

func keep(records []record.Record, pred func(record.Record) bool) []record.Record {
	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
