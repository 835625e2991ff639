package search

import (
	"sort"
	"strings"

	"promptdex/internal/record"
)

// DefaultLimit caps result counts when the caller does not specify one.
const DefaultLimit = 10

// Input contains parameters for the Search operation.
type Input struct {
	Query      string
	Category   string
	Model      string
	OutputType string
	Limit      int
	Full       bool
}

// Filters echoes the applied filters in the output.
type Filters struct {
	Category *string `json:"category"`
	Model    *string `json:"model"`
	Type     *string `json:"type"`
}

// Output contains the result of the Search operation.
type Output struct {
	Query   *string           `json:"query"`
	Filters Filters           `json:"filters"`
	Count   int               `json:"count"`
	Results []FormattedPrompt `json:"results"`
}

// Search scores prompts against the query words with optional filters.
// Each query word present in the searchable text counts one point, with a
// two-point bonus per word when the full phrase also appears. Ties keep
// corpus order.
func Search(records []record.Record, input Input) *Output {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	queryLower := strings.ToLower(strings.TrimSpace(input.Query))
	queryWords := strings.Fields(queryLower)

	type scored struct {
		score int
		rec   record.Record
	}
	var results []scored

	for _, rec := range records {
		if !matchesFilters(rec, input.Category, input.Model, input.OutputType) {
			continue
		}

		if len(queryWords) == 0 {
			results = append(results, scored{0, rec})
			continue
		}

		searchable := searchableText(rec)
		score := 0
		for _, word := range queryWords {
			if strings.Contains(searchable, word) {
				score++
				if strings.Contains(searchable, queryLower) {
					score += 2
				}
			}
		}
		if score == 0 {
			continue
		}
		results = append(results, scored{score, rec})
	}

	if len(queryWords) > 0 {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].score > results[j].score
		})
	}

	if len(results) > limit {
		results = results[:limit]
	}

	formatted := make([]FormattedPrompt, len(results))
	for i, r := range results {
		formatted[i] = Format(r.rec, i+1, input.Full)
	}

	out := &Output{
		Filters: Filters{
			Category: optional(input.Category),
			Model:    optional(input.Model),
			Type:     optional(input.OutputType),
		},
		Count:   len(formatted),
		Results: formatted,
	}
	if input.Query != "" {
		out.Query = &input.Query
	}
	return out
}

// matchesFilters applies the category/model/type filters, all
// case-insensitive exact matches.
func matchesFilters(rec record.Record, category, model, outputType string) bool {
	if category != "" && !strings.EqualFold(rec.Category(), category) {
		return false
	}
	if model != "" && !strings.EqualFold(rec.Model(), model) {
		return false
	}
	if outputType != "" && !strings.EqualFold(rec.OutputType(), outputType) {
		return false
	}
	return true
}

// searchableText builds the lowercased haystack for one record: best text
// plus tags, styles, and name.
func searchableText(rec record.Record) string {
	parts := []string{strings.ToLower(rec.BestText())}
	if tags := rec.StringList("Tags/Styles"); len(tags) > 0 {
		parts = append(parts, strings.ToLower(strings.Join(tags, " ")))
	}
	if styles := rec.StringList(record.FieldStyles); len(styles) > 0 {
		parts = append(parts, strings.ToLower(strings.Join(styles, " ")))
	}
	parts = append(parts, strings.ToLower(rec.Str("Name")))
	return strings.Join(parts, " ")
}

// optional returns nil for an empty filter value so it serializes as null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
