// Package record defines the open-schema prompt record that flows through
// the extraction pipeline. A record is a mapping from field name to value;
// field presence is per-source, not global, so consumers go through the
// typed accessors instead of reaching into the map.
package record

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Bookkeeping field names. Every bookkeeping key carries the underscore
// prefix so it can be told apart from source columns.
const (
	FieldID          = "_id"
	FieldTableID     = "_table_id"
	FieldSource      = "_source"
	FieldSourceTable = "_source_table"
	FieldSourceName  = "_source_name"
	FieldSources     = "_sources"
	FieldCategory    = "_category"
	FieldModel       = "_model"
	FieldOutputType  = "_output_type"
	FieldStyles      = "_styles"
	FieldImageURL    = "_image_url"
)

// BookkeepingPrefix marks reserved field names.
const BookkeepingPrefix = "_"

// TextFieldPriority is the fixed priority list used to resolve a record's
// primary text. Downstream consumers (search, dedup, classification) depend
// on this exact list and order.
var TextFieldPriority = []string{
	"Prompt", "prompt", "Full Prompt", "\U0001F916Full Prompt",
	"Extract Prompt", "Description", "description",
	"Prompt Example", "\U0001F4DDQuick Description", "Text", "text",
}

// Record is one normalized unit of extracted content plus its provenance
// and classification tags.
type Record map[string]any

// Str returns the string value stored under key, or "" if the field is
// absent or not a string.
func (r Record) Str(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// StringList returns the field as a string slice. It accepts both native
// []string values and the []any shape produced by a JSON round-trip.
func (r Record) StringList(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprintf("%v", e))
			}
		}
		return out
	}
	return nil
}

// SourceTable returns the key of the capture the record came from.
func (r Record) SourceTable() string {
	return r.Str(FieldSourceTable)
}

// Category returns the assigned category tag, or "" before classification.
func (r Record) Category() string {
	return r.Str(FieldCategory)
}

// Model returns the detected generative model, or "" when none was detected.
func (r Record) Model() string {
	return r.Str(FieldModel)
}

// OutputType returns the classified output type (image, video, text, generator).
func (r Record) OutputType() string {
	return r.Str(FieldOutputType)
}

// BestText resolves the record's primary content: the first priority field
// holding a string longer than 10 characters, else the longest string value
// among non-bookkeeping fields.
func (r Record) BestText() string {
	for _, key := range TextFieldPriority {
		if s, ok := r[key].(string); ok && utf8.RuneCountInString(s) > 10 {
			return s
		}
	}
	longest := ""
	for _, key := range r.sortedKeys() {
		if strings.HasPrefix(key, BookkeepingPrefix) {
			continue
		}
		if s, ok := r[key].(string); ok && len(s) > len(longest) {
			longest = s
		}
	}
	return longest
}

// DedupText resolves the text used for fingerprinting. Unlike BestText it
// takes the first priority field regardless of length, and its fallback
// scans every string field including bookkeeping ones.
func (r Record) DedupText() string {
	for _, key := range TextFieldPriority {
		if s, ok := r[key].(string); ok {
			return s
		}
	}
	longest := ""
	for _, key := range r.sortedKeys() {
		if s, ok := r[key].(string); ok && len(s) > len(longest) {
			longest = s
		}
	}
	return longest
}

// Merge copies every field from other that is absent or null on r.
// Existing non-null fields on r always win (first-seen-wins per field).
func (r Record) Merge(other Record) {
	for k, v := range other {
		if existing, ok := r[k]; !ok || existing == nil {
			r[k] = v
		}
	}
}

// EnsureSources guarantees the _sources field exists as a string slice.
func (r Record) EnsureSources() {
	if _, ok := r[FieldSources].([]string); !ok {
		r[FieldSources] = []string{}
	}
}

// AddSource appends a contributing table key to _sources. Duplicates are
// kept; the slice records merge order, not set membership.
func (r Record) AddSource(tag string) {
	r.EnsureSources()
	if tag == "" {
		return
	}
	r[FieldSources] = append(r[FieldSources].([]string), tag)
}

// sortedKeys returns the record's field names in sorted order so that
// longest-field fallbacks are deterministic across runs.
func (r Record) sortedKeys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
