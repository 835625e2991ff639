package pipeline

import (
	"bytes"
	"encoding/json"
	"sort"
)

// CountMap is a name→count mapping that serializes its keys in descending
// count order (ties broken by name) so the stats file reads highest-first.
type CountMap map[string]int

// MarshalJSON implements json.Marshaler with the descending-count ordering.
func (c CountMap) MarshalJSON() ([]byte, error) {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(c))
	for name, count := range c {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		count, err := json.Marshal(e.count)
		if err != nil {
			return nil, err
		}
		buf.Write(count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TableStat summarizes extraction from one capture.
type TableStat struct {
	Name       string `json:"name"`
	Source     string `json:"source"`
	RawPrompts int    `json:"raw_prompts"`
}

// Stats is the aggregate result of a pipeline run, persisted as stats.json.
// The downstream search tool depends on total_unique, categories, models,
// output_types, and tables staying stable.
type Stats struct {
	ProcessedAt       string               `json:"processed_at"`
	RunID             string               `json:"run_id"`
	TotalRaw          int                  `json:"total_raw"`
	TotalUnique       int                  `json:"total_unique"`
	DuplicatesRemoved int                  `json:"duplicates_removed"`
	NoiseRemoved      int                  `json:"noise_removed"`
	Categories        CountMap             `json:"categories"`
	Models            CountMap             `json:"models"`
	OutputTypes       CountMap             `json:"output_types"`
	Tables            map[string]TableStat `json:"tables"`
}
