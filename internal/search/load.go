// Package search implements the read-only query operations over the
// processed corpus: filtered full-text search, random picks, and the stats
// views. It consumes exactly the master file and stats file.
package search

import (
	"encoding/json"
	"os"
	"path/filepath"

	"promptdex/internal/errors"
	"promptdex/internal/pipeline"
	"promptdex/internal/record"
)

// LoadCorpus loads the master prompt file from the corpus directory.
// A missing master file is the one designed hard failure of the query side.
func LoadCorpus(dir string) ([]record.Record, error) {
	path := filepath.Join(dir, pipeline.MasterFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(path)
		}
		return nil, errors.NewInternal(err)
	}

	var records []record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.NewParseFailed(path, err)
	}
	return records, nil
}

// LoadStats loads the statistics file. A missing file yields an empty map,
// not an error.
func LoadStats(dir string) (map[string]any, error) {
	path := filepath.Join(dir, pipeline.StatsFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, errors.NewInternal(err)
	}

	var stats map[string]any
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, errors.NewParseFailed(path, err)
	}
	return stats, nil
}
