package pipeline

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"promptdex/internal/classify"
	"promptdex/internal/errors"
	"promptdex/internal/extract"
	"promptdex/internal/record"
)

// Output artifact names. The master and stats files are the read contract
// for the downstream search tool; category files are partitioned copies.
const (
	MasterFileName   = "all_prompts.json"
	StatsFileName    = "stats.json"
	CategoryFileName = "prompts.json"
	manifestFileName = "manifest.json"
)

// RunInput contains parameters for a pipeline run.
type RunInput struct {
	InputDir  string
	OutputDir string
}

// Run processes every capture file in the input directory and writes the
// categorized corpus: one JSON array per category, the master file, and the
// statistics file. Captures are processed in sorted filename order; that
// order decides which duplicate becomes canonical.
func Run(input RunInput, logger *zap.Logger) (*Stats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	paths, err := filepath.Glob(filepath.Join(input.InputDir, "*.json"))
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if len(paths) == 0 {
		return nil, errors.NewNotFound(fmt.Sprintf("no capture files in %s", input.InputDir))
	}

	if err := os.MkdirAll(input.OutputDir, 0o755); err != nil {
		return nil, errors.NewInternal(err)
	}

	allPrompts := make([]record.Record, 0)
	tableStats := make(map[string]TableStat)

	for _, path := range paths {
		if filepath.Base(path) == manifestFileName {
			continue
		}
		tableKey := strippedStem(path)

		capture, err := extract.LoadCapture(path)
		if err != nil {
			return nil, err
		}

		tableName := capture.Name
		if tableName == "" {
			tableName = tableKey
		}

		// API extraction is preferred; scroll text is the fallback.
		prompts := extract.FromAPI(capture)
		source := "api"
		if len(prompts) == 0 {
			prompts = extract.FromScroll(capture)
			source = "scroll"
		}

		for _, p := range prompts {
			p[record.FieldSourceTable] = tableKey
			p[record.FieldSourceName] = tableName
		}

		logger.Info("extracted table",
			zap.String("table", tableKey),
			zap.String("source", source),
			zap.Int("prompts", len(prompts)),
		)

		tableStats[tableKey] = TableStat{
			Name:       tableName,
			Source:     source,
			RawPrompts: len(prompts),
		}
		allPrompts = append(allPrompts, prompts...)
	}

	unique, dupes := Deduplicate(allPrompts)
	logger.Info("deduplicated",
		zap.Int("total_raw", len(allPrompts)),
		zap.Int("unique", len(unique)),
		zap.Int("duplicates", dupes),
	)

	clean, noiseRemoved := FilterNoise(unique)
	logger.Info("filtered noise",
		zap.Int("removed", noiseRemoved),
		zap.Int("clean", len(clean)),
	)

	categories := make(map[string][]record.Record)
	models := make(CountMap)
	outputTypes := make(CountMap)

	for _, rec := range clean {
		cat, meta := classify.Categorize(rec)
		rec[record.FieldCategory] = cat
		if meta.Model != "" {
			rec[record.FieldModel] = meta.Model
			models[meta.Model]++
		} else {
			rec[record.FieldModel] = nil
		}
		rec[record.FieldOutputType] = meta.OutputType
		if len(meta.Styles) > 0 {
			rec[record.FieldStyles] = meta.Styles
		}
		categories[cat] = append(categories[cat], rec)
		outputTypes[meta.OutputType]++
	}
	logger.Info("categorized", zap.Int("categories", len(categories)))

	for cat, catPrompts := range categories {
		catDir := filepath.Join(input.OutputDir, cat)
		if err := os.MkdirAll(catDir, 0o755); err != nil {
			return nil, errors.NewInternal(err)
		}
		if err := writeJSON(filepath.Join(catDir, CategoryFileName), catPrompts); err != nil {
			return nil, err
		}
	}

	if err := writeJSON(filepath.Join(input.OutputDir, MasterFileName), clean); err != nil {
		return nil, err
	}

	categoryCounts := make(CountMap, len(categories))
	for cat, catPrompts := range categories {
		categoryCounts[cat] = len(catPrompts)
	}

	stats := &Stats{
		ProcessedAt:       time.Now().Format("2006-01-02 15:04:05"),
		RunID:             newRunID(),
		TotalRaw:          len(allPrompts),
		TotalUnique:       len(clean),
		DuplicatesRemoved: dupes,
		NoiseRemoved:      noiseRemoved,
		Categories:        categoryCounts,
		Models:            models,
		OutputTypes:       outputTypes,
		Tables:            tableStats,
	}

	if err := writeJSON(filepath.Join(input.OutputDir, StatsFileName), stats); err != nil {
		return nil, err
	}

	logger.Info("pipeline complete",
		zap.String("master", filepath.Join(input.OutputDir, MasterFileName)),
		zap.Int("total_unique", stats.TotalUnique),
	)

	return stats, nil
}

// writeJSON writes v as indented JSON without HTML escaping, so prompt text
// survives byte-for-byte.
func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewInternal(err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return errors.NewInternal(err)
	}
	if err := f.Close(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// strippedStem returns the filename without directory or extension; it is
// the capture's table key.
func strippedStem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// newRunID generates a ULID identifying one pipeline run.
func newRunID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
