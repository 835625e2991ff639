package search

import (
	"os"
	"path/filepath"
	"testing"

	"promptdex/internal/errors"
	"promptdex/internal/pipeline"
)

func TestLoadCorpus_Missing(t *testing.T) {
	_, err := LoadCorpus(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing master file")
	}
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("error code = %v, want NOT_FOUND", err)
	}
}

func TestLoadCorpus_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	master := `[{"Prompt":"a tiny sailboat in a teacup ocean","_category":"general"}]`
	if err := os.WriteFile(filepath.Join(dir, pipeline.MasterFileName), []byte(master), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadCorpus(dir)
	if err != nil {
		t.Fatalf("LoadCorpus failed: %v", err)
	}
	if len(records) != 1 || records[0].Category() != "general" {
		t.Errorf("records = %v", records)
	}
}

func TestLoadStats_MissingYieldsEmpty(t *testing.T) {
	stats, err := LoadStats(t.TempDir())
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("stats = %v, want empty", stats)
	}
}

func TestLoadStats_Malformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, pipeline.StatsFileName), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadStats(dir)
	if !errors.Is(err, errors.ErrParseFailed) {
		t.Errorf("error = %v, want PARSE_FAILED", err)
	}
}
