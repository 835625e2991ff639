package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_OverlayWins(t *testing.T) {
	dir := t.TempDir()
	content := `{"corpus_dir": "/data/prompts", "search_limit": 25}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CorpusDir != "/data/prompts" {
		t.Errorf("CorpusDir = %q", cfg.CorpusDir)
	}
	if cfg.SearchLimit != 25 {
		t.Errorf("SearchLimit = %d", cfg.SearchLimit)
	}
	// Unset fields keep their defaults.
	if cfg.RawDir != "raw" {
		t.Errorf("RawDir = %q, want raw", cfg.RawDir)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestMerge_DisabledToolsDeduplicated(t *testing.T) {
	base := &Config{DisabledTools: []string{"prompt_random", " prompt_stats "}}
	overlay := &Config{DisabledTools: []string{"prompt_random", "prompt_search"}}

	got := Merge(base, overlay)
	want := []string{"prompt_random", "prompt_stats", "prompt_search"}
	if !reflect.DeepEqual(got.DisabledTools, want) {
		t.Errorf("DisabledTools = %v, want %v", got.DisabledTools, want)
	}
}
