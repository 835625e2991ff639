// Package report renders a human-readable digest of the processed corpus as
// Markdown and converts it to HTML.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"promptdex/internal/errors"
	"promptdex/internal/record"
	"promptdex/internal/search"
)

// Output file names inside the corpus directory.
const (
	MarkdownFileName = "report.md"
	HTMLFileName     = "report.html"
)

// sampleRunes is the truncation width for per-category sample prompts.
const sampleRunes = 160

// Result reports where the digest was written.
type Result struct {
	MarkdownPath string `json:"markdown_path"`
	HTMLPath     string `json:"html_path"`
}

// Write renders the digest for the corpus and writes both files into the
// corpus directory.
func Write(corpusDir string, records []record.Record, stats map[string]any) (*Result, error) {
	md := render(records, stats)

	mdPath := filepath.Join(corpusDir, MarkdownFileName)
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return nil, errors.NewInternal(err)
	}

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(md), &html); err != nil {
		return nil, errors.NewInternal(err)
	}
	htmlPath := filepath.Join(corpusDir, HTMLFileName)
	if err := os.WriteFile(htmlPath, html.Bytes(), 0o644); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &Result{MarkdownPath: mdPath, HTMLPath: htmlPath}, nil
}

// render builds the Markdown digest: totals, category and model tables, and
// one sample prompt per category.
func render(records []record.Record, stats map[string]any) string {
	var b strings.Builder

	b.WriteString("# Prompt Corpus Report\n\n")
	if processedAt, ok := stats["processed_at"].(string); ok && processedAt != "" {
		fmt.Fprintf(&b, "Generated from the run of %s.\n\n", processedAt)
	}

	total := len(records)
	if v, ok := stats["total_unique"].(float64); ok {
		total = int(v)
	}
	fmt.Fprintf(&b, "**%d unique prompts**", total)
	if v, ok := stats["duplicates_removed"].(float64); ok {
		fmt.Fprintf(&b, ", %d duplicates removed", int(v))
	}
	if v, ok := stats["noise_removed"].(float64); ok {
		fmt.Fprintf(&b, ", %d noise records removed", int(v))
	}
	b.WriteString(".\n\n")

	writeCountTable(&b, "Categories", stats["categories"])
	writeCountTable(&b, "Models", stats["models"])
	writeCountTable(&b, "Output Types", stats["output_types"])

	writeSamples(&b, records)

	return b.String()
}

// writeCountTable emits one name/count table, highest count first.
func writeCountTable(b *strings.Builder, title string, v any) {
	counts, ok := v.(map[string]any)
	if !ok || len(counts) == 0 {
		return
	}

	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, c := range counts {
		n, ok := c.(float64)
		if !ok {
			continue
		}
		entries = append(entries, entry{name, int(n)})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	fmt.Fprintf(b, "## %s\n\n", title)
	b.WriteString("| Name | Count |\n|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(b, "| %s | %d |\n", e.name, e.count)
	}
	b.WriteString("\n")
}

// writeSamples emits the first prompt of each category, in category order.
func writeSamples(b *strings.Builder, records []record.Record) {
	samples := make(map[string]record.Record)
	for _, rec := range records {
		cat := rec.Category()
		if cat == "" {
			continue
		}
		if _, ok := samples[cat]; !ok {
			samples[cat] = rec
		}
	}
	if len(samples) == 0 {
		return
	}

	cats := make([]string, 0, len(samples))
	for cat := range samples {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	b.WriteString("## Samples\n\n")
	for _, cat := range cats {
		f := search.Format(samples[cat], 0, true)
		text := f.Prompt
		if runes := []rune(text); len(runes) > sampleRunes {
			text = string(runes[:sampleRunes]) + "..."
		}
		fmt.Fprintf(b, "### %s\n\n> %s\n\n", cat, strings.ReplaceAll(text, "\n", " "))
	}
}
