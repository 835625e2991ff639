package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"promptdex/internal/config"
	"promptdex/internal/pipeline"
)

// testSetup writes a two-record corpus into a temp directory.
func testSetup(t *testing.T) (string, *config.Config) {
	t.Helper()

	dir := t.TempDir()
	master := `[
		{"Prompt": "a red dragon perched on a castle tower at sunset",
		 "_category": "fantasy", "_model": "Midjourney", "_output_type": "image"},
		{"Prompt": "drone footage of a mountain valley in morning fog",
		 "_category": "landscapes-nature", "_model": null, "_output_type": "video"}
	]`
	if err := os.WriteFile(filepath.Join(dir, pipeline.MasterFileName), []byte(master), 0o644); err != nil {
		t.Fatal(err)
	}
	stats := `{"total_unique": 2, "categories": {"fantasy": 1, "landscapes-nature": 1}}`
	if err := os.WriteFile(filepath.Join(dir, pipeline.StatsFileName), []byte(stats), 0o644); err != nil {
		t.Fatal(err)
	}

	return dir, config.DefaultConfig()
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestHandleSearch(t *testing.T) {
	dir, cfg := testSetup(t)
	h := NewHandlers(dir, cfg)

	result, err := h.HandleSearch(context.Background(), makeRequest(map[string]any{
		"query": "dragon",
	}))
	if err != nil {
		t.Fatalf("HandleSearch failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var payload struct {
		Count   int `json:"count"`
		Results []struct {
			Category string `json:"category"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("invalid result JSON: %v", err)
	}
	if payload.Count != 1 {
		t.Errorf("count = %d, want 1", payload.Count)
	}
	if payload.Results[0].Category != "fantasy" {
		t.Errorf("category = %q", payload.Results[0].Category)
	}
}

func TestHandleSearch_MissingCorpus(t *testing.T) {
	h := NewHandlers(t.TempDir(), config.DefaultConfig())

	result, err := h.HandleSearch(context.Background(), makeRequest(map[string]any{
		"query": "anything",
	}))
	if err != nil {
		t.Fatalf("handler returned transport error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError result")
	}
	if !strings.Contains(resultText(t, result), "NOT_FOUND") {
		t.Errorf("error payload = %s", resultText(t, result))
	}
}

func TestHandleRandom(t *testing.T) {
	dir, cfg := testSetup(t)
	h := NewHandlers(dir, cfg)

	result, err := h.HandleRandom(context.Background(), makeRequest(map[string]any{
		"category": "fantasy",
	}))
	if err != nil {
		t.Fatalf("HandleRandom failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var payload struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("invalid result JSON: %v", err)
	}
	if payload.Category != "fantasy" {
		t.Errorf("category = %q", payload.Category)
	}
}

func TestHandleStats(t *testing.T) {
	dir, cfg := testSetup(t)
	h := NewHandlers(dir, cfg)

	result, err := h.HandleStats(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleStats failed: %v", err)
	}

	var payload struct {
		TotalPrompts int `json:"total_prompts"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("invalid result JSON: %v", err)
	}
	if payload.TotalPrompts != 2 {
		t.Errorf("total_prompts = %d, want 2", payload.TotalPrompts)
	}
}

func TestHandleCategories(t *testing.T) {
	dir, cfg := testSetup(t)
	h := NewHandlers(dir, cfg)

	result, err := h.HandleCategories(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleCategories failed: %v", err)
	}

	var payload struct {
		Categories map[string]int `json:"categories"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("invalid result JSON: %v", err)
	}
	if len(payload.Categories) != 2 {
		t.Errorf("categories = %v", payload.Categories)
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"prompt_search", "bogus_tool"})
	if len(unknown) != 1 || unknown[0] != "bogus_tool" {
		t.Errorf("unknown = %v", unknown)
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != len(toolRegistry) {
		t.Errorf("len = %d, want %d", len(names), len(toolRegistry))
	}
}

func TestNewServer_WithDisabledTools(t *testing.T) {
	dir, cfg := testSetup(t)
	cfg.DisabledTools = []string{"prompt_random"}

	s := NewServer(dir, cfg, "test")
	if s == nil {
		t.Fatal("NewServer returned nil")
	}
}
