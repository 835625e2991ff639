package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"promptdex/internal/config"
	"promptdex/internal/errors"
	"promptdex/internal/search"
)

// Handlers holds dependencies for MCP tool handlers. The corpus is reloaded
// per call so a pipeline rerun is picked up without restarting the server.
type Handlers struct {
	corpusDir string
	cfg       *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(corpusDir string, cfg *config.Config) *Handlers {
	return &Handlers{corpusDir: corpusDir, cfg: cfg}
}

// Request types for each tool

// SearchRequest represents the arguments for prompt_search.
type SearchRequest struct {
	Query    string `json:"query,omitempty"`
	Category string `json:"category,omitempty"`
	Model    string `json:"model,omitempty"`
	Type     string `json:"type,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Full     bool   `json:"full,omitempty"`
}

// RandomRequest represents the arguments for prompt_random.
type RandomRequest struct {
	Category string `json:"category,omitempty"`
	Model    string `json:"model,omitempty"`
}

// Handler implementations

// HandleSearch handles the prompt_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = h.cfg.SearchLimit
	}

	records, err := search.LoadCorpus(h.corpusDir)
	if err != nil {
		return errorResult(err), nil
	}

	result := search.Search(records, search.Input{
		Query:      input.Query,
		Category:   input.Category,
		Model:      input.Model,
		OutputType: input.Type,
		Limit:      limit,
		Full:       input.Full,
	})

	return successResult(result)
}

// HandleRandom handles the prompt_random tool call.
func (h *Handlers) HandleRandom(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RandomRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	records, err := search.LoadCorpus(h.corpusDir)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := search.Random(records, search.RandomInput{
		Category: input.Category,
		Model:    input.Model,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStats handles the prompt_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := search.LoadStats(h.corpusDir)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(search.BuildStatsView(stats))
}

// HandleCategories handles the prompt_categories tool call.
func (h *Handlers) HandleCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := search.LoadStats(h.corpusDir)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(search.BuildCategoriesView(stats))
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed to avoid leaking file paths.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if pdexErr, ok := err.(*errors.PdexError); ok {
		errorObj := map[string]any{
			"code":    pdexErr.Code,
			"message": pdexErr.Message,
			"status":  pdexErr.Status,
		}
		if pdexErr.Code != errors.ErrInternal && pdexErr.Details != nil {
			errorObj["details"] = pdexErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
