// Package mcp exposes the corpus query operations as MCP tools over stdio.
// The server is read-only: extraction and index builds stay CLI-only.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"promptdex/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"prompt_search": {
		def:     searchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
	},
	"prompt_random": {
		def:     randomToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRandom },
	},
	"prompt_stats": {
		def:     statsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStats },
	},
	"prompt_categories": {
		def:     categoriesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategories },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with promptdex tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(corpusDir string, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"promptdex",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(corpusDir, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(corpusDir string, cfg *config.Config, version string) error {
	s := NewServer(corpusDir, cfg, version)
	return server.ServeStdio(s)
}
