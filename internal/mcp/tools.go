package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions

var searchToolDef = mcp.NewTool("prompt_search",
	mcp.WithDescription("Search the prompt corpus by keywords with optional category, model, and output type filters. Returns ranked matches with truncated prompt text unless full is set."),
	mcp.WithString("query",
		mcp.Description("Search keywords. May be empty when at least one filter is set."),
	),
	mcp.WithString("category",
		mcp.Description("Filter by category slug, e.g. fantasy or logos-icons."),
	),
	mcp.WithString("model",
		mcp.Description("Filter by AI model name, e.g. Midjourney."),
	),
	mcp.WithString("type",
		mcp.Description("Filter by output type: image, video, text, or generator."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results (default 10)."),
	),
	mcp.WithBoolean("full",
		mcp.Description("Return full prompt text instead of a 200-character preview."),
	),
)

var randomToolDef = mcp.NewTool("prompt_random",
	mcp.WithDescription("Return one random prompt from the corpus, with full text. Optional category and model filters narrow the pool."),
	mcp.WithString("category",
		mcp.Description("Filter by category slug."),
	),
	mcp.WithString("model",
		mcp.Description("Filter by AI model name."),
	),
)

var statsToolDef = mcp.NewTool("prompt_stats",
	mcp.WithDescription("Return corpus statistics: total prompts, category counts, model counts, output type counts, and per-source raw prompt counts."),
)

var categoriesToolDef = mcp.NewTool("prompt_categories",
	mcp.WithDescription("List all categories in the corpus with their prompt counts."),
)
