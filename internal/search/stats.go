package search

// StatsView summarizes the corpus for display. It is built from the stats
// file, not by re-reading the corpus.
type StatsView struct {
	TotalPrompts int            `json:"total_prompts"`
	Categories   map[string]any `json:"categories"`
	Models       map[string]any `json:"models"`
	OutputTypes  map[string]any `json:"output_types"`
	Sources      map[string]any `json:"sources"`
}

// CategoriesView lists the categories with their prompt counts.
type CategoriesView struct {
	Categories map[string]any `json:"categories"`
}

// BuildStatsView projects the raw stats map into the display shape. Sources
// collapse to table key → raw prompt count.
func BuildStatsView(stats map[string]any) *StatsView {
	view := &StatsView{
		Categories:  asObject(stats["categories"]),
		Models:      asObject(stats["models"]),
		OutputTypes: asObject(stats["output_types"]),
		Sources:     map[string]any{},
	}
	if total, ok := stats["total_unique"].(float64); ok {
		view.TotalPrompts = int(total)
	}
	for key, v := range asObject(stats["tables"]) {
		if table, ok := v.(map[string]any); ok {
			view.Sources[key] = table["raw_prompts"]
		}
	}
	return view
}

// BuildCategoriesView projects the raw stats map into the category listing.
func BuildCategoriesView(stats map[string]any) *CategoriesView {
	return &CategoriesView{Categories: asObject(stats["categories"])}
}

func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
