package classify

import (
	"fmt"
	"strings"

	"promptdex/internal/record"
)

// typeFieldPriority lists the Type-like field names probed for the compound
// model/style value, in order.
var typeFieldPriority = []string{
	"Type", "Category", "type", "category",
	"\U0001F4F1Type", "\U0001F680Type", "\U0001F37FCategory",
}

// Metadata carries the classification annotations for one record.
type Metadata struct {
	Model      string
	Styles     []string
	OutputType string
}

// Categorize determines a record's category and metadata. Two independent
// resolutions happen: model detection walks a strict priority of sources
// (Type field, App field, Name field, flag syntax, free-text mention), and
// category detection runs the ordered rule chain over the lowercased best
// text. Absent fields degrade gracefully to "general"/no model; there is no
// failure path.
func Categorize(rec record.Record) (string, Metadata) {
	meta := Metadata{OutputType: OutputImage}

	typeVal := resolveTypeField(rec)
	if typeVal != "" {
		parsed := ParseTypeField(typeVal)
		meta.Model = parsed.Model
		meta.Styles = parsed.Styles
	}

	// The dedicated App field names the platform directly on some sources.
	if meta.Model == "" {
		if app := strings.TrimSpace(rec.Str("App")); app != "" {
			meta.Model = MatchModel(app)
		}
	}

	// Name sometimes carries the model on video-oriented sources.
	if meta.Model == "" {
		meta.Model = MatchModel(rec.Str("Name"))
	}

	// Last resort: infer from prompt syntax or a free-text mention.
	if meta.Model == "" {
		if rawText := rec.BestText(); rawText != "" {
			if mjFlagRe.MatchString(rawText) {
				meta.Model = "Midjourney"
			} else {
				meta.Model = matchModelInText(rawText)
			}
		}
	}

	text := strings.ToLower(rec.BestText())
	if text == "" {
		return CategoryGeneral, meta
	}
	typeLower := strings.ToLower(typeVal)

	// Intent categories pre-empt everything else.
	if containsAny(text, generatorSignals) || strings.Contains(typeLower, "prompt generator") {
		meta.OutputType = OutputGenerator
		return "generators", meta
	}
	if containsAny(text, textSignals) || strings.Contains(typeLower, "storyteller") {
		meta.OutputType = OutputText
		return "text", meta
	}

	// Output type resolves independently of the content category.
	if containsAny(typeLower, videoTypeSignals) {
		meta.OutputType = OutputVideo
	} else if containsAny(text, videoSignals) {
		meta.OutputType = OutputVideo
	}

	for _, rule := range categoryRules {
		if rule.matches(text, typeLower) {
			return rule.category, meta
		}
	}

	if meta.OutputType == OutputVideo {
		return CategoryVideoGeneral, meta
	}
	return CategoryGeneral, meta
}

// resolveTypeField probes the Type-like fields in priority order. A list
// value resolves to its first element.
func resolveTypeField(rec record.Record) string {
	for _, key := range typeFieldPriority {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t == "" {
				continue
			}
			return strings.TrimSpace(t)
		case []string:
			if len(t) == 0 {
				continue
			}
			return strings.TrimSpace(t[0])
		case []any:
			if len(t) == 0 {
				continue
			}
			return strings.TrimSpace(stringifyValue(t[0]))
		case bool:
			if !t {
				continue
			}
			return "true"
		case float64:
			if t == 0 {
				continue
			}
			return strings.TrimSpace(stringifyValue(t))
		default:
			return strings.TrimSpace(stringifyValue(t))
		}
	}
	return ""
}

// stringifyValue renders a non-string Type value as text.
func stringifyValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// matchModelInText scans prompt text for a model keyword mention, skipping
// the generic platform keyword that would otherwise match boilerplate.
func matchModelInText(text string) string {
	lower := strings.ToLower(text)
	for _, m := range KnownModels {
		if m.Keyword == genericPlatformKeyword {
			continue
		}
		if strings.Contains(lower, m.Keyword) {
			return m.Name
		}
	}
	return ""
}
