// Package classify assigns a category tag and metadata (detected model,
// style tags, output type) to prompt records using ordered, first-match-wins
// heuristic rules. Rule order is load-bearing throughout: earlier rules
// pre-empt later, broader ones.
package classify

import (
	"regexp"
	"strings"
)

// ModelKeyword pairs a lowercase keyword with the canonical model name it
// resolves to.
type ModelKeyword struct {
	Keyword string
	Name    string
}

// KnownModels is scanned in order with case-insensitive substring
// containment; the first matching keyword wins. Kept as an explicit ordered
// list, not a map, so the precedence stays auditable.
var KnownModels = []ModelKeyword{
	{"midjourney", "Midjourney"},
	{"leonardo ai", "Leonardo AI"},
	{"dall-e", "DALL-E"},
	{"dalle", "DALL-E"},
	{"stable diffusion", "Stable Diffusion"},
	{"flux", "Flux"},
	{"flux 1.1 pro", "Flux"},
	{"flux realism", "Flux"},
	{"flux kontext", "Flux"},
	{"flux pro", "Flux"},
	{"imagen", "Imagen"},
	{"imagen 4", "Imagen"},
	{"imagen3", "Imagen"},
	{"mystic", "Mystic"},
	{"mystic 2.5", "Mystic"},
	{"mystic 2.5 fluid", "Mystic"},
	{"mystic 2.5 flexible", "Mystic"},
	{"sora", "Sora"},
	{"ideogram", "Ideogram"},
	{"adobe firefly", "Adobe Firefly"},
	{"chatgpt", "ChatGPT"},
	{"grok", "Grok"},
	{"freepik", "Freepik"},
	{"piclumen", "PicLumen"},
	{"rendernet", "RenderNet"},
	{"canva", "Canva"},
	{"any platform", "Any Platform"},
}

// genericPlatformKeyword never counts as a model mention inside free prompt
// text; it only resolves through an explicit Type/App field.
const genericPlatformKeyword = "any platform"

// styleSeparator splits a compound Type field into its model segment and
// its comma-separated style tags.
const styleSeparator = "\U0001F3A8"

// mjFlagRe recognizes Midjourney command-flag syntax inside prompt text.
var mjFlagRe = regexp.MustCompile(`--(?:ar|v|style|chaos|no|s|q|iw)\s`)

// TypeField is the parsed form of a compound Type-like field value.
type TypeField struct {
	Model  string
	Styles []string
}

// MatchModel scans s (case-insensitively) against the known model table and
// returns the canonical name of the first keyword contained in s, or "".
func MatchModel(s string) string {
	lower := strings.ToLower(s)
	for _, m := range KnownModels {
		if strings.Contains(lower, m.Keyword) {
			return m.Name
		}
	}
	return ""
}

// ParseTypeField splits a compound Type value on the style separator into a
// model segment and style tags, then resolves the model segment against the
// known model table.
func ParseTypeField(value string) TypeField {
	var result TypeField
	if value == "" {
		return result
	}

	modelPart := strings.TrimSpace(value)
	tagsPart := ""
	if idx := strings.Index(value, styleSeparator); idx >= 0 {
		modelPart = strings.TrimSpace(value[:idx])
		tagsPart = strings.TrimSpace(value[idx+len(styleSeparator):])
	}

	result.Model = MatchModel(modelPart)

	if tagsPart != "" {
		for _, tag := range strings.Split(tagsPart, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				result.Styles = append(result.Styles, tag)
			}
		}
	}

	return result
}
