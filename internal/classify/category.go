package classify

import (
	"regexp"
	"strings"
)

// Output types.
const (
	OutputImage     = "image"
	OutputVideo     = "video"
	OutputText      = "text"
	OutputGenerator = "generator"
)

// Fallback categories when no content rule fires.
const (
	CategoryGeneral      = "general"
	CategoryVideoGeneral = "video-general"
)

// Intent and output-type signal phrases, matched by plain substring against
// the lowercased prompt text or Type value.
var (
	generatorSignals = []string{
		"prompt generator", "generate prompts", "create prompts",
		"prompt perfecter",
	}
	textSignals = []string{
		"write", "article", "blog", "copy", "content", "essay",
		"paraphrase", "storyteller", "ebook",
	}
	videoSignals = []string{
		"video", "animation", "motion", "footage", "camera", "pan",
		"zoom", "tracking shot", "drone", "fpv", "montage", "scene",
	}
	videoTypeSignals = []string{
		"video", "sora", "mystic", "cinematic", "music video",
		"pov", "fpv", "drone", "tracking", "movie", "film",
		"live-action", "talk show", "podcast", "sitcom",
		"interview", "reporter",
	}
)

// categoryRule is one (predicate, category) pair in the ordered rule chain.
// Keywords use whole-word matching to avoid substring false positives
// ("cat" inside "catch", "elf" inside "selfie"); typeSubstrings are checked
// by plain containment against the lowercased Type value; exclusions veto a
// keyword match when present in the text.
type categoryRule struct {
	category       string
	keywords       []string
	typeSubstrings []string
	altKeywords    []string
	exclusions     []string
}

// categoryRules is evaluated top to bottom; the first matching rule wins
// and later rules become unreachable. More specific categories come first:
// fashion is checked before food-drink so "editorial" content does not
// bleed, and the animal rule runs last with its own false-positive guards.
var categoryRules = []categoryRule{
	{
		category:       "logos-icons",
		keywords:       []string{"logo", "icon", "badge", "emblem", "monogram"},
		typeSubstrings: []string{"logo"},
	},
	{
		category: "superheroes",
		keywords: []string{"superhero", "marvel", "dc comics", "avenger"},
	},
	{
		category: "animated-3d",
		keywords: []string{"anime", "manga", "pixar", "dreamworks", "fortnite", "cartoon", "3d render"},
	},
	{
		category:       "products",
		keywords:       []string{"product shot", "packshot", "commercial product", "perfume", "sneaker", "shoe", "watch", "bottle"},
		typeSubstrings: []string{"product"},
	},
	{
		category: "architecture",
		keywords: []string{"architecture", "building", "interior design", "skyscraper", "house", "room"},
	},
	{
		category:       "fashion-editorial",
		keywords:       []string{"fashion", "outfit", "clothing", "runway", "editorial", "vogue", "magazine"},
		typeSubstrings: []string{"fashion", "editorial"},
	},
	{
		category:    "food-drink",
		keywords:    []string{"food", "recipe", "cooking", "cuisine", "chef", "meal", "bakery", "burger", "sushi", "pizza"},
		altKeywords: []string{"dish", "dessert"},
		exclusions:  []string{"beauty dish", "desolate"},
	},
	{
		category:       "vehicles",
		keywords:       []string{"car", "vehicle", "automobile", "racing", "motorcycle"},
		typeSubstrings: []string{"car"},
	},
	{
		category: "fantasy",
		keywords: []string{"dragon", "magic", "medieval", "elf", "wizard", "enchanted", "mythical", "fairy"},
	},
	{
		category: "sci-fi-futuristic",
		keywords: []string{"sci-fi", "futuristic", "cyberpunk", "neon city", "robot", "mech", "space station", "dystopian"},
	},
	{
		category: "landscapes-nature",
		keywords: []string{"landscape", "nature", "scenic", "mountain", "ocean", "sunset", "forest", "beach", "waterfall"},
	},
	{
		category:       "portraits-people",
		keywords:       []string{"portrait", "headshot", "closeup", "person"},
		typeSubstrings: []string{"person"},
	},
	{
		category: "abstract-backgrounds",
		keywords: []string{"abstract", "gradient", "pattern", "texture", "wallpaper", "background"},
	},
	{
		category: "print-merchandise",
		keywords: []string{"t-shirt", "sticker", "coloring book", "tattoo", "merch"},
	},
	{
		category: "animals",
		keywords: []string{
			"animal", "dog", "puppy", "kitten", "horse", "lion",
			"tiger", "elephant", "whale", "dolphin", "deer", "wolf",
			"bear", "eagle", "owl", "rabbit", "fox", "wildlife",
		},
		altKeywords: []string{"cat", "bird", "fish"},
		exclusions:  []string{"bird's eye", "catsuit", "catapult"},
	},
}

// wordRes caches a compiled word-boundary pattern per keyword. Filled once
// at init; read-only afterwards.
var wordRes = map[string]*regexp.Regexp{}

func init() {
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			wordRes[kw] = compileWord(kw)
		}
		for _, kw := range rule.altKeywords {
			wordRes[kw] = compileWord(kw)
		}
	}
}

func compileWord(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
}

// hasWord reports whether keyword occurs as a whole word in text.
func hasWord(keyword, text string) bool {
	re, ok := wordRes[keyword]
	if !ok {
		re = compileWord(keyword)
	}
	return re.MatchString(text)
}

// hasAnyWord reports whether any keyword occurs as a whole word in text.
func hasAnyWord(keywords []string, text string) bool {
	for _, kw := range keywords {
		if hasWord(kw, text) {
			return true
		}
	}
	return false
}

// containsAny reports whether any phrase occurs as a substring of s.
func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// matches evaluates one rule against the lowercased prompt text and the
// lowercased Type value.
func (r categoryRule) matches(text, typeLower string) bool {
	if hasAnyWord(r.keywords, text) {
		return true
	}
	if len(r.altKeywords) > 0 && hasAnyWord(r.altKeywords, text) && !containsAny(text, r.exclusions) {
		return true
	}
	if typeLower != "" && containsAny(typeLower, r.typeSubstrings) {
		return true
	}
	return false
}
