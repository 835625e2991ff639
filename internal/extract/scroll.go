package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"promptdex/internal/record"
)

// minScrollPromptChars separates prompts from metadata in scrolled text.
// Strings at or under this length are discarded as probable labels; no
// structural association exists between short and long text in this source.
const minScrollPromptChars = 50

// scrollNoisePatterns match UI chrome captured alongside real content:
// button and menu labels, boilerplate phrases, and bare numbers. Matched
// case-insensitively against the start of each string.
var scrollNoisePatterns = []string{
	`^Report abuse$`, `^Log in$`, `^Sign up`, `^Add record$`,
	`^Filter$`, `^Sort$`, `^Category$`, `^Tags/Styles$`,
	`^Click each prompt`, `^Interface:`, `^Gallery$`,
	`^\d+$`,
}

var scrollNoiseRe = regexp.MustCompile(`(?i)` + strings.Join(scrollNoisePatterns, "|"))

// FromScroll extracts candidate prompt records from scroll-collected text.
// This is the fallback path, used only when API extraction yields nothing.
// Image URLs are paired to candidates by positional index. The pairing is
// best-effort only: the source data carries no structural linkage between
// a text block and its image.
func FromScroll(c *Capture) []record.Record {
	var prompts []record.Record
	if c.ScrollData == nil || len(c.ScrollData.Texts) == 0 {
		return prompts
	}

	for _, text := range c.ScrollData.Texts {
		if scrollNoiseRe.MatchString(text) {
			continue
		}
		if utf8.RuneCountInString(text) < 3 {
			continue
		}
		if utf8.RuneCountInString(text) > minScrollPromptChars {
			prompts = append(prompts, record.Record{
				record.FieldID:      fmt.Sprintf("scroll%d", len(prompts)),
				record.FieldTableID: "scroll",
				record.FieldSource:  "scroll_text",
				"Prompt":            text,
			})
		}
	}

	for i, imgURL := range c.ScrollData.Images {
		if i >= len(prompts) {
			break
		}
		prompts[i][record.FieldImageURL] = imgURL
	}

	return prompts
}
