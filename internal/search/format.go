package search

import (
	"promptdex/internal/record"
)

// previewRunes is the truncation width for prompt text when the caller did
// not ask for full output.
const previewRunes = 200

// FormattedPrompt is the presentation shape for one prompt in query output.
type FormattedPrompt struct {
	Prompt     string   `json:"prompt"`
	Category   string   `json:"category"`
	Model      *string  `json:"model"`
	OutputType string   `json:"output_type"`
	Source     *string  `json:"source"`
	Index      int      `json:"index,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Name       string   `json:"name,omitempty"`
	HasImage   bool     `json:"has_image,omitempty"`
	ImageURL   *string  `json:"image_url,omitempty"`
}

// Format projects a record into its output shape. An index of zero means no
// position is reported. Unless full is set, prompt text is truncated to a
// 200-rune preview.
func Format(rec record.Record, index int, full bool) FormattedPrompt {
	text := rec.BestText()
	if !full {
		if runes := []rune(text); len(runes) > previewRunes {
			text = string(runes[:previewRunes]) + "..."
		}
	}

	category := rec.Category()
	if category == "" {
		category = "unknown"
	}
	outputType := rec.OutputType()
	if outputType == "" {
		outputType = "image"
	}

	f := FormattedPrompt{
		Prompt:     text,
		Category:   category,
		OutputType: outputType,
		Index:      index,
	}
	if model := rec.Model(); model != "" {
		f.Model = &model
	}
	if source := rec.Str(record.FieldSourceName); source != "" {
		f.Source = &source
	}

	tags := rec.StringList("Tags/Styles")
	if len(tags) == 0 {
		tags = rec.StringList(record.FieldStyles)
	}
	if len(tags) > 0 {
		f.Tags = tags
	}

	if name := rec.Str("Name"); name != "" {
		f.Name = name
	}

	// Attachment fields survive normalization as lists of objects.
	image, ok := rec["Image"].([]any)
	if !ok || len(image) == 0 {
		image, ok = rec["Still Shot/Video"].([]any)
	}
	if ok && len(image) > 0 {
		f.HasImage = true
		url := ""
		if att, ok := image[0].(map[string]any); ok {
			url, _ = att["url"].(string)
		}
		f.ImageURL = &url
	}

	return f
}
