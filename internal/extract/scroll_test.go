package extract

import (
	"strings"
	"testing"

	"promptdex/internal/record"
)

func TestFromScroll(t *testing.T) {
	long := strings.Repeat("a moody alleyway in the rain, neon reflections ", 3)

	c := &Capture{
		ScrollData: &ScrollData{
			Texts: []string{
				"Log in",   // UI noise
				"42",       // bare number
				"ok",       // under the 3-rune floor
				"metadata", // too short to be a prompt
				long,
			},
			Images: []string{"https://example.com/img0.png"},
		},
	}

	records := FromScroll(c)
	if len(records) != 1 {
		t.Fatalf("len = %d, want 1", len(records))
	}

	rec := records[0]
	if rec[record.FieldID] != "scroll0" {
		t.Errorf("_id = %v, want scroll0", rec[record.FieldID])
	}
	if rec[record.FieldTableID] != "scroll" {
		t.Errorf("_table_id = %v, want scroll", rec[record.FieldTableID])
	}
	if rec[record.FieldSource] != "scroll_text" {
		t.Errorf("_source = %v, want scroll_text", rec[record.FieldSource])
	}
	if rec["Prompt"] != long {
		t.Errorf("Prompt = %v", rec["Prompt"])
	}
	if rec[record.FieldImageURL] != "https://example.com/img0.png" {
		t.Errorf("_image_url = %v", rec[record.FieldImageURL])
	}
}

func TestFromScroll_NoiseCaseInsensitive(t *testing.T) {
	c := &Capture{
		ScrollData: &ScrollData{
			Texts: []string{"REPORT ABUSE", "add record"},
		},
	}
	if records := FromScroll(c); len(records) != 0 {
		t.Errorf("len = %d, want 0", len(records))
	}
}

func TestFromScroll_NilScrollData(t *testing.T) {
	c := &Capture{}
	if records := FromScroll(c); len(records) != 0 {
		t.Errorf("len = %d, want 0", len(records))
	}
}

func TestFromScroll_ExtraImagesIgnored(t *testing.T) {
	long := strings.Repeat("an overgrown greenhouse full of glowing plants ", 2)
	c := &Capture{
		ScrollData: &ScrollData{
			Texts:  []string{long},
			Images: []string{"https://example.com/a.png", "https://example.com/b.png"},
		},
	}

	records := FromScroll(c)
	if len(records) != 1 {
		t.Fatalf("len = %d, want 1", len(records))
	}
	if records[0][record.FieldImageURL] != "https://example.com/a.png" {
		t.Errorf("_image_url = %v", records[0][record.FieldImageURL])
	}
}
