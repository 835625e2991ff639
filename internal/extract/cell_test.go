package extract

import (
	"reflect"
	"testing"
)

func TestNormalizeCell(t *testing.T) {
	selectMap := map[string]string{
		"optA": "Fantasy",
		"optB": "Sci-Fi",
	}

	tests := []struct {
		name string
		raw  any
		col  ColumnDescriptor
		want any
	}{
		{
			name: "null is always nil",
			raw:  nil,
			col:  ColumnDescriptor{Type: TypeText},
			want: nil,
		},
		{
			name: "rich text string",
			raw:  "  plain rich text  ",
			col:  ColumnDescriptor{Type: TypeRichText},
			want: "plain rich text",
		},
		{
			name: "rich text document",
			raw: map[string]any{
				"documentValue": []any{
					map[string]any{"insert": "a dragon "},
					map[string]any{"insert": "over mountains"},
				},
			},
			col:  ColumnDescriptor{Type: TypeRichText},
			want: "a dragon over mountains",
		},
		{
			name: "text trims",
			raw:  "  hello  ",
			col:  ColumnDescriptor{Type: TypeText},
			want: "hello",
		},
		{
			name: "falsy text is nil",
			raw:  "",
			col:  ColumnDescriptor{Type: TypeText},
			want: nil,
		},
		{
			name: "select resolves option id",
			raw:  "optA",
			col:  ColumnDescriptor{Type: TypeSelect},
			want: "Fantasy",
		},
		{
			name: "select keeps unmapped id",
			raw:  "optZ",
			col:  ColumnDescriptor{Type: TypeSelect},
			want: "optZ",
		},
		{
			name: "multi-select resolves each id",
			raw:  []any{"optA", "optB"},
			col:  ColumnDescriptor{Type: TypeMultiSelect},
			want: []string{"Fantasy", "Sci-Fi"},
		},
		{
			name: "multi-select wraps bare string",
			raw:  "optA",
			col:  ColumnDescriptor{Type: TypeMultiSelect},
			want: []string{"Fantasy"},
		},
		{
			name: "checkbox truthy",
			raw:  true,
			col:  ColumnDescriptor{Type: TypeCheckbox},
			want: true,
		},
		{
			name: "checkbox falsy value",
			raw:  float64(0),
			col:  ColumnDescriptor{Type: TypeCheckbox},
			want: false,
		},
		{
			name: "number passes through",
			raw:  float64(42),
			col:  ColumnDescriptor{Type: TypeNumber},
			want: float64(42),
		},
		{
			name: "formula unwraps value",
			raw:  map[string]any{"value": "computed"},
			col:  ColumnDescriptor{Type: TypeFormula},
			want: "computed",
		},
		{
			name: "unknown type probes name key",
			raw:  map[string]any{"name": "inner"},
			col:  ColumnDescriptor{Type: TypeUnknown},
			want: "inner",
		},
		{
			name: "unknown type passes scalar",
			raw:  "as-is",
			col:  ColumnDescriptor{Type: TypeUnknown},
			want: "as-is",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCell(tt.raw, tt.col, selectMap)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeCell(%v) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeCell_Attachments(t *testing.T) {
	raw := []any{
		map[string]any{
			"id":       "att1",
			"url":      "https://example.com/a.png",
			"filename": "a.png",
			"type":     "image/png",
			"size":     float64(1234),
			"noise":    "dropped",
		},
		"not a map",
	}

	got := NormalizeCell(raw, ColumnDescriptor{Type: TypeMultipleAttachment}, nil)
	atts, ok := got.([]Attachment)
	if !ok {
		t.Fatalf("got %T, want []Attachment", got)
	}
	if len(atts) != 1 {
		t.Fatalf("len = %d, want 1", len(atts))
	}
	want := Attachment{
		ID: "att1", URL: "https://example.com/a.png",
		Filename: "a.png", Type: "image/png", Size: 1234,
	}
	if atts[0] != want {
		t.Errorf("attachment = %+v, want %+v", atts[0], want)
	}
}
