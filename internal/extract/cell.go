package extract

import "strings"

// Attachment is a normalized projection of an arbitrary attachment cell.
type Attachment struct {
	ID       string  `json:"id"`
	URL      string  `json:"url"`
	Filename string  `json:"filename"`
	Type     string  `json:"type"`
	Size     float64 `json:"size"`
}

// NormalizeCell converts one raw cell value into a clean value based on its
// declared column type. Null input always yields nil; the caller must drop
// the field in that case. This is a total function: every raw shape maps to
// a deterministic value.
func NormalizeCell(raw any, col ColumnDescriptor, selectMap map[string]string) any {
	if raw == nil {
		return nil
	}

	switch col.Type {
	case TypeRichText:
		return extractRichText(raw)

	case TypeText, TypeURL:
		if !truthy(raw) {
			return nil
		}
		return strings.TrimSpace(stringify(raw))

	case TypeSelect:
		if s, ok := raw.(string); ok {
			return resolveOption(s, selectMap)
		}
		return stringify(raw)

	case TypeMultiSelect:
		switch v := raw.(type) {
		case []any:
			out := make([]string, 0, len(v))
			for _, e := range v {
				if s, ok := e.(string); ok {
					out = append(out, resolveOption(s, selectMap))
				} else {
					out = append(out, stringify(e))
				}
			}
			return out
		case string:
			return []string{resolveOption(v, selectMap)}
		default:
			return []string{stringify(raw)}
		}

	case TypeCheckbox:
		return truthy(raw)

	case TypeMultipleAttachment:
		attachments := []Attachment{}
		for _, e := range asList(raw) {
			att, ok := e.(map[string]any)
			if !ok {
				continue
			}
			size, _ := att["size"].(float64)
			attachments = append(attachments, Attachment{
				ID:       asString(att["id"]),
				URL:      asString(att["url"]),
				Filename: asString(att["filename"]),
				Type:     asString(att["type"]),
				Size:     size,
			})
		}
		return attachments

	case TypeNumber, TypeCount, TypeAutoNumber:
		return raw

	case TypeFormula:
		if m, ok := raw.(map[string]any); ok {
			if v, ok := m["value"]; ok {
				return v
			}
			return stringify(m)
		}
		return raw
	}

	// Generic fallback for unknown/unhandled types.
	switch v := raw.(type) {
	case string, float64, bool:
		return v
	case map[string]any:
		for _, key := range []string{"value", "text", "name", "label"} {
			if inner, ok := v[key]; ok {
				return inner
			}
		}
		return stringify(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, stringify(e))
		}
		return out
	}
	return stringify(raw)
}

// extractRichText flattens a rich text cell to plain text. A structured
// document is a sequence of insert-segments; their text is concatenated.
func extractRichText(raw any) string {
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	if m, ok := raw.(map[string]any); ok {
		var parts []string
		for _, seg := range asList(m["documentValue"]) {
			if segMap, ok := seg.(map[string]any); ok {
				if text, ok := segMap["insert"].(string); ok {
					parts = append(parts, text)
				}
			}
		}
		return strings.TrimSpace(strings.Join(parts, ""))
	}
	return ""
}

// resolveOption maps an opaque option id to its display label, falling back
// to the raw id when unmapped.
func resolveOption(id string, selectMap map[string]string) string {
	if label, ok := selectMap[id]; ok {
		return label
	}
	return id
}
