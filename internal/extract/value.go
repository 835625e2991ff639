package extract

import (
	"fmt"
	"sort"
)

// asMap returns v as a map, or an empty map for any other shape.
func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// asList returns v as a slice, or nil for any other shape.
func asList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}

// asString returns v if it is a string, else "".
func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// stringify renders any value as a string. Strings pass through unchanged;
// everything else goes through fmt.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// truthy reports whether a raw JSON value is "present": nil, empty string,
// false, zero, and empty collections all count as absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

// sortedMapKeys returns the keys of m in sorted order. Raw payload maps have
// no reliable ordering once decoded, so every map walk in this package is
// key-sorted to keep extraction deterministic.
func sortedMapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
