package load

// The loader's source tree is whatever goccy/go-yaml decodes a mapping
// node into: map[string]any keyed by string, slices as []any, scalars as
// string/bool/float64/int. These helpers tolerate a missing or
// wrong-shaped value by returning the zero value rather than panicking,
// since a malformed document is reported by the eventual translation
// diagnostics, not by a loader panic.

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asFloat(v any) float64 {
	f, _ := asFloatOK(v)
	return f
}

func asFloatOK(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asIntPtr(v any) *int {
	f, ok := asFloatOK(v)
	if !ok {
		return nil
	}

	n := int(f)
	return &n
}

func asFloatPtr(v any) *float64 {
	f, ok := asFloatOK(v)
	if !ok {
		return nil
	}

	return &f
}

func asStringSlice(v any) []string {
	list := asSlice(v)
	if len(list) == 0 {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}
