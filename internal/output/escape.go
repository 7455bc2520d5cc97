// Package output shapes the assembled conversation into one of the two
// response envelopes and escapes it for downstream template engines.
package output

import "strings"

// EscapeBraces doubles every literal { and } in string values so the
// envelope survives a downstream template-expression parser that treats
// single braces as interpolation syntax. The walk reaches arbitrarily nested
// maps and slices; non-string values pass through untouched. Applying it
// twice doubles again — it is not round-trip safe.
func EscapeBraces(v any) any {
	switch t := v.(type) {
	case string:
		return strings.ReplaceAll(strings.ReplaceAll(t, "{", "{{"), "}", "}}")
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = EscapeBraces(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = EscapeBraces(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = EscapeBraces(e)
		}
		return out
	default:
		return v
	}
}
