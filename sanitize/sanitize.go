// Package sanitize strips script-injection patterns from free-text input
// before it reaches audit trails or stored records.
package sanitize

import "regexp"

// MaxInputLength is the cap applied to any single sanitized string.
const MaxInputLength = 10000

var (
	scriptElementPattern = regexp.MustCompile(`(?is)<\s*script[^>]*>.*?<\s*/\s*script\s*>`)
	scriptTagPattern     = regexp.MustCompile(`(?is)<\s*/?\s*script[^>]*>`)
	jsSchemePattern      = regexp.MustCompile(`(?i)javascript\s*:`)
	eventHandlerPattern  = regexp.MustCompile(`(?i)\bon\w+\s*=`)
)

// Input removes script elements (including their body), dangling script
// tags, javascript: scheme prefixes and inline event-handler attributes
// from s and truncates the result to MaxInputLength characters. It never
// fails; hostile input degrades to a shorter string.
func Input(s string) string {
	s = scriptElementPattern.ReplaceAllString(s, "")
	s = scriptTagPattern.ReplaceAllString(s, "")
	s = jsSchemePattern.ReplaceAllString(s, "")
	s = eventHandlerPattern.ReplaceAllString(s, "")
	if runes := []rune(s); len(runes) > MaxInputLength {
		s = string(runes[:MaxInputLength])
	}
	return s
}

// Object applies Input to every string leaf of an arbitrarily nested
// map/slice structure, preserving shape and leaving non-string leaves
// untouched.
func Object(v any) any {
	switch t := v.(type) {
	case string:
		return Input(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Object(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Object(val)
		}
		return out
	default:
		return v
	}
}

// Map is a convenience wrapper for the common details-map case.
func Map(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return Object(m).(map[string]any)
}
