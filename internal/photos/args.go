package photos

import (
	"fmt"
	"strconv"
)

// Args is the argument bag supplied with a single tool call. Values arrive
// from JSON, so numbers are float64 and everything else is string or bool.
type Args map[string]any

// Has reports whether key is present with a usable value. A key mapped to
// nil counts as absent, so an explicit JSON null fails required-argument
// validation the same way an omitted key does.
func (a Args) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// String returns the value for key rendered as a string.
func (a Args) String(key string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the value for key as an int, or def when the key is absent or
// not numeric.
func (a Args) Int(key string, def int) int {
	v, ok := a[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	}
	return def
}

// Bool returns the value for key as a bool, or def when absent.
func (a Args) Bool(key string, def bool) bool {
	v, ok := a[key]
	if !ok || v == nil {
		return def
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}
