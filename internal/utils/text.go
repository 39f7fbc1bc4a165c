package utils

import (
	"strings"
	"unicode/utf8"
)

// NormalizeRequired trims a required text field and reports whether at
// least min characters remain. All-whitespace input fails.
func NormalizeRequired(value string, min int) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if utf8.RuneCountInString(trimmed) < min {
		return "", false
	}
	return trimmed, true
}

// NormalizeOptional trims an optional text field. Absent or
// empty-after-trim values are stored as nil.
func NormalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
