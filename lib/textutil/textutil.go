package textutil

import "strings"

// Truncate caps a string at max runes. Slicing by runes rather than bytes
// keeps multi-byte titles from being cut mid-character.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func NormalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return strings.TrimPrefix(tag, "#")
}
