package util

import "strings"

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// Slug collapses whitespace runs to single hyphens for use in search URLs.
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), "-")
}

// SplitList splits a comma-separated config value into trimmed, non-empty tokens.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
