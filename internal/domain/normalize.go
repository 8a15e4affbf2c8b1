package domain

import (
	"strings"
	"unicode"
)

// NormalizeText prepares free text for keyword matching:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - folds every run of whitespace (tabs, newlines) into one space
//
// Diacritics and punctuation are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// ContainsNormalized reports whether needle occurs in haystack after both
// are normalized. An empty needle never matches.
func ContainsNormalized(haystack, needle string) bool {
	n := NormalizeText(needle)
	if n == "" {
		return false
	}
	return strings.Contains(NormalizeText(haystack), n)
}
