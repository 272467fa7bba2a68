package domain

import (
	"strings"
	"unicode"
)

// NormalizeAnswer prepares an answer for frequency-database storage:
// trims surrounding whitespace and upper-cases it. Returns "" for blank input.
func NormalizeAnswer(answer string) string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return ""
	}
	return strings.ToUpper(answer)
}

// NormalizeWord prepares a word for language-frequency lookups:
// trims surrounding whitespace and lower-cases it.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// HasLetter reports whether s contains at least one letter.
func HasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
