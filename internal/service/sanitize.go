package service

import (
	"html"
	"strings"
	"unicode"
)

// sanitizeText trims, strips control characters, escapes markup and caps
// the length of free-text input before it reaches storage or email bodies.
func sanitizeText(in string, maxLen int) string {
	in = strings.TrimSpace(in)
	in = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, in)
	in = html.EscapeString(in)

	runes := []rune(in)
	if len(runes) > maxLen {
		in = string(runes[:maxLen])
	}
	return in
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
