package ticker

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize strips diacritics and all whitespace and uppercases the result,
// so " aapl " and "AAPL" resolve to the same underlying symbol.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = stripDiacritics(s)
	s = strings.Join(strings.Fields(s), "")
	return strings.ToUpper(s)
}

func stripDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) { // Mn = Mark, Nonspacing (combining accents)
			b.WriteRune(r)
		}
	}
	return b.String()
}
