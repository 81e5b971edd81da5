package validation

import (
	"strings"
	"unicode"
)

// NormalizeSymbol trims, strips unprintable characters, and upper-cases a
// ticker symbol so "aapl " and "AAPL" key the same inventory.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(StripUnprintable(s)))
}

// StripUnprintable removes non-printable characters, allowing common whitespace
// like space, tab, newline, and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1 // Drop the rune
	}, s)
}
