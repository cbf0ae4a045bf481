package textutil

import (
	"strings"
	"unicode"
)

// Sanitize normalizes raw extracted page text: control bytes (NUL included) are
// dropped and whitespace runs collapse to single spaces. Whitespace-only input
// yields the empty string. Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
