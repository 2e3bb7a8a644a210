package textutil

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes text for keyword scoring. Letters outside ASCII are
// dropped rather than transliterated, so "café" becomes "caf".
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false
	for _, r := range strings.ToLower(text) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}

// JoinLines joins transcript lines with a single space.
func JoinLines(lines []string) string {
	return strings.Join(lines, " ")
}
