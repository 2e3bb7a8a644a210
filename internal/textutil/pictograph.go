package textutil

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// pictographRanges lists the code-point blocks treated as decorative glyphs.
// The last block is deliberately wide and covers enclosed alphanumerics
// through the enclosed ideographic supplement.
var pictographRanges = [][2]rune{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // symbols and pictographs
	{0x1F680, 0x1F6FF}, // transport and map symbols
	{0x1F1E0, 0x1F1FF}, // regional indicators
	{0x2500, 0x2BEF},
	{0x2702, 0x27B0}, // dingbats
	{0x24C2, 0x1F251},
}

func isPictograph(r rune) bool {
	for _, block := range pictographRanges {
		if r >= block[0] && r <= block[1] {
			return true
		}
	}
	return false
}

// StripPictographs removes decorative glyphs from a caption line. Other runes,
// including punctuation and whitespace, are left untouched.
func StripPictographs(line string) string {
	if line == "" {
		return ""
	}
	out, _, err := transform.String(runes.Remove(runes.Predicate(isPictograph)), line)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if isPictograph(r) {
				return -1
			}
			return r
		}, line)
	}
	return out
}
