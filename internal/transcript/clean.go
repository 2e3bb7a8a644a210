package transcript

import (
	"strings"

	"lectern/internal/textutil"
)

// CleanLines strips decorative glyphs, trims, and drops blank lines while
// keeping speech order. An empty result is a NoTranscriptFound failure.
func CleanLines(raw []string) ([]string, error) {
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		cleaned := strings.TrimSpace(textutil.StripPictographs(line))
		if cleaned == "" {
			continue
		}
		lines = append(lines, cleaned)
	}
	if len(lines) == 0 {
		return nil, newError(NoTranscriptFound, MessageNoSubtitles, nil)
	}
	return lines, nil
}
