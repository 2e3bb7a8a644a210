package transcript

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"lectern/internal/services"
)

// FileSource reads transcripts from local caption files. The reference is a
// path; the language preference is ignored.
type FileSource struct{}

// Fetch reads and cleans the transcript at path.
func (FileSource) Fetch(ctx context.Context, path, _ string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, services.Wrap(services.ContextMarker(err), "fetching", "read transcript file", "", err)
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, newError(InvalidReference, "No transcript file provided", nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(SourceUnavailable, "", err)
		}
		return nil, newError(Unknown, err.Error(), err)
	}

	var raw []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		raw, err = parseJSONLines(data)
	case ".srt", ".vtt":
		raw, err = splitLines(data)
		raw = captionLines(raw)
	default:
		raw, err = splitLines(data)
	}
	if err != nil {
		return nil, newError(Unknown, "read "+filepath.Base(path)+": "+err.Error(), err)
	}
	return CleanLines(raw)
}

// parseJSONLines accepts either an array of strings or an array of segment
// objects with a text field.
func parseJSONLines(data []byte) ([]string, error) {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		return lines, nil
	}
	var segments []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, err
	}
	lines = make([]string, 0, len(segments))
	for _, segment := range segments {
		lines = append(lines, segment.Text)
	}
	return lines, nil
}

// captionLines keeps the spoken lines of SRT or WebVTT captions. A digit-only
// line is a cue number only when the next non-blank line is a timing line.
func captionLines(raw []string) []string {
	var lines []string
	for i, line := range raw {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.Contains(line, "-->"):
			continue
		case line == "WEBVTT" || strings.HasPrefix(line, "WEBVTT "):
			continue
		case isDigitOnly(line) && strings.Contains(nextNonBlank(raw[i+1:]), "-->"):
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func nextNonBlank(lines []string) string {
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func splitLines(data []byte) ([]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func isDigitOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
