package classifier

import (
	"bytes"
	"encoding/json"
	"strings"

	"lectern/internal/services"
)

const (
	// MessageInputRequired is reported when no transcript payload was supplied.
	MessageInputRequired = "Transcript JSON string required"
	// MessageNotStringList is reported for any payload that is not a JSON array of strings.
	MessageNotStringList = "Transcript must be a list of strings."
)

// DecodeLines parses a JSON array of strings. Any other shape, including an
// array with non-string members, is an input shape error.
func DecodeLines(raw []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, services.Wrap(services.ErrInputShape, "classifying", "decode", MessageInputRequired, nil)
	}
	if trimmed[0] != '[' {
		return nil, services.Wrap(services.ErrInputShape, "classifying", "decode", MessageNotStringList, nil)
	}
	var items []any
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, services.Wrap(services.ErrInputShape, "classifying", "decode", MessageNotStringList, err)
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line, ok := item.(string)
		if !ok {
			return nil, services.Wrap(services.ErrInputShape, "classifying", "decode", MessageNotStringList, nil)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// InputMessage extracts the human-readable reason from a DecodeLines error.
func InputMessage(err error) string {
	if details, ok := services.Details(err); ok && strings.TrimSpace(details.Message) != "" {
		return details.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
