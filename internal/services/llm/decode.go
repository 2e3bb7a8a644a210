package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DecodeLLMJSON unmarshals a model reply into target. When the reply is not
// clean JSON it retries on the outermost {...} span of the unfenced text,
// since models like to add code fences or a sentence of prose.
func DecodeLLMJSON(content string, target any) error {
	raw := strings.TrimSpace(content)
	if raw == "" {
		return errors.New("empty payload")
	}
	err := json.Unmarshal([]byte(raw), target)
	if err == nil {
		return nil
	}
	candidate := outermostObject(StripCodeFence(raw))
	if candidate == "" || candidate == raw {
		return fmt.Errorf("%w (payload snippet: %s)", err, snippet(raw))
	}
	if err := json.Unmarshal([]byte(candidate), target); err != nil {
		return fmt.Errorf("%w (extracted payload snippet: %s)", err, snippet(candidate))
	}
	return nil
}

func outermostObject(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || text[0] == '{' || text[0] == '[' {
		return text
	}
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return text
	}
	return strings.TrimSpace(text[start : end+1])
}

// StripCodeFence removes one surrounding markdown fence. A first line without
// spaces is treated as the fence's language tag.
func StripCodeFence(content string) string {
	text := strings.TrimSpace(content)
	body, fenced := strings.CutPrefix(text, "```")
	if !fenced {
		return text
	}
	if tag, rest, ok := strings.Cut(body, "\n"); ok && !strings.ContainsAny(strings.TrimSpace(tag), " \t") {
		body = rest
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// snippet collapses whitespace and caps text at 160 runes for error messages.
func snippet(text string) string {
	clean := strings.Join(strings.Fields(text), " ")
	if clean == "" {
		return "<empty>"
	}
	if runes := []rune(clean); len(runes) > 160 {
		return string(runes[:160]) + "..."
	}
	return clean
}
