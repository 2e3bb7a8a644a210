package transcript

import (
	"net/url"
	"regexp"
	"strings"
)

var bareVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ParseVideoID extracts the video identifier from a watch URL, a short link,
// a shorts/embed/live path, or a bare 11-character ID.
func ParseVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if bareVideoID.MatchString(raw) {
		return raw, nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", newError(InvalidReference, MessageInvalidURL, err)
	}
	switch strings.ToLower(parsed.Hostname()) {
	case "www.youtube.com", "youtube.com", "m.youtube.com":
		if id := pathVideoID(parsed.Path); id != "" {
			return id, nil
		}
		id := strings.TrimSpace(parsed.Query().Get("v"))
		if id == "" {
			return "", newError(InvalidReference, MessageNoVideoID, nil)
		}
		return id, nil
	case "youtu.be":
		id := strings.Trim(parsed.Path, "/")
		if id == "" {
			return "", newError(InvalidReference, MessageNoVideoID, nil)
		}
		return id, nil
	default:
		return "", newError(InvalidReference, MessageInvalidURL, nil)
	}
}

func pathVideoID(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	switch parts[0] {
	case "shorts", "embed", "live":
		return strings.TrimSpace(parts[1])
	default:
		return ""
	}
}
