package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lectern/internal/services"
)

const (
	defaultRelayTimeout = 30 * time.Second
	defaultUserAgent    = "lectern/dev"
	errorBodyLimit      = 4096
)

// HTTPConfig describes the transcript relay client.
type HTTPConfig struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// HTTPSource fetches transcripts from a relay service exposing
// GET /transcripts/{video_id}?lang={code}.
type HTTPSource struct {
	baseURL   *url.URL
	userAgent string
	http      *http.Client
}

// NewHTTPSource builds an HTTPSource from cfg.
func NewHTTPSource(cfg HTTPConfig) (*HTTPSource, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errors.New("transcript: base url is required")
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("transcript: parse base url: %w", err)
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultRelayTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPSource{baseURL: baseURL, userAgent: userAgent, http: client}, nil
}

type relayResponse struct {
	Segments []struct {
		Text     string  `json:"text"`
		Start    float64 `json:"start"`
		Duration float64 `json:"duration"`
	} `json:"segments"`
}

type relayError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Fetch resolves the video ID from ref and downloads its transcript.
func (s *HTTPSource) Fetch(ctx context.Context, ref, lang string) ([]string, error) {
	videoID, err := ParseVideoID(ref)
	if err != nil {
		return nil, err
	}
	lang, err = NormalizeLanguage(lang)
	if err != nil {
		return nil, err
	}

	endpoint := s.baseURL.JoinPath("transcripts", videoID)
	params := url.Values{}
	params.Set("lang", lang)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, newError(Unknown, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, requestFailure(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, statusFailure(resp, body)
	}

	var payload relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if marker := services.ContextMarker(ctx.Err()); marker != nil {
			return nil, services.Wrap(marker, "fetching", "decode transcript", "", err)
		}
		return nil, newError(Unknown, "decode transcript: "+err.Error(), err)
	}
	raw := make([]string, 0, len(payload.Segments))
	for _, segment := range payload.Segments {
		raw = append(raw, segment.Text)
	}
	return CleanLines(raw)
}

func requestFailure(ctx context.Context, err error) error {
	if marker := services.ContextMarker(ctx.Err()); marker != nil {
		return services.Wrap(marker, "fetching", "transcript request", "", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return services.Wrap(services.ErrTimeout, "fetching", "transcript request", "", err)
	}
	return newError(Unknown, err.Error(), err)
}

// statusFailure maps relay status codes to reasons. Rate limiting is detected
// from the status code, never from message text.
func statusFailure(resp *http.Response, body []byte) error {
	var parsed relayError
	_ = json.Unmarshal(body, &parsed)
	code := strings.ToLower(strings.TrimSpace(parsed.Error.Code))
	message := strings.TrimSpace(parsed.Error.Message)
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	cause := fmt.Errorf("relay %s: %s", resp.Status, message)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		terr := newError(RateLimited, "", cause)
		terr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
		return terr
	case code == "video_unavailable" || resp.StatusCode == http.StatusGone:
		return newError(SourceUnavailable, "", cause)
	case code == "transcripts_disabled":
		return newError(TranscriptsDisabled, "", cause)
	case code == "no_transcript" || resp.StatusCode == http.StatusNotFound:
		return newError(NoTranscriptFound, "", cause)
	case resp.StatusCode == http.StatusBadRequest:
		return newError(InvalidReference, MessageInvalidURL, cause)
	default:
		return newError(Unknown, fmt.Sprintf("%d %s", resp.StatusCode, message), cause)
	}
}

func parseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if when, err := http.ParseTime(value); err == nil {
		if delay := time.Until(when); delay > 0 {
			return delay
		}
	}
	return 0
}
