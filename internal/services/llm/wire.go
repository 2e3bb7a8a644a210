package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lectern/internal/services"
)

const jsonResponseType = "json_object"

type completionRequest struct {
	Model          string            `json:"model"`
	Messages       []message         `json:"messages"`
	Temperature    *float64          `json:"temperature,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionResponse accepts the chat schema plus the streaming (delta) and
// legacy (text) shapes some providers return for non-streaming calls.
type completionResponse struct {
	Choices []struct {
		Message      reply  `json:"message"`
		Delta        reply  `json:"delta"`
		Text         string `json:"text"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type reply struct {
	Content string `json:"content"`
	Refusal string `json:"refusal"`
}

// firstChoice returns the first non-blank content along with the first
// finish reason and refusal seen.
func (r completionResponse) firstChoice() (content, finish, refusal string) {
	for _, choice := range r.Choices {
		if finish == "" {
			finish = strings.TrimSpace(choice.FinishReason)
		}
		if refusal == "" {
			refusal = strings.TrimSpace(firstNonBlank(choice.Message.Refusal, choice.Delta.Refusal))
		}
		if content = firstNonBlank(choice.Message.Content, choice.Delta.Content, choice.Text); content != "" {
			return content, finish, refusal
		}
	}
	return "", finish, refusal
}

// firstNonBlank returns the first value with visible text, unmodified.
func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// StatusError is a non-2xx answer from the completion endpoint.
type StatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d - %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// HTTPStatus lets services.StatusCode find the code through wrapping.
func (e *StatusError) HTTPStatus() int { return e.StatusCode }

// NoContentError is a 2xx answer whose choices carry no text.
type NoContentError struct {
	FinishReason string
	Refusal      string
	Snippet      string
}

func (e *NoContentError) Error() string {
	return fmt.Sprintf("empty content (finish_reason=%q, refusal=%q, response_snippet=%s)", e.FinishReason, e.Refusal, e.Snippet)
}

type request struct {
	stage string
	op    string
	body  completionRequest
}

func (c *Client) complete(ctx context.Context, call request) (string, error) {
	if c.apiKey == "" {
		return "", services.Wrap(services.ErrConfiguration, call.stage, call.op, "api key required", nil)
	}
	raw, err := c.post(ctx, call)
	if err != nil {
		return "", err
	}
	var resp completionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", services.Wrap(services.ErrTransport, call.stage, call.op, "decode response", err)
	}
	if resp.Error != nil {
		return "", services.Wrap(services.ErrTransport, call.stage, call.op, "api error: "+strings.TrimSpace(resp.Error.Message), nil)
	}
	if len(resp.Choices) == 0 {
		return "", services.Wrap(services.ErrEmptyResult, call.stage, call.op, "empty choices", nil)
	}
	content, finish, refusal := resp.firstChoice()
	if content == "" {
		return "", services.Wrap(services.ErrEmptyResult, call.stage, call.op, "", &NoContentError{
			FinishReason: finish,
			Refusal:      refusal,
			Snippet:      snippet(string(raw)),
		})
	}
	return content, nil
}

// post performs exactly one HTTP round trip and returns the 2xx body.
func (c *Client) post(ctx context.Context, call request) ([]byte, error) {
	encoded, err := json.Marshal(call.body)
	if err != nil {
		return nil, services.Wrap(services.ErrInputShape, call.stage, call.op, "encode body", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, call.stage, call.op, "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
		req.Header.Set("Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.roundTripError(ctx, call, "http error", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.roundTripError(ctx, call, "read body", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		wait, _ := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, services.Wrap(services.ErrTransport, call.stage, call.op, "", &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			RetryAfter: wait,
		})
	}
	return body, nil
}

// roundTripError prefers the caller's context state over the net error so a
// deadline always surfaces as a timeout and a cancel as a cancel.
func (c *Client) roundTripError(ctx context.Context, call request, message string, err error) error {
	marker := services.ContextMarker(ctx.Err())
	if marker == nil {
		marker = services.ContextMarker(err)
	}
	var netErr net.Error
	switch {
	case marker != nil:
	case errors.As(err, &netErr) && netErr.Timeout():
		marker = services.ErrTimeout
		message = fmt.Sprintf("%s (timeout=%s)", message, c.http.Timeout)
	default:
		marker = services.ErrTransport
	}
	return services.Wrap(marker, call.stage, call.op, message, err)
}

// parseRetryAfter reads either delay-seconds or an HTTP date.
func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	var wait time.Duration
	if seconds, err := strconv.Atoi(value); err == nil {
		wait = time.Duration(seconds) * time.Second
	} else if when, err := http.ParseTime(value); err == nil {
		wait = time.Until(when)
	} else {
		return 0, false
	}
	if wait < 0 {
		return 0, false
	}
	return wait, true
}
