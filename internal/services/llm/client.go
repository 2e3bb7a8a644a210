package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"lectern/internal/services"
)

const (
	defaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"
	defaultTimeout  = 60 * time.Second
)

// Config holds the connection settings for one completion endpoint.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// Client sends single-turn prompts to an OpenRouter compatible endpoint.
type Client struct {
	apiKey      string
	endpoint    string
	model       string
	referer     string
	title       string
	http        *http.Client
	temperature *float64
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTemperature pins the sampling temperature. Without it the provider
// default applies.
func WithTemperature(temperature float64) Option {
	return func(c *Client) { c.temperature = &temperature }
}

// NewClient builds a client from cfg. A blank BaseURL selects OpenRouter.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	c := &Client{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		endpoint: strings.TrimSpace(cfg.BaseURL),
		model:    strings.TrimSpace(cfg.Model),
		referer:  strings.TrimSpace(cfg.Referer),
		title:    strings.TrimSpace(cfg.Title),
		http:     &http.Client{Timeout: timeout},
	}
	if c.endpoint == "" {
		c.endpoint = defaultEndpoint
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends prompt as the only user message and returns the trimmed
// reply. Errors carry the stage recorded on ctx.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	stage, _ := services.StageFromContext(ctx)
	call := request{stage: stage, op: "llm complete"}
	if strings.TrimSpace(prompt) == "" {
		return "", services.Wrap(services.ErrInputShape, stage, call.op, "prompt required", nil)
	}
	call.body = completionRequest{
		Model:       c.model,
		Messages:    []message{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	}
	return c.complete(ctx, call)
}

// HealthCheck asks the model for a fixed JSON reply, proving that the key,
// model and endpoint all work.
func (c *Client) HealthCheck(ctx context.Context) error {
	zero := 0.0
	call := request{
		op: "llm health",
		body: completionRequest{
			Model: c.model,
			Messages: []message{
				{Role: "system", Content: "You must respond with JSON only."},
				{Role: "user", Content: `Respond with {"ok":true}`},
			},
			Temperature:    &zero,
			ResponseFormat: map[string]string{"type": jsonResponseType},
		},
	}
	reply, err := c.complete(ctx, call)
	if err != nil {
		return err
	}
	var ping struct {
		OK bool `json:"ok"`
	}
	if err := DecodeLLMJSON(reply, &ping); err != nil {
		return services.Wrap(services.ErrEmptyResult, "", call.op, "parse payload", err)
	}
	if !ping.OK {
		return services.Wrap(services.ErrEmptyResult, "", call.op, "unexpected response", nil)
	}
	return nil
}
