// Package summarize condenses transcript text into a topic-wise summary with a
// single remote generation call.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lectern/internal/logging"
	"lectern/internal/services"
)

// DefaultWordBudget is used when the caller does not supply a positive budget.
const DefaultWordBudget = 70

const promptFormat = "Summarize the following text in about %d words in a listwise and topic-wise manner:\n\n%s"

// Completer sends one prompt to the remote generation service.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Result is the generated summary, returned verbatim.
type Result struct {
	Text string `json:"summary"`
}

// Summarizer runs the summarization stage.
type Summarizer struct {
	completer Completer
	timeout   time.Duration
	logger    *slog.Logger
}

// Option customizes a Summarizer.
type Option func(*Summarizer)

// WithTimeout bounds the remote call. Zero leaves only the caller's deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Summarizer) {
		s.timeout = timeout
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Summarizer) {
		s.logger = logger
	}
}

// New constructs a Summarizer around completer.
func New(completer Completer, opts ...Option) *Summarizer {
	s := &Summarizer{completer: completer}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "summarize")
	return s
}

// BuildPrompt renders the summarization instruction. The word budget is
// advisory to the model and is not enforced on the result.
func BuildPrompt(text string, wordBudget int) string {
	if wordBudget <= 0 {
		wordBudget = DefaultWordBudget
	}
	return fmt.Sprintf(promptFormat, wordBudget, text)
}

// Summarize issues exactly one remote call. The summary is never retried
// locally so a failure cannot produce a duplicate billed request.
func (s *Summarizer) Summarize(ctx context.Context, text string, wordBudget int) (Result, error) {
	const op = "summarize"
	ctx = services.WithStage(ctx, services.StageSummarizing)
	if strings.TrimSpace(text) == "" {
		return Result{}, services.Wrap(services.ErrInputShape, services.StageSummarizing, op, "Transcript is required", nil)
	}
	if s.completer == nil {
		return Result{}, services.Wrap(services.ErrConfiguration, services.StageSummarizing, op, "no generation service configured", nil)
	}
	if wordBudget <= 0 {
		wordBudget = DefaultWordBudget
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	logger := logging.WithContext(ctx, s.logger)
	logger.Debug("requesting summary", logging.Int("word_budget", wordBudget), logging.Int("input_chars", len(text)))

	generated, err := s.completer.Complete(callCtx, BuildPrompt(text, wordBudget))
	if err != nil {
		if callErr := callCtx.Err(); callErr != nil && ctx.Err() == nil {
			// Our own per-call deadline fired; report it as a timeout even if
			// the completer surfaced a transport error.
			return Result{}, services.Wrap(services.ErrTimeout, services.StageSummarizing, op, fmt.Sprintf("no response within %s", s.timeout), err)
		}
		return Result{}, services.Mark(err, services.ErrTransport, services.StageSummarizing, op)
	}
	if strings.TrimSpace(generated) == "" {
		return Result{}, services.Wrap(services.ErrEmptyResult, services.StageSummarizing, op, "generation service returned no text", nil)
	}
	return Result{Text: generated}, nil
}
