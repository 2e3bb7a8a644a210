package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lectern/internal/logging"
	"lectern/internal/services"
)

// DefaultDifficulty applies when the caller leaves difficulty blank.
const DefaultDifficulty = "medium"

const topicPromptFormat = "Extract 3 to 5 main topics from this summarized text:\n\n%s"

const questionPromptFormat = `
Using the following summary and topics, generate %d multiple-choice quiz questions.
Each question must be of %s level, and must include 4 options (A, B, C, D) and the correct answer.

Format like:
Q1. Question?
A. Option 1
B. Option 2
C. Option 3
D. Option 4
Answer: A

Summarized Text:
%s

Topics:
%s
`

// Completer sends one prompt to the remote generation service.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Result carries both steps' raw output.
type Result struct {
	Topics string `json:"topics,omitempty"`
	Text   string `json:"quiz"`
}

// Synthesizer runs the quiz stage.
type Synthesizer struct {
	completer Completer
	timeout   time.Duration
	logger    *slog.Logger
}

// Option customizes a Synthesizer.
type Option func(*Synthesizer)

// WithTimeout bounds each of the two remote calls separately.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Synthesizer) {
		s.timeout = timeout
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		s.logger = logger
	}
}

// New constructs a Synthesizer around completer.
func New(completer Completer, opts ...Option) *Synthesizer {
	s := &Synthesizer{completer: completer}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "quiz")
	return s
}

// TopicPrompt renders the topic extraction instruction.
func TopicPrompt(summary string) string {
	return fmt.Sprintf(topicPromptFormat, summary)
}

// QuestionPrompt renders the question generation instruction for exactly
// count question blocks.
func QuestionPrompt(summary, topics string, count int, difficulty string) string {
	return fmt.Sprintf(questionPromptFormat, count, difficulty, summary, topics)
}

// Synthesize extracts topics, then generates count questions. Neither call is
// retried, and the question count in the output is whatever the model
// produced.
func (s *Synthesizer) Synthesize(ctx context.Context, summary string, count int, difficulty string) (Result, error) {
	ctx = services.WithStage(ctx, services.StageQuizzing)
	if strings.TrimSpace(summary) == "" {
		return Result{}, services.Wrap(services.ErrInputShape, services.StageQuizzing, "validate", "Summary is required", nil)
	}
	if count <= 0 {
		return Result{}, services.Wrap(services.ErrInputShape, services.StageQuizzing, "validate", fmt.Sprintf("question count must be positive, got %d", count), nil)
	}
	difficulty = strings.TrimSpace(difficulty)
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}
	if s.completer == nil {
		return Result{}, services.Wrap(services.ErrConfiguration, services.StageQuizzing, "validate", "no generation service configured", nil)
	}

	logger := logging.WithContext(ctx, s.logger)

	topics, err := s.call(ctx, "extract topics", TopicPrompt(summary))
	if err != nil {
		return Result{}, err
	}
	logger.Debug("topics extracted", logging.Int("topic_chars", len(topics)))

	questions, err := s.call(ctx, "generate questions", QuestionPrompt(summary, topics, count, difficulty))
	if err != nil {
		return Result{}, err
	}
	logger.Debug("questions generated",
		logging.Int("requested", count),
		logging.String("difficulty", difficulty),
	)
	return Result{Topics: topics, Text: questions}, nil
}

func (s *Synthesizer) call(ctx context.Context, op, prompt string) (string, error) {
	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	out, err := s.completer.Complete(callCtx, prompt)
	if err != nil {
		if callCtx.Err() != nil && ctx.Err() == nil {
			return "", services.Wrap(services.ErrTimeout, services.StageQuizzing, op, fmt.Sprintf("no response within %s", s.timeout), err)
		}
		return "", services.Mark(err, services.ErrTransport, services.StageQuizzing, op)
	}
	if strings.TrimSpace(out) == "" {
		return "", services.Wrap(services.ErrEmptyResult, services.StageQuizzing, op, "generation service returned no text", nil)
	}
	return out, nil
}
