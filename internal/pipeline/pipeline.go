package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"lectern/internal/classifier"
	"lectern/internal/logging"
	"lectern/internal/quiz"
	"lectern/internal/services"
	"lectern/internal/summarize"
	"lectern/internal/transcript"
)

// Gate decides whether a transcript is worth summarizing.
type Gate interface {
	Classify(lines []string) classifier.Result
}

// SummaryStage condenses transcript text.
type SummaryStage interface {
	Summarize(ctx context.Context, text string, wordBudget int) (summarize.Result, error)
}

// QuizStage turns a summary into quiz text.
type QuizStage interface {
	Synthesize(ctx context.Context, summary string, count int, difficulty string) (quiz.Result, error)
}

// Options wires the stages and per-run parameters.
type Options struct {
	Source     transcript.Source
	Gate       Gate
	Summarizer SummaryStage
	Quiz       QuizStage
	Logger     *slog.Logger

	Language      string
	WordBudget    int
	QuestionCount int
	Difficulty    string

	// FetchRetry applies to RateLimited transcript failures only.
	FetchRetry transcript.RetryPolicy

	// Stage deadlines. Zero leaves only the caller's deadline.
	FetchTimeout   time.Duration
	SummaryTimeout time.Duration
	QuizTimeout    time.Duration

	// NewRequestID overrides uuid generation (tests).
	NewRequestID func() string
}

// Pipeline runs the fetch, gate, summary, and quiz stages in order.
type Pipeline struct {
	opts   Options
	logger *slog.Logger
}

// New validates the wiring and returns a ready pipeline.
func New(opts Options) (*Pipeline, error) {
	const op = "pipeline init"
	if opts.Source == nil {
		return nil, services.Wrap(services.ErrConfiguration, "", op, "transcript source required", nil)
	}
	if opts.Gate == nil {
		return nil, services.Wrap(services.ErrConfiguration, "", op, "classifier required", nil)
	}
	if opts.Summarizer == nil {
		return nil, services.Wrap(services.ErrConfiguration, "", op, "summarizer required", nil)
	}
	if opts.Quiz == nil {
		return nil, services.Wrap(services.ErrConfiguration, "", op, "quiz synthesizer required", nil)
	}
	if strings.TrimSpace(opts.Language) == "" {
		opts.Language = transcript.DefaultLanguage
	}
	if opts.WordBudget <= 0 {
		opts.WordBudget = summarize.DefaultWordBudget
	}
	if strings.TrimSpace(opts.Difficulty) == "" {
		opts.Difficulty = quiz.DefaultDifficulty
	}
	if opts.QuestionCount <= 0 {
		opts.QuestionCount = DefaultQuestionCount
	}
	if opts.NewRequestID == nil {
		opts.NewRequestID = uuid.NewString
	}
	return &Pipeline{
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "pipeline"),
	}, nil
}

// DefaultQuestionCount is used when Options.QuestionCount is not positive.
const DefaultQuestionCount = 5

// Run executes one pipeline pass for ref. The returned error is the same
// value as Report.Err and is nil for Done and Rejected outcomes.
func (p *Pipeline) Run(ctx context.Context, ref string) (*Report, error) {
	report := &Report{
		RequestID: p.opts.NewRequestID(),
		Source:    ref,
		State:     StateFetching,
	}
	ctx = services.WithRequestID(ctx, report.RequestID)
	ctx = services.WithSource(ctx, ref)
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("pipeline started", logging.String(logging.FieldEventType, "pipeline_start"))
	started := time.Now()

	err := p.stage(ctx, report, services.StageFetching, p.opts.FetchTimeout, func(stageCtx context.Context) error {
		lines, err := transcript.FetchWithRetry(stageCtx, p.opts.Source, ref, p.opts.Language, p.retryPolicy(logger))
		if err != nil {
			return services.Mark(err, services.ErrSource, services.StageFetching, "fetch transcript")
		}
		// Sources are not trusted to have cleaned their own output.
		lines, err = transcript.CleanLines(lines)
		if err != nil {
			return services.Mark(err, services.ErrSource, services.StageFetching, "clean transcript")
		}
		report.Transcript = lines
		return nil
	})
	if err != nil {
		return report, err
	}

	report.State = StateClassifying
	err = p.stage(ctx, report, services.StageClassifying, 0, func(context.Context) error {
		result := p.opts.Gate.Classify(report.Transcript)
		report.Classification = &result
		return nil
	})
	if err != nil {
		return report, err
	}
	if !report.Classification.Educational {
		report.State = StateRejected
		logger.Info("transcript rejected by classifier",
			logging.String(logging.FieldEventType, "pipeline_rejected"),
			logging.Float64("total_score", report.Classification.TotalScore),
			logging.Int("keywords_matched", len(report.Classification.Matches)),
		)
		return report, nil
	}

	report.State = StateSummarizing
	err = p.stage(ctx, report, services.StageSummarizing, p.opts.SummaryTimeout, func(stageCtx context.Context) error {
		result, err := p.opts.Summarizer.Summarize(stageCtx, strings.Join(report.Transcript, " "), p.opts.WordBudget)
		if err != nil {
			return err
		}
		report.Summary = &result
		return nil
	})
	if err != nil {
		return report, err
	}

	report.State = StateQuizzing
	err = p.stage(ctx, report, services.StageQuizzing, p.opts.QuizTimeout, func(stageCtx context.Context) error {
		result, err := p.opts.Quiz.Synthesize(stageCtx, report.Summary.Text, p.opts.QuestionCount, p.opts.Difficulty)
		if err != nil {
			return err
		}
		report.Quiz = &result
		return nil
	})
	if err != nil {
		return report, err
	}

	report.State = StateDone
	logger.Info("pipeline completed",
		logging.String(logging.FieldEventType, "pipeline_complete"),
		logging.Duration("elapsed", time.Since(started)),
	)
	return report, nil
}

// stage runs fn under the stage's context and deadline and records a failure
// on report. A deadline that fires while the caller is still waiting is
// reported as a timeout of this stage.
func (p *Pipeline) stage(ctx context.Context, report *Report, name string, timeout time.Duration, fn func(context.Context) error) error {
	stageCtx := services.WithStage(ctx, name)
	logger := logging.WithContext(stageCtx, p.logger)
	logger.Info("stage started", logging.String(logging.FieldEventType, "stage_start"))

	runCtx := stageCtx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(stageCtx, timeout)
		defer cancel()
	}
	started := time.Now()
	err := fn(runCtx)
	if err == nil {
		logger.Info("stage completed",
			logging.String(logging.FieldEventType, "stage_complete"),
			logging.Duration("elapsed", time.Since(started)),
		)
		return nil
	}
	switch {
	case ctx.Err() != nil:
		if kind := services.KindOf(err); kind != services.KindCanceled && kind != services.KindTimeout {
			err = services.Wrap(services.ContextMarker(ctx.Err()), name, "run stage", "", err)
		}
	case runCtx.Err() != nil && services.KindOf(err) != services.KindTimeout:
		err = services.Wrap(services.ErrTimeout, name, "stage deadline", fmt.Sprintf("no result within %s", timeout), err)
	}
	err = services.Mark(err, services.ErrTransport, name, "run stage")

	report.State = StateFailed
	report.FailedStage = name
	report.Err = err
	logging.ErrorWithContext(logger, "stage failed", "stage_failure",
		logging.String(logging.FieldErrorKind, string(services.KindOf(err))),
		logging.String(logging.FieldErrorHint, errorHint(err)),
		logging.Duration("elapsed", time.Since(started)),
		logging.Error(err),
	)
	return err
}

func (p *Pipeline) retryPolicy(logger *slog.Logger) transcript.RetryPolicy {
	policy := p.opts.FetchRetry
	if policy.Logger == nil {
		policy.Logger = logger
	}
	return policy
}

func errorHint(err error) string {
	switch services.KindOf(err) {
	case services.KindRateLimited:
		return "wait before retrying; the transcript source is throttling requests"
	case services.KindTimeout:
		return "raise the stage timeout or retry later"
	case services.KindSource:
		return "check the video reference and that captions exist"
	case services.KindConfiguration:
		return "run lectern config validate"
	default:
		return "check logs for details"
	}
}
