package transcript

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lectern/internal/logging"
)

// RetryPolicy controls FetchWithRetry. The zero value performs no retries.
type RetryPolicy struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// Sleep overrides the wait between attempts (useful for tests).
	Sleep func(context.Context, time.Duration) error
	// Logger receives a warning per retry; nil disables logging.
	Logger *slog.Logger
}

// FetchWithRetry calls src.Fetch and retries only RateLimited failures, with
// exponential backoff honouring any server-suggested delay. Every other
// failure is returned immediately.
func FetchWithRetry(ctx context.Context, src Source, ref, lang string, policy RetryPolicy) ([]string, error) {
	sleep := policy.Sleep
	if sleep == nil {
		sleep = SleepWithContext
	}
	for attempt := 0; ; attempt++ {
		lines, err := src.Fetch(ctx, ref, lang)
		if err == nil {
			return lines, nil
		}
		reason, ok := ReasonOf(err)
		if !ok || reason != RateLimited || attempt >= policy.MaxRetries {
			return nil, err
		}
		delay := policy.backoff(attempt + 1)
		var terr *Error
		if errors.As(err, &terr) && terr.RetryAfter > 0 {
			delay = policy.capDelay(terr.RetryAfter)
		}
		logging.WarnWithContext(logging.WithContext(ctx, policy.Logger), "transcript rate limited; retrying", "transcript_rate_limited",
			logging.Int("attempt", attempt+1),
			logging.Int("max_retries", policy.MaxRetries),
			logging.Duration("delay", delay),
			logging.String(logging.FieldErrorHint, "reduce batch concurrency or raise transcript.rate_limit_backoff_seconds"),
			logging.String(logging.FieldImpact, "fetch delayed"),
		)
		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

// backoff returns the delay before retry n (1-based): base, base*2, base*4...
func (p RetryPolicy) backoff(retry int) time.Duration {
	base := p.InitialBackoff
	if base <= 0 {
		return 0
	}
	delay := base
	for i := 1; i < retry; i++ {
		if p.MaxBackoff > 0 && delay > p.MaxBackoff/2 {
			delay = p.MaxBackoff
			break
		}
		delay *= 2
	}
	return p.capDelay(delay)
}

func (p RetryPolicy) capDelay(delay time.Duration) time.Duration {
	if delay < 0 {
		return 0
	}
	if p.MaxBackoff > 0 && delay > p.MaxBackoff {
		return p.MaxBackoff
	}
	return delay
}

// SleepWithContext blocks for d, returning early if ctx is cancelled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
