package transcript

import (
	"context"
	"errors"
	"testing"
	"time"
)

type scriptedSource struct {
	errs  []error
	calls int
}

func (s *scriptedSource) Fetch(context.Context, string, string) ([]string, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return nil, s.errs[idx]
	}
	return []string{"ok"}, nil
}

func recordSleeps(delays *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func TestFetchWithRetryRetriesRateLimit(t *testing.T) {
	src := &scriptedSource{errs: []error{
		&Error{Reason: RateLimited},
		&Error{Reason: RateLimited, RetryAfter: 3 * time.Second},
	}}
	var delays []time.Duration
	policy := RetryPolicy{MaxRetries: 3, InitialBackoff: time.Second, MaxBackoff: 10 * time.Second, Sleep: recordSleeps(&delays)}

	lines, err := FetchWithRetry(context.Background(), src, "ref", "en", policy)
	if err != nil {
		t.Fatalf("FetchWithRetry: %v", err)
	}
	if len(lines) != 1 || src.calls != 3 {
		t.Fatalf("lines=%q calls=%d", lines, src.calls)
	}
	if len(delays) != 2 || delays[0] != time.Second || delays[1] != 3*time.Second {
		t.Fatalf("unexpected delays %v", delays)
	}
}

func TestFetchWithRetryGivesUp(t *testing.T) {
	src := &scriptedSource{errs: []error{
		&Error{Reason: RateLimited}, &Error{Reason: RateLimited}, &Error{Reason: RateLimited},
	}}
	var delays []time.Duration
	policy := RetryPolicy{MaxRetries: 2, InitialBackoff: time.Second, MaxBackoff: 10 * time.Second, Sleep: recordSleeps(&delays)}

	_, err := FetchWithRetry(context.Background(), src, "ref", "en", policy)
	if reason, _ := ReasonOf(err); reason != RateLimited {
		t.Fatalf("expected RateLimited, got %v", err)
	}
	if src.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", src.calls)
	}
	if len(delays) != 2 || delays[1] != 2*time.Second {
		t.Fatalf("unexpected delays %v", delays)
	}
}

func TestFetchWithRetryTerminalReasons(t *testing.T) {
	for _, reason := range []Reason{SourceUnavailable, TranscriptsDisabled, NoTranscriptFound, InvalidReference, Unknown} {
		src := &scriptedSource{errs: []error{&Error{Reason: reason}}}
		_, err := FetchWithRetry(context.Background(), src, "ref", "en", RetryPolicy{MaxRetries: 5})
		if got, _ := ReasonOf(err); got != reason {
			t.Fatalf("expected %q, got %v", reason, err)
		}
		if src.calls != 1 {
			t.Fatalf("%s: expected a single attempt, got %d", reason, src.calls)
		}
	}

	src := &scriptedSource{errs: []error{errors.New("plain")}}
	if _, err := FetchWithRetry(context.Background(), src, "ref", "en", RetryPolicy{MaxRetries: 5}); err == nil || src.calls != 1 {
		t.Fatalf("expected plain error without retry, calls=%d", src.calls)
	}
}

func TestFetchWithRetryStopsOnCancel(t *testing.T) {
	src := &scriptedSource{errs: []error{&Error{Reason: RateLimited}, &Error{Reason: RateLimited}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FetchWithRetry(ctx, src, "ref", "en", RetryPolicy{MaxRetries: 3, InitialBackoff: time.Hour})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetryPolicyBackoff(t *testing.T) {
	p := RetryPolicy{InitialBackoff: time.Second, MaxBackoff: 5 * time.Second}
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 5 * time.Second, 5 * time.Second}
	for i, w := range want {
		if got := p.backoff(i + 1); got != w {
			t.Fatalf("backoff(%d) = %v, want %v", i+1, got, w)
		}
	}
	if got := (RetryPolicy{}).backoff(3); got != 0 {
		t.Fatalf("zero policy backoff = %v", got)
	}
}
