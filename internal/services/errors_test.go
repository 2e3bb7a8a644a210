package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"lectern/internal/services"
)

type statusErr struct{ code int }

func (e statusErr) Error() string   { return fmt.Sprintf("http %d", e.code) }
func (e statusErr) HTTPStatus() int { return e.code }

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTransport, "summarizing", "complete", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"transport error", "summarizing", "complete", "request failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrInputShape, "", "", "", nil)
	if got := err.Error(); got != "input shape error: service failure" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want services.Kind
	}{
		{"nil", nil, services.KindUnknown},
		{"plain", errors.New("x"), services.KindUnknown},
		{"input", services.Wrap(services.ErrInputShape, "classify", "", "bad", nil), services.KindInputShape},
		{"source", services.Wrap(services.ErrSource, "fetching", "", "", nil), services.KindSource},
		{"rate limited", services.Wrap(services.ErrRateLimited, "fetching", "", "", nil), services.KindRateLimited},
		{"transport", services.Wrap(services.ErrTransport, "quizzing", "", "", nil), services.KindTransport},
		{"timeout", services.Wrap(services.ErrTimeout, "summarizing", "", "", context.DeadlineExceeded), services.KindTimeout},
		{"empty", services.Wrap(services.ErrEmptyResult, "summarizing", "", "", nil), services.KindEmptyResult},
		{"bare deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), services.KindTimeout},
		{"bare cancel", context.Canceled, services.KindCanceled},
		{"double wrap", fmt.Errorf("outer: %w", services.Wrap(services.ErrSource, "", "", "", nil)), services.KindSource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetailsAndStatusCode(t *testing.T) {
	err := services.Wrap(services.ErrTransport, "summarizing", "complete", "remote rejected request", statusErr{code: 503})
	details, ok := services.Details(err)
	if !ok {
		t.Fatal("expected stage error details")
	}
	if details.Stage != "summarizing" || details.Operation != "complete" {
		t.Fatalf("unexpected details %+v", details)
	}
	code, ok := services.StatusCode(err)
	if !ok || code != 503 {
		t.Fatalf("StatusCode() = %d, %v", code, ok)
	}
	if _, ok := services.StatusCode(errors.New("plain")); ok {
		t.Fatal("expected no status for plain error")
	}
}

func TestContextMarker(t *testing.T) {
	if services.ContextMarker(context.DeadlineExceeded) != services.ErrTimeout {
		t.Fatal("deadline should map to timeout")
	}
	if services.ContextMarker(context.Canceled) != services.ErrCanceled {
		t.Fatal("cancel should map to canceled")
	}
	if services.ContextMarker(errors.New("x")) != nil {
		t.Fatal("plain error should map to nil")
	}
}

func TestMark(t *testing.T) {
	if services.Mark(nil, services.ErrTransport, "", "") != nil {
		t.Fatal("nil should stay nil")
	}
	marked := services.Wrap(services.ErrEmptyResult, "summarizing", "", "", nil)
	if got := services.Mark(marked, services.ErrTransport, "summarizing", "complete"); got != marked {
		t.Fatalf("already marked error should pass through, got %v", got)
	}
	deadline := fmt.Errorf("call: %w", context.DeadlineExceeded)
	if got := services.Mark(deadline, services.ErrTransport, "summarizing", "complete"); !errors.Is(got, services.ErrTimeout) {
		t.Fatalf("expected timeout marker, got %v", got)
	}
	plain := errors.New("socket closed")
	got := services.Mark(plain, services.ErrTransport, "quizzing", "topics")
	if !errors.Is(got, services.ErrTransport) || !errors.Is(got, plain) {
		t.Fatalf("expected transport marker around plain error, got %v", got)
	}
}
