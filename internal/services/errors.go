package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInputShape    = errors.New("input shape error")
	ErrSource        = errors.New("source error")
	ErrRateLimited   = errors.New("rate limited")
	ErrTransport     = errors.New("transport error")
	ErrTimeout       = errors.New("timeout")
	ErrEmptyResult   = errors.New("empty result")
	ErrConfiguration = errors.New("configuration error")
	ErrCanceled      = errors.New("canceled")
)

// Kind names a failure class for callers that switch on error categories.
type Kind string

const (
	KindUnknown       Kind = ""
	KindInputShape    Kind = "input_shape"
	KindSource        Kind = "source"
	KindRateLimited   Kind = "rate_limited"
	KindTransport     Kind = "transport"
	KindTimeout       Kind = "timeout"
	KindEmptyResult   Kind = "empty_result"
	KindConfiguration Kind = "configuration"
	KindCanceled      Kind = "canceled"
)

// kindOrder is checked top to bottom; the first marker found in the chain wins.
var kindOrder = []struct {
	marker error
	kind   Kind
}{
	{ErrInputShape, KindInputShape},
	{ErrRateLimited, KindRateLimited},
	{ErrTimeout, KindTimeout},
	{ErrCanceled, KindCanceled},
	{ErrEmptyResult, KindEmptyResult},
	{ErrSource, KindSource},
	{ErrTransport, KindTransport},
	{ErrConfiguration, KindConfiguration},
}

// StageError carries a failure marker together with the stage and operation
// that produced it.
type StageError struct {
	Marker    error
	Stage     string
	Operation string
	Message   string
	Err       error
}

func (e *StageError) Error() string {
	detail := buildDetail(e.Stage, e.Operation, e.Message)
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Marker, detail, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Marker, detail)
}

func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Marker}
	}
	return []error{e.Marker, e.Err}
}

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	if marker == nil {
		marker = ErrTransport
	}
	return &StageError{
		Marker:    marker,
		Stage:     strings.TrimSpace(stage),
		Operation: strings.TrimSpace(operation),
		Message:   strings.TrimSpace(message),
		Err:       err,
	}
}

// KindOf resolves the failure class of err. Bare context errors are mapped to
// timeout or canceled so callers never need to inspect them separately.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, entry := range kindOrder {
		if errors.Is(err, entry.marker) {
			return entry.kind
		}
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	}
	return KindUnknown
}

// Details returns the outermost StageError in the chain, if any.
func Details(err error) (*StageError, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr, true
	}
	return nil, false
}

// StatusCode reports the remote HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var statusErr interface{ HTTPStatus() int }
	if errors.As(err, &statusErr) {
		return statusErr.HTTPStatus(), true
	}
	return 0, false
}

// ContextMarker maps a context error to the matching marker. Returns nil when
// err is not a context error.
func ContextMarker(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, context.Canceled):
		return ErrCanceled
	default:
		return nil
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
