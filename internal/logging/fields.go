package logging

import (
	"context"
	"log/slog"

	"lectern/internal/services"
)

// Keys shared by every lectern log line.
const (
	FieldComponent     = "component"
	FieldStage         = "stage"
	FieldCorrelationID = "correlation_id"
	FieldSource        = "source"
	FieldEventType     = "event_type"
	FieldErrorHint     = "error_hint"
	FieldImpact        = "impact"
	FieldErrorKind     = "error_kind"
)

type Attr = slog.Attr

// Attribute constructors, re-exported so call sites import one package.
var (
	String   = slog.String
	Int      = slog.Int
	Float64  = slog.Float64
	Duration = slog.Duration
)

// Error records err under the "error" key.
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// contextFields lists the request-scoped values copied onto log lines.
var contextFields = []struct {
	key    string
	lookup func(context.Context) (string, bool)
}{
	{FieldStage, services.StageFromContext},
	{FieldCorrelationID, services.RequestIDFromContext},
	{FieldSource, services.SourceFromContext},
}

// ContextFields returns the stage, request ID and source stored on ctx.
func ContextFields(ctx context.Context) []Attr {
	if ctx == nil {
		return nil
	}
	var attrs []Attr
	for _, field := range contextFields {
		if value, ok := field.lookup(ctx); ok {
			attrs = append(attrs, slog.String(field.key, value))
		}
	}
	return attrs
}

// WithContext returns logger tagged with the fields ContextFields finds on ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	attrs := ContextFields(ctx)
	if len(attrs) == 0 {
		return logger
	}
	return slog.New(logger.Handler().WithAttrs(attrs))
}
