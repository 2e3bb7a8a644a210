package services

import "context"

// contextKey scopes the request values lectern stores on a context.
type contextKey int

const (
	stageKey contextKey = iota
	requestIDKey
	sourceKey
)

func withValue(ctx context.Context, key contextKey, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func lookup(ctx context.Context, key contextKey) (string, bool) {
	value, _ := ctx.Value(key).(string)
	return value, value != ""
}

// WithStage records the pipeline stage (fetching, classifying, ...) on ctx.
// A blank stage leaves ctx unchanged.
func WithStage(ctx context.Context, stage string) context.Context {
	return withValue(ctx, stageKey, stage)
}

// StageFromContext reports the stage recorded by WithStage.
func StageFromContext(ctx context.Context) (string, bool) { return lookup(ctx, stageKey) }

// WithRequestID records the correlation ID shared by every log line of one
// pipeline run.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) { return lookup(ctx, requestIDKey) }

// WithSource records the transcript reference being processed.
func WithSource(ctx context.Context, ref string) context.Context {
	return withValue(ctx, sourceKey, ref)
}

func SourceFromContext(ctx context.Context) (string, bool) { return lookup(ctx, sourceKey) }
