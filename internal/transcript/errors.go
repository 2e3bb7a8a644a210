package transcript

import (
	"errors"
	"time"

	"lectern/internal/services"
)

// Reason enumerates why a transcript could not be produced.
type Reason string

const (
	SourceUnavailable   Reason = "source_unavailable"
	TranscriptsDisabled Reason = "transcripts_disabled"
	NoTranscriptFound   Reason = "no_transcript_found"
	InvalidReference    Reason = "invalid_reference"
	RateLimited         Reason = "rate_limited"
	Unknown             Reason = "unknown"
)

// User-facing messages. Callers may depend on these exact strings.
const (
	MessageUnavailable     = "Video is unavailable"
	MessageDisabled        = "Transcripts are disabled for this video"
	MessageNotFound        = "No transcript found for this video"
	MessageNoSubtitles     = "Sorry, the video doesn't have any subtitles."
	MessageInvalidURL      = "Invalid YouTube URL"
	MessageNoVideoID       = "No video ID found in URL."
	MessageRateLimited     = "YouTube is rate limiting you (429 Too Many Requests). Try again later."
	messageUnhandledPrefix = "Unhandled error: "
)

// Error is a typed transcript failure.
type Error struct {
	Reason Reason
	// Detail overrides the default message for NoTranscriptFound and
	// InvalidReference, and is the payload of Unknown.
	Detail string
	// RetryAfter is the server-suggested delay for RateLimited, if any.
	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	switch e.Reason {
	case SourceUnavailable:
		return MessageUnavailable
	case TranscriptsDisabled:
		return MessageDisabled
	case NoTranscriptFound:
		if e.Detail != "" {
			return e.Detail
		}
		return MessageNotFound
	case InvalidReference:
		if e.Detail != "" {
			return e.Detail
		}
		return MessageInvalidURL
	case RateLimited:
		return MessageRateLimited
	default:
		detail := e.Detail
		if detail == "" && e.Err != nil {
			detail = e.Err.Error()
		}
		return messageUnhandledPrefix + detail
	}
}

// Unwrap exposes the services marker for the reason plus the cause.
func (e *Error) Unwrap() []error {
	marker := services.ErrSource
	if e.Reason == RateLimited {
		marker = services.ErrRateLimited
	}
	if e.Err == nil {
		return []error{marker}
	}
	return []error{marker, e.Err}
}

func newError(reason Reason, detail string, err error) *Error {
	return &Error{Reason: reason, Detail: detail, Err: err}
}

// ReasonOf returns the Reason carried by err, if err wraps an *Error.
func ReasonOf(err error) (Reason, bool) {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Reason, true
	}
	return "", false
}
