// Package transcript acquires spoken-line transcripts for a content reference.
//
// Source is the contract consumed by the pipeline. Two implementations ship
// here: HTTPSource talks to a transcript relay service over HTTP, and
// FileSource reads local JSON, SRT, or plain-text captions. Both return lines
// already passed through CleanLines, so callers never see decorative glyphs
// or blank lines.
//
// Failures are reported as *Error values with a closed Reason set. Each Error
// also unwraps to the matching services marker (ErrSource or
// ErrRateLimited), so callers can use either errors.As or services.KindOf.
//
// FetchWithRetry is the only retry loop in the module, and it only retries
// rate limiting.
package transcript
