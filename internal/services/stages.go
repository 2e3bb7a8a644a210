package services

import "errors"

// Pipeline stage names, used for context annotation and error details.
const (
	StageFetching    = "fetching"
	StageClassifying = "classifying"
	StageSummarizing = "summarizing"
	StageQuizzing    = "quizzing"
)

// Mark guarantees err carries a marker. Errors that already have one pass
// through unchanged; context errors become ErrTimeout or ErrCanceled; anything
// else is wrapped with fallback.
func Mark(err, fallback error, stage, operation string) error {
	if err == nil {
		return nil
	}
	for _, entry := range kindOrder {
		if errors.Is(err, entry.marker) {
			return err
		}
	}
	if marker := ContextMarker(err); marker != nil {
		return Wrap(marker, stage, operation, "", err)
	}
	return Wrap(fallback, stage, operation, "", err)
}
