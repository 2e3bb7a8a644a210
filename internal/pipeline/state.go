package pipeline

import (
	"lectern/internal/classifier"
	"lectern/internal/quiz"
	"lectern/internal/summarize"
)

// State identifies where a run is, or how it ended.
type State string

const (
	StateFetching    State = "fetching"
	StateClassifying State = "classifying"
	StateRejected    State = "rejected"
	StateSummarizing State = "summarizing"
	StateQuizzing    State = "quizzing"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// Terminal reports whether no further transition can happen from s.
func (s State) Terminal() bool {
	switch s {
	case StateRejected, StateDone, StateFailed:
		return true
	default:
		return false
	}
}

// Report is the outcome of one run. Fields for stages that never ran stay
// at their zero values.
type Report struct {
	RequestID      string
	Source         string
	State          State
	FailedStage    string
	Transcript     []string
	Classification *classifier.Result
	Summary        *summarize.Result
	Quiz           *quiz.Result
	Err            error
}

// Succeeded reports whether the run ended in Done or Rejected.
func (r *Report) Succeeded() bool {
	return r != nil && r.State.Terminal() && r.State != StateFailed
}

// Educational reports the gate verdict, false when classification never ran.
func (r *Report) Educational() bool {
	return r != nil && r.Classification != nil && r.Classification.Educational
}
