// Package pipeline chains the transcript source, the educational gate, the
// summarizer, and the quiz synthesizer into a single run.
//
// A run moves through Fetching, Classifying, Summarizing, and Quizzing and
// ends in Done, Rejected, or Failed. Rejected is a successful outcome: the
// transcript did not pass the gate, so no remote generation calls are made.
// The first failing stage halts the run and is recorded on the Report; no
// stage is retried or repaired.
package pipeline
