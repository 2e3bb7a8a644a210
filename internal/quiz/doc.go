// Package quiz generates multiple-choice questions from a summary.
//
// Synthesis is a two-step chain against the remote generation service: the
// first call extracts 3 to 5 topics from the summary, the second asks for the
// questions, conditioned on the summary, those topics, the requested count,
// and a difficulty label. The second call never starts unless the first one
// succeeded.
//
// Synthesize returns the model output as-is. The model's adherence to the
// requested format is best effort and is not checked. Parse is a separate,
// opt-in layer for callers that want structured questions, and it reports
// deviations instead of correcting them.
package quiz
