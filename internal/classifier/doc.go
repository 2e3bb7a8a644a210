// Package classifier scores transcripts against a weighted keyword lexicon and
// decides whether the content is educational.
//
// The lexicon is an immutable value injected into the Classifier. Callers that
// want a different vocabulary build their own with NewLexicon or LoadLexicon;
// nothing in this package keeps process-wide mutable state, so a single
// Classifier is safe for concurrent use.
//
// Scoring joins the transcript lines, normalizes the text with
// textutil.Normalize, and counts non-overlapping substring occurrences of each
// keyword. Matching is not token-aware: "algorithm" matches inside
// "algorithms" and "class" matches inside "classic".
package classifier
