// Package textutil provides the text canonicalization used before transcript
// scoring, plus glyph stripping for raw caption lines.
//
// Normalize lowercases text, drops every rune outside [a-z0-9] and whitespace,
// and collapses whitespace runs to a single space. The result is idempotent
// and safe to feed into substring keyword counting.
//
// StripPictographs removes emoji and other decorative symbols that caption
// providers embed in spoken lines.
package textutil
