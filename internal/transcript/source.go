package transcript

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language preference is supplied.
const DefaultLanguage = "en"

// Source yields the cleaned, ordered lines for a content reference.
type Source interface {
	Fetch(ctx context.Context, ref, lang string) ([]string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, ref, lang string) ([]string, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context, ref, lang string) ([]string, error) {
	return f(ctx, ref, lang)
}

// NormalizeLanguage canonicalizes a BCP 47 language preference, defaulting
// to English for blank input.
func NormalizeLanguage(lang string) (string, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return DefaultLanguage, nil
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return "", newError(InvalidReference, "Invalid language code: "+lang, err)
	}
	return tag.String(), nil
}
