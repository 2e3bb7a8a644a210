package transcript

import (
	"errors"
	"testing"

	"lectern/internal/services"
)

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantMsg string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", ""},
		{"bare host", "https://youtube.com/watch?v=abc123&t=42", "abc123", ""},
		{"short link", "https://youtu.be/abc123", "abc123", ""},
		{"short link with query", "https://youtu.be/abc123?t=10", "abc123", ""},
		{"mobile host", "https://m.youtube.com/watch?v=abc123", "abc123", ""},
		{"shorts path", "https://www.youtube.com/shorts/abc123", "abc123", ""},
		{"embed path", "https://youtube.com/embed/abc123?start=5", "abc123", ""},
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ", ""},
		{"missing v", "https://www.youtube.com/playlist?list=PL1", "", MessageNoVideoID},
		{"other host", "https://vimeo.com/12345", "", MessageInvalidURL},
		{"not a url", "lecture notes", "", MessageInvalidURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoID(tt.url)
			if tt.wantMsg != "" {
				var terr *Error
				if !errors.As(err, &terr) || terr.Reason != InvalidReference {
					t.Fatalf("expected InvalidReference, got %v", err)
				}
				if err.Error() != tt.wantMsg {
					t.Fatalf("message = %q, want %q", err.Error(), tt.wantMsg)
				}
				if services.KindOf(err) != services.KindSource {
					t.Fatalf("expected source kind, got %q", services.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVideoID: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseVideoID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
		kind services.Kind
	}{
		{&Error{Reason: SourceUnavailable}, MessageUnavailable, services.KindSource},
		{&Error{Reason: TranscriptsDisabled}, MessageDisabled, services.KindSource},
		{&Error{Reason: NoTranscriptFound}, MessageNotFound, services.KindSource},
		{&Error{Reason: NoTranscriptFound, Detail: MessageNoSubtitles}, MessageNoSubtitles, services.KindSource},
		{&Error{Reason: RateLimited}, MessageRateLimited, services.KindRateLimited},
		{&Error{Reason: Unknown, Err: errors.New("boom")}, "Unhandled error: boom", services.KindSource},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("%s: Error() = %q, want %q", tt.err.Reason, got, tt.want)
		}
		if got := services.KindOf(tt.err); got != tt.kind {
			t.Errorf("%s: KindOf() = %q, want %q", tt.err.Reason, got, tt.kind)
		}
	}
}

func TestNormalizeLanguage(t *testing.T) {
	if got, err := NormalizeLanguage(""); err != nil || got != "en" {
		t.Fatalf("NormalizeLanguage(\"\") = %q, %v", got, err)
	}
	if got, err := NormalizeLanguage("pt-br"); err != nil || got != "pt-BR" {
		t.Fatalf("NormalizeLanguage(pt-br) = %q, %v", got, err)
	}
	if _, err := NormalizeLanguage("not a language!"); err == nil {
		t.Fatal("expected invalid language to fail")
	}
}

func TestCleanLines(t *testing.T) {
	lines, err := CleanLines([]string{"  Welcome 🎓 ", "", "♪♪", "today we learn Go", "   "})
	if err != nil {
		t.Fatalf("CleanLines: %v", err)
	}
	if len(lines) != 2 || lines[0] != "Welcome" || lines[1] != "today we learn Go" {
		t.Fatalf("unexpected lines %q", lines)
	}

	_, err = CleanLines([]string{"🎵", " "})
	if reason, ok := ReasonOf(err); !ok || reason != NoTranscriptFound {
		t.Fatalf("expected NoTranscriptFound, got %v", err)
	}
	if err.Error() != MessageNoSubtitles {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
