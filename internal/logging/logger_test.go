package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lectern/internal/logging"
	"lectern/internal/services"
)

func newBufferedLogger(t *testing.T, format, level string) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: format, Level: level, Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New(%q, %q): %v", format, level, err)
	}
	return logger, &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line %q is not JSON: %v", buf.String(), err)
	}
	return entry
}

func TestConsolePrefixAndPairs(t *testing.T) {
	logger, buf := newBufferedLogger(t, "console", "info")
	logger = logging.NewComponentLogger(logger, "pipeline")
	logger.Info("stage completed",
		logging.String(logging.FieldStage, "summarizing"),
		logging.Int("words", 70),
		logging.String("note", "two words"),
		logging.Float64("score", 7.5),
	)

	line := buf.String()
	for _, want := range []string{"INFO [pipeline] (summarizing) – stage completed", "words=70", `note="two words"`, "score=7.5"} {
		if !strings.Contains(line, want) {
			t.Errorf("missing %q in %q", want, line)
		}
	}
	if strings.Contains(line, "component=") || strings.Contains(line, "stage=") {
		t.Errorf("prefix fields repeated as pairs: %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Errorf("caller location in info output: %q", line)
	}
}

func TestConsoleGroupsAndDebugSource(t *testing.T) {
	logger, buf := newBufferedLogger(t, "console", "debug")
	logger.WithGroup("fetch").Debug("attempt", logging.Int("n", 2))

	line := buf.String()
	if !strings.Contains(line, "DEBUG") || !strings.Contains(line, "fetch.n=2") {
		t.Fatalf("unexpected debug line %q", line)
	}
	if !strings.Contains(line, "logger_test.go:") {
		t.Fatalf("expected caller location in %q", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	for _, level := range []string{"warn", "WARNING"} {
		logger, buf := newBufferedLogger(t, "", level)
		logger.Info("hidden")
		logger.Warn("shown")
		if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
			t.Fatalf("level %q: unexpected output %q", level, out)
		}
	}
}

func TestJSONKeys(t *testing.T) {
	logger, buf := newBufferedLogger(t, "json", "info")
	logger.Error("failed", logging.Error(errors.New("boom")))

	entry := decodeLine(t, buf)
	if entry["level"] != "error" || entry["msg"] != "failed" || entry["error"] != "boom" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key in %v", entry)
	}
	if _, ok := entry["time"]; ok {
		t.Fatalf("time key should be renamed in %v", entry)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lectern.log")
	logger, err := logging.New(logging.Options{OutputPaths: []string{path, path}})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	logger.Info("to file")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if got := strings.Count(string(content), "to file"); got != 1 {
		t.Fatalf("expected one line in log file, got %d: %q", got, content)
	}
}

func TestWithContextTagsLines(t *testing.T) {
	logger, buf := newBufferedLogger(t, "json", "info")
	ctx := services.WithStage(context.Background(), "quizzing")
	ctx = services.WithRequestID(ctx, "req-9")
	ctx = services.WithSource(ctx, "abc123")
	logging.WithContext(ctx, logger).Info("hello")

	entry := decodeLine(t, buf)
	want := map[string]string{
		logging.FieldStage:         "quizzing",
		logging.FieldCorrelationID: "req-9",
		logging.FieldSource:        "abc123",
	}
	for key, value := range want {
		if entry[key] != value {
			t.Errorf("%s = %v, want %q", key, entry[key], value)
		}
	}
}

func TestWarnWithContextDefaults(t *testing.T) {
	logger, buf := newBufferedLogger(t, "json", "info")
	logging.WarnWithContext(logger, "slow", "transcript_rate_limited", logging.String(logging.FieldImpact, "fetch delayed"))

	entry := decodeLine(t, buf)
	if entry[logging.FieldEventType] != "transcript_rate_limited" || entry[logging.FieldImpact] != "fetch delayed" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry[logging.FieldErrorHint] != "check logs for details" {
		t.Fatalf("expected default error hint in %v", entry)
	}
}

func TestErrorWithContextKeepsCallerHint(t *testing.T) {
	logger, buf := newBufferedLogger(t, "json", "info")
	logging.ErrorWithContext(logger, "stage failed", "stage_failure", logging.String(logging.FieldErrorHint, "retry later"))

	entry := decodeLine(t, buf)
	if entry["level"] != "error" || entry[logging.FieldErrorHint] != "retry later" || entry[logging.FieldEventType] != "stage_failure" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNopLogger(t *testing.T) {
	logging.NewNop().Info("discarded")
	logging.WarnWithContext(nil, "ignored", "noop")
	if logging.NewComponentLogger(nil, "x") == nil {
		t.Fatal("expected logger")
	}
}
