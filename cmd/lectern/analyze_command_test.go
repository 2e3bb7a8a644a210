package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var (
	lectureLines = []string{"Welcome to this lecture 🎓", "today we learn how to design an algorithm"}
	vlogLines    = []string{"hey guys", "check out my new car"}
)

func TestAnalyzeCommandDone(t *testing.T) {
	isolateEnv(t)
	llm := newFakeLLM(t, quizReply)
	relay := newFakeRelay(t, map[string][]string{"dQw4w9WgXcQ": lectureLines})
	configPath := writeTestConfig(t, llm.server.URL, relay.URL)

	stdout, _, err := runCLI(t, []string{"analyze", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}, configPath, "")
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, stdout)
	}
	payload := decodeObject(t, stdout)
	if payload["state"] != "done" || payload["educational"] != true {
		t.Fatalf("unexpected result: %s", stdout)
	}
	if payload["request_id"] == "" {
		t.Fatal("expected request id")
	}
	transcript := payload["full_transcript"].([]any)
	if len(transcript) != 2 || transcript[0] != "Welcome to this lecture" {
		t.Fatalf("expected cleaned transcript, got %v", transcript)
	}
	if payload["summary"] != "- Algorithms: ordered steps" || payload["quiz"] != sampleQuiz {
		t.Fatalf("unexpected generated fields: %s", stdout)
	}
	if calls := llm.calls(); len(calls) != 3 {
		t.Fatalf("expected summary, topic, and question calls, got %d", len(calls))
	}
}

func TestAnalyzeCommandRejected(t *testing.T) {
	isolateEnv(t)
	llm := newFakeLLM(t, quizReply)
	relay := newFakeRelay(t, map[string][]string{"dQw4w9WgXcQ": vlogLines})
	configPath := writeTestConfig(t, llm.server.URL, relay.URL)

	stdout, _, err := runCLI(t, []string{"analyze", "https://youtu.be/dQw4w9WgXcQ"}, configPath, "")
	if err != nil {
		t.Fatalf("rejection is not a failure: %v", err)
	}
	payload := decodeObject(t, stdout)
	if payload["state"] != "rejected" || payload["educational"] != false {
		t.Fatalf("unexpected result: %s", stdout)
	}
	if _, ok := payload["summary"]; ok {
		t.Fatal("rejected runs carry no summary")
	}
	if len(llm.calls()) != 0 {
		t.Fatal("rejected runs must not call the generation service")
	}
}

func TestAnalyzeCommandFetchFailure(t *testing.T) {
	isolateEnv(t)
	llm := newFakeLLM(t, quizReply)
	relay := newFakeRelay(t, map[string][]string{})
	configPath := writeTestConfig(t, llm.server.URL, relay.URL)

	stdout, _, err := runCLI(t, []string{"analyze", "https://youtu.be/dQw4w9WgXcQ"}, configPath, "")
	if err == nil {
		t.Fatal("expected failure")
	}
	payload := decodeObject(t, stdout)
	if payload["error"] != "No transcript found for this video" || payload["stage"] != "fetching" || payload["kind"] != "source" {
		t.Fatalf("unexpected failure payload: %s", stdout)
	}
}

func TestAnalyzeCommandInvalidURL(t *testing.T) {
	isolateEnv(t)
	llm := newFakeLLM(t, quizReply)
	relay := newFakeRelay(t, nil)
	configPath := writeTestConfig(t, llm.server.URL, relay.URL)

	stdout, _, err := runCLI(t, []string{"analyze", "https://example.com/video"}, configPath, "")
	if err == nil {
		t.Fatal("expected failure")
	}
	if payload := decodeObject(t, stdout); payload["error"] != "Invalid YouTube URL" {
		t.Fatalf("unexpected failure payload: %s", stdout)
	}
}

func TestAnalyzeCommandHonorsCallerContext(t *testing.T) {
	isolateEnv(t)
	llm := newFakeLLM(t, quizReply)
	configPath := writeTestConfig(t, llm.server.URL, "")
	path := filepath.Join(t.TempDir(), "lecture.txt")
	if err := os.WriteFile(path, []byte("Welcome to this lecture\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd := newRootCommand()
	var stdout strings.Builder
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", configPath, "analyze", "--file", path})
	if err := execute(ctx, cmd); err == nil {
		t.Fatal("expected failure")
	}
	payload := decodeObject(t, stdout.String())
	if payload["kind"] != "canceled" || payload["stage"] != "fetching" {
		t.Fatalf("unexpected failure payload: %s", stdout.String())
	}
	if len(llm.calls()) != 0 {
		t.Fatal("canceled runs must not call the generation service")
	}
}

func TestFetchCommand(t *testing.T) {
	isolateEnv(t)
	relay := newFakeRelay(t, map[string][]string{"dQw4w9WgXcQ": {"  first  ", "♪♪", "second"}})
	configPath := writeTestConfig(t, "", relay.URL)

	stdout, _, err := runCLI(t, []string{"fetch", "dQw4w9WgXcQ"}, configPath, "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	var lines []string
	if err := json.Unmarshal([]byte(stdout), &lines); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(lines) != 2 || lines[0] != "first" || lines[1] != "second" {
		t.Fatalf("unexpected lines %v", lines)
	}
}

func TestBatchCommandKeepsOrderAndIsolatesFailures(t *testing.T) {
	isolateEnv(t)
	llm := newFakeLLM(t, quizReply)
	configPath := writeTestConfig(t, llm.server.URL, "")
	dir := t.TempDir()
	lecture := filepath.Join(dir, "lecture.txt")
	vlog := filepath.Join(dir, "vlog.txt")
	if err := os.WriteFile(lecture, []byte("Welcome to this lecture\ntoday we learn how to design an algorithm\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(vlog, []byte("hey guys\ncheck out my new car\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	missing := filepath.Join(dir, "missing.txt")
	input := "# videos\n" + lecture + "\n\n" + missing + "\n" + vlog + "\n"

	stdout, _, err := runCLI(t, []string{"batch", "--file", "--concurrency", "2", "--progress=false"}, configPath, input)
	if !errors.Is(err, errReported) {
		t.Fatalf("a batch with a failed entry should exit non-zero, got %v", err)
	}
	var results []map[string]any
	if err := json.Unmarshal([]byte(stdout), &results); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0]["state"] != "done" || results[0]["source"] != lecture {
		t.Fatalf("unexpected first result %v", results[0])
	}
	if results[1]["stage"] != "fetching" || results[1]["error"] != "Video is unavailable" {
		t.Fatalf("unexpected second result %v", results[1])
	}
	if results[2]["state"] != "rejected" {
		t.Fatalf("unexpected third result %v", results[2])
	}
	if calls := llm.calls(); len(calls) != 3 {
		t.Fatalf("only the educational run should call the generation service, got %d calls", len(calls))
	}
}
