package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// isolateEnv keeps the developer's config and credentials out of CLI tests.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENROUTER_API_KEY",
		"OPENROUTER_API_KEY_SUMMARY",
		"OPENROUTER_API_KEY_QUIZ",
		"MODEL_SUMMARY",
		"MODEL_QUIZ",
		"LECTERN_TRANSCRIPT_URL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := execute(context.Background(), cmd)
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, llmURL, relayURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	var b strings.Builder
	b.WriteString("[llm]\napi_key = \"test-key\"\nmodel = \"test/model\"\n")
	if llmURL != "" {
		fmt.Fprintf(&b, "base_url = %q\n", llmURL)
	}
	if relayURL != "" {
		fmt.Fprintf(&b, "\n[transcript]\nbase_url = %q\n", relayURL)
	}
	b.WriteString("\n[logging]\nlevel = \"error\"\n")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// fakeLLM is an OpenRouter-compatible completion endpoint that answers each
// prompt through reply and records what it was asked.
type fakeLLM struct {
	mu      sync.Mutex
	prompts []string
	reply   func(prompt string) (int, string)
	server  *httptest.Server
}

func newFakeLLM(t *testing.T, reply func(prompt string) (int, string)) *fakeLLM {
	t.Helper()
	f := &fakeLLM{reply: reply}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		prompt := ""
		if n := len(req.Messages); n > 0 {
			prompt = req.Messages[n-1].Content
		}
		f.mu.Lock()
		f.prompts = append(f.prompts, prompt)
		f.mu.Unlock()

		status, content := f.reply(prompt)
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(content))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": content}}},
		})
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeLLM) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// newFakeRelay serves transcripts keyed by video ID.
func newFakeRelay(t *testing.T, transcripts map[string][]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/transcripts/")
		lines, ok := transcripts[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":"no_transcript","message":"none"}}`))
			return
		}
		segments := make([]map[string]any, 0, len(lines))
		for i, line := range lines {
			segments = append(segments, map[string]any{"text": line, "start": float64(i), "duration": 1.0})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"segments": segments})
	}))
	t.Cleanup(server.Close)
	return server
}

func decodeObject(t *testing.T, output string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(output), &payload); err != nil {
		t.Fatalf("stdout is not a JSON object: %v\n%s", err, output)
	}
	return payload
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
