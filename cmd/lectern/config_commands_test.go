package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	isolateEnv(t)
	target := filepath.Join(t.TempDir(), "lectern", "config.toml")

	stdout, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if decodeObject(t, stdout)["path"] != target {
		t.Fatalf("unexpected init output: %s", stdout)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample not written: %v", err)
	}

	stdout, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err == nil {
		t.Fatal("expected refusal to overwrite")
	}
	requireContains(t, decodeObject(t, stdout)["error"].(string), "already exists")

	stdout, stderr, err := runCLI(t, []string{"config", "validate"}, target, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	payload := decodeObject(t, stdout)
	if payload["valid"] != true || payload["exists"] != true {
		t.Fatalf("unexpected validate output: %s", stdout)
	}
	requireContains(t, stderr, "summary.api_key is required")
}

func TestConfigValidateReportsInvalidFile(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[quiz]\ndifficulty = \"brutal\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	stdout, _, err := runCLI(t, []string{"config", "validate"}, path, "")
	if err == nil {
		t.Fatal("expected failure")
	}
	requireContains(t, decodeObject(t, stdout)["error"].(string), "quiz.difficulty")
}
