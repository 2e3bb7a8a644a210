package config

import (
	"fmt"
	"strings"
	"time"
)

// LLMConfig is the resolved connection for one generation stage.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// Timeout returns the per-request timeout.
func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// Require reports a configuration problem for section when the stage cannot
// reach the generation service.
func (l LLMConfig) Require(section string) error {
	if l.APIKey == "" {
		return fmt.Errorf("%s.api_key is required. Set it in [llm] or [%s], or export %s", section, section, envForSection(section))
	}
	if l.Model == "" {
		return fmt.Errorf("%s.model is required. Set it in [llm] or [%s]", section, section)
	}
	return nil
}

func envForSection(section string) string {
	switch section {
	case "summary":
		return envSummaryAPIKey
	case "quiz":
		return envQuizAPIKey
	default:
		return envAPIKey
	}
}

// GetLLM returns the shared [llm] connection.
func (c *Config) GetLLM() LLMConfig {
	conn := LLMConfig{TimeoutSeconds: c.LLM.TimeoutSeconds}
	overlay(&conn.APIKey, c.LLM.APIKey)
	overlay(&conn.BaseURL, c.LLM.BaseURL)
	overlay(&conn.Model, c.LLM.Model)
	overlay(&conn.Referer, c.LLM.Referer)
	overlay(&conn.Title, c.LLM.Title)
	return conn
}

// SummaryLLM is [llm] with any non-empty [summary] connection fields applied.
func (c *Config) SummaryLLM() LLMConfig {
	return c.stageLLM(c.Summary.APIKey, c.Summary.BaseURL, c.Summary.Model, c.Summary.TimeoutSeconds)
}

// QuizLLM is [llm] with any non-empty [quiz] connection fields applied.
func (c *Config) QuizLLM() LLMConfig {
	return c.stageLLM(c.Quiz.APIKey, c.Quiz.BaseURL, c.Quiz.Model, c.Quiz.TimeoutSeconds)
}

func (c *Config) stageLLM(apiKey, baseURL, model string, timeoutSeconds int) LLMConfig {
	conn := c.GetLLM()
	overlay(&conn.APIKey, apiKey)
	overlay(&conn.BaseURL, baseURL)
	overlay(&conn.Model, model)
	if timeoutSeconds > 0 {
		conn.TimeoutSeconds = timeoutSeconds
	}
	return conn
}

// overlay replaces *dst with value when value is not blank.
func overlay(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}
