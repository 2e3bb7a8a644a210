package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeLLM()
	c.normalizeSummary()
	c.normalizeQuiz()
	c.normalizeTranscript()
	if err := c.normalizeClassifier(); err != nil {
		return err
	}
	if c.Pipeline.MaxConcurrent <= 0 {
		c.Pipeline.MaxConcurrent = defaultMaxConcurrent
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = lookupEnv(envAPIKey)
	}
	c.LLM.BaseURL = trimOrDefault(c.LLM.BaseURL, defaultLLMBaseURL)
	c.LLM.Model = trimOrDefault(c.LLM.Model, defaultLLMModel)
	c.LLM.Referer = trimOrDefault(c.LLM.Referer, defaultLLMReferer)
	c.LLM.Title = trimOrDefault(c.LLM.Title, defaultLLMTitle)
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeSummary() {
	c.Summary.APIKey = strings.TrimSpace(c.Summary.APIKey)
	if c.Summary.APIKey == "" {
		c.Summary.APIKey = lookupEnv(envSummaryAPIKey)
	}
	c.Summary.Model = strings.TrimSpace(c.Summary.Model)
	if c.Summary.Model == "" {
		c.Summary.Model = lookupEnv(envSummaryModel)
	}
	c.Summary.BaseURL = strings.TrimSpace(c.Summary.BaseURL)
	if c.Summary.WordLimit <= 0 {
		c.Summary.WordLimit = defaultWordLimit
	}
}

func (c *Config) normalizeQuiz() {
	c.Quiz.APIKey = strings.TrimSpace(c.Quiz.APIKey)
	if c.Quiz.APIKey == "" {
		c.Quiz.APIKey = lookupEnv(envQuizAPIKey)
	}
	c.Quiz.Model = strings.TrimSpace(c.Quiz.Model)
	if c.Quiz.Model == "" {
		c.Quiz.Model = lookupEnv(envQuizModel)
	}
	c.Quiz.BaseURL = strings.TrimSpace(c.Quiz.BaseURL)
	if c.Quiz.QuestionCount <= 0 {
		c.Quiz.QuestionCount = defaultQuestionCount
	}
	c.Quiz.Difficulty = strings.ToLower(trimOrDefault(c.Quiz.Difficulty, defaultDifficulty))
}

func (c *Config) normalizeTranscript() {
	c.Transcript.BaseURL = strings.TrimSpace(c.Transcript.BaseURL)
	if c.Transcript.BaseURL == "" {
		c.Transcript.BaseURL = lookupEnv(envTranscriptURL)
	}
	c.Transcript.Language = strings.ToLower(trimOrDefault(c.Transcript.Language, defaultTranscriptLanguage))
	c.Transcript.UserAgent = trimOrDefault(c.Transcript.UserAgent, defaultTranscriptUserAgent)
	if c.Transcript.TimeoutSeconds <= 0 {
		c.Transcript.TimeoutSeconds = defaultTranscriptTimeoutSeconds
	}
	if c.Transcript.RateLimitRetries < 0 {
		c.Transcript.RateLimitRetries = 0
	}
	if c.Transcript.RateLimitBackoffSeconds <= 0 {
		c.Transcript.RateLimitBackoffSeconds = defaultRateLimitBackoffSeconds
	}
}

func (c *Config) normalizeClassifier() error {
	var err error
	if c.Classifier.LexiconPath, err = ExpandPath(strings.TrimSpace(c.Classifier.LexiconPath)); err != nil {
		return fmt.Errorf("classifier.lexicon_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func lookupEnv(key string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func trimOrDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
