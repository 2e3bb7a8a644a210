package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
)

var validDifficulties = map[string]struct{}{
	"easy":   {},
	"medium": {},
	"hard":   {},
}

// Validate ensures the configuration is usable. API keys are not required
// here; commands that talk to the generation service check them through
// LLMConfig.Require so offline commands keep working without credentials.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateQuiz(); err != nil {
		return err
	}
	if err := c.validateTranscript(); err != nil {
		return err
	}
	if err := c.validateClassifier(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLLM() error {
	for key, value := range map[string]string{
		"llm.base_url":     c.LLM.BaseURL,
		"summary.base_url": c.Summary.BaseURL,
		"quiz.base_url":    c.Quiz.BaseURL,
	} {
		if err := validateURL(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateQuiz() error {
	if _, ok := validDifficulties[c.Quiz.Difficulty]; !ok {
		return fmt.Errorf("quiz.difficulty must be one of easy, medium, hard (got %q)", c.Quiz.Difficulty)
	}
	if c.Quiz.Temperature < 0 || c.Quiz.Temperature > 2 {
		return errors.New("quiz.temperature must be between 0 and 2")
	}
	return nil
}

func (c *Config) validateTranscript() error {
	if err := validateURL("transcript.base_url", c.Transcript.BaseURL); err != nil {
		return err
	}
	if c.Transcript.RateLimitRetries > 10 {
		return errors.New("transcript.rate_limit_retries must be at most 10")
	}
	return nil
}

func (c *Config) validateClassifier() error {
	if math.IsNaN(c.Classifier.Threshold) || math.IsInf(c.Classifier.Threshold, 0) || c.Classifier.Threshold <= 0 {
		return errors.New("classifier.threshold must be a positive number")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}

func validateURL(key, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL (got %q)", key, value)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https (got %q)", key, value)
	}
	return nil
}
