package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"lectern/internal/classifier"
	"lectern/internal/config"
	"lectern/internal/logging"
	"lectern/internal/pipeline"
	"lectern/internal/quiz"
	"lectern/internal/services/llm"
	"lectern/internal/summarize"
	"lectern/internal/transcript"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the stderr logger on first use. Flag overrides win
// over the configuration file.
func (c *commandContext) ensureLogger(cmd *cobra.Command) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		level := cfg.Logging.Level
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			level = *c.logLevelFlag
		}
		format := cfg.Logging.Format
		if c.logFormatFlag != nil && strings.TrimSpace(*c.logFormatFlag) != "" {
			format = *c.logFormatFlag
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:  level,
			Format: format,
			Writer: cmd.ErrOrStderr(),
		})
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) classifier() (*classifier.Classifier, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	lexicon := classifier.DefaultLexicon()
	if path := strings.TrimSpace(cfg.Classifier.LexiconPath); path != "" {
		lexicon, err = classifier.LoadLexicon(path)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
	}
	return classifier.New(lexicon, classifier.WithThreshold(cfg.Classifier.Threshold)), nil
}

func (c *commandContext) transcriptSource(fromFile bool) (transcript.Source, error) {
	if fromFile {
		return transcript.FileSource{}, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Transcript.BaseURL) == "" {
		return nil, fmt.Errorf("transcript.base_url is required (or set LECTERN_TRANSCRIPT_URL); use --file for local transcripts")
	}
	return transcript.NewHTTPSource(transcript.HTTPConfig{
		BaseURL:   cfg.Transcript.BaseURL,
		UserAgent: cfg.Transcript.UserAgent,
		Timeout:   time.Duration(cfg.Transcript.TimeoutSeconds) * time.Second,
	})
}

func (c *commandContext) fetchRetry(logger *slog.Logger) transcript.RetryPolicy {
	cfg := c.config
	if cfg == nil {
		return transcript.RetryPolicy{}
	}
	return transcript.RetryPolicy{
		MaxRetries:     cfg.Transcript.RateLimitRetries,
		InitialBackoff: time.Duration(cfg.Transcript.RateLimitBackoffSeconds) * time.Second,
		Logger:         logger,
	}
}

func (c *commandContext) summarizer(logger *slog.Logger) (*summarize.Summarizer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	conn := cfg.SummaryLLM()
	if err := conn.Require("summary"); err != nil {
		return nil, err
	}
	client := llm.NewClient(llmConfig(conn))
	return summarize.New(client, summarize.WithTimeout(conn.Timeout()), summarize.WithLogger(logger)), nil
}

func (c *commandContext) synthesizer(logger *slog.Logger) (*quiz.Synthesizer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	conn := cfg.QuizLLM()
	if err := conn.Require("quiz"); err != nil {
		return nil, err
	}
	client := llm.NewClient(llmConfig(conn), llm.WithTemperature(cfg.Quiz.Temperature))
	return quiz.New(client, quiz.WithTimeout(conn.Timeout()), quiz.WithLogger(logger)), nil
}

// pipeline wires every stage for analyze and batch runs.
func (c *commandContext) pipeline(cmd *cobra.Command, fromFile bool) (*pipeline.Pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger(cmd)
	if err != nil {
		return nil, err
	}
	gate, err := c.classifier()
	if err != nil {
		return nil, err
	}
	source, err := c.transcriptSource(fromFile)
	if err != nil {
		return nil, err
	}
	summarizer, err := c.summarizer(logger)
	if err != nil {
		return nil, err
	}
	synthesizer, err := c.synthesizer(logger)
	if err != nil {
		return nil, err
	}
	return pipeline.New(pipeline.Options{
		Source:        source,
		Gate:          gate,
		Summarizer:    summarizer,
		Quiz:          synthesizer,
		Logger:        logger,
		Language:      cfg.Transcript.Language,
		WordBudget:    cfg.Summary.WordLimit,
		QuestionCount: cfg.Quiz.QuestionCount,
		Difficulty:    cfg.Quiz.Difficulty,
		FetchRetry:    c.fetchRetry(logger),
	})
}

func llmConfig(conn config.LLMConfig) llm.Config {
	return llm.Config{
		APIKey:         conn.APIKey,
		BaseURL:        conn.BaseURL,
		Model:          conn.Model,
		Referer:        conn.Referer,
		Title:          conn.Title,
		TimeoutSeconds: conn.TimeoutSeconds,
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
