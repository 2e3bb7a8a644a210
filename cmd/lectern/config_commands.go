package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lectern/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the lectern configuration file",
	}
	cmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		dest      string
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write an annotated sample configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolve := config.DefaultConfigPath
			if value := strings.TrimSpace(dest); value != "" {
				resolve = func() (string, error) { return config.ExpandPath(value) }
			}
			path, err := resolve()
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
			if err := config.WriteSample(path, overwrite); err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return fmt.Errorf("%w (use --overwrite to replace it)", err)
				}
				return err
			}

			stderr := cmd.ErrOrStderr()
			fmt.Fprintf(stderr, "Wrote sample configuration to %s\n", path)
			fmt.Fprintln(stderr, "Set llm.api_key (or export OPENROUTER_API_KEY) and transcript.base_url before running analyze.")
			return writeJSON(cmd, map[string]string{"path": path, "directory": filepath.Dir(path)})
		},
	}
	cmd.Flags().StringVarP(&dest, "path", "p", "", "Where to write the file (default ~/.config/lectern/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

type configReport struct {
	Path       string   `json:"path"`
	Exists     bool     `json:"exists"`
	Valid      bool     `json:"valid"`
	Warnings   []string `json:"warnings,omitempty"`
	SummaryLLM string   `json:"summary_model"`
	QuizLLM    string   `json:"quiz_model"`
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the configuration and report problems",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var flagPath string
			if ctx.configFlag != nil {
				flagPath = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, resolved, exists, err := config.Load(flagPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			report := configReport{
				Path:       resolved,
				Exists:     exists,
				Valid:      true,
				Warnings:   configWarnings(cfg, exists),
				SummaryLLM: cfg.SummaryLLM().Model,
				QuizLLM:    cfg.QuizLLM().Model,
			}

			stderr := cmd.ErrOrStderr()
			colorize := shouldColorize(stderr)
			fmt.Fprintln(stderr, renderStatusLine("config", statusOK, resolved, colorize))
			for _, warning := range report.Warnings {
				fmt.Fprintln(stderr, renderStatusLine("warning", statusWarn, warning, colorize))
			}
			return writeJSON(cmd, report)
		},
	}
}

// configWarnings lists settings that load fine but will stop some commands.
func configWarnings(cfg *config.Config, exists bool) []string {
	var warnings []string
	if !exists {
		warnings = append(warnings, "config file did not exist; defaults were used")
	}
	for _, section := range []struct {
		name string
		conn config.LLMConfig
	}{
		{"summary", cfg.SummaryLLM()},
		{"quiz", cfg.QuizLLM()},
	} {
		if err := section.conn.Require(section.name); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	if strings.TrimSpace(cfg.Transcript.BaseURL) == "" {
		warnings = append(warnings, "transcript.base_url is empty; only --file transcripts can be analyzed")
	}
	return warnings
}
