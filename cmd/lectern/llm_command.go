package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lectern/internal/config"
	"lectern/internal/services/llm"
)

const llmCheckTimeout = 30 * time.Second

type llmCheckResult struct {
	Section string `json:"section"`
	Model   string `json:"model"`
	OK      bool   `json:"ok"`
	Error   string `json:"detail,omitempty"`
}

func newLLMCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llm",
		Short: "Generation service tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newLLMCheckCommand(ctx))
	return cmd
}

func newLLMCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the summary and quiz models respond",
		Long: `Send a small JSON ping to the summary and quiz models and report whether
each responded. Status lines are printed to stderr; the JSON result goes to
stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			colorize := shouldColorize(cmd.ErrOrStderr())
			results := []llmCheckResult{
				checkLLM(cmd.Context(), "summary", cfg.SummaryLLM()),
				checkLLM(cmd.Context(), "quiz", cfg.QuizLLM()),
			}
			healthy := true
			for _, result := range results {
				kind, message := statusOK, result.Model
				if !result.OK {
					kind, message = statusError, result.Error
					healthy = false
				}
				fmt.Fprintln(cmd.ErrOrStderr(), renderStatusLine(result.Section, kind, message, colorize))
			}
			if !healthy {
				if err := writeJSON(cmd, map[string]any{"error": "generation service check failed", "checks": results}); err != nil {
					return err
				}
				return errReported
			}
			return writeJSON(cmd, map[string]any{"checks": results})
		},
	}
}

func checkLLM(ctx context.Context, section string, conn config.LLMConfig) llmCheckResult {
	result := llmCheckResult{Section: section, Model: conn.Model}
	if err := conn.Require(section); err != nil {
		result.Error = err.Error()
		return result
	}
	reqCtx, cancel := context.WithTimeout(ctx, llmCheckTimeout)
	defer cancel()
	if err := llm.NewClient(llmConfig(conn)).HealthCheck(reqCtx); err != nil {
		result.Error = errorMessage(err)
		return result
	}
	result.OK = true
	return result
}
