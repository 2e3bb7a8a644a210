package main

import (
	"github.com/spf13/cobra"
)

func newSummarizeCommand(ctx *commandContext) *cobra.Command {
	var words int

	cmd := &cobra.Command{
		Use:   "summarize [TEXT]",
		Short: "Summarize transcript text with one generation call",
		Long: `Summarize transcript text in a list-wise, topic-wise form. The text is the
only argument or is read from stdin. The word budget is advisory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			summarizer, err := ctx.summarizer(logger)
			if err != nil {
				return err
			}
			budget := words
			if budget <= 0 {
				budget = cfg.Summary.WordLimit
			}
			result, err := summarizer.Summarize(cmd.Context(), text, budget)
			if err != nil {
				return err
			}
			return writeJSON(cmd, result)
		},
	}

	cmd.Flags().IntVar(&words, "words", 0, "Approximate summary length in words (defaults to summary.word_limit)")
	return cmd
}
