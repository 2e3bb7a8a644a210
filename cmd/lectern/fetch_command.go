package main

import (
	"strings"

	"github.com/spf13/cobra"

	"lectern/internal/transcript"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var lang string
	var fromFile bool

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch and clean a video transcript",
		Long: `Fetch the transcript for a video URL (or bare 11-character video ID) and
print the cleaned lines as a JSON array. With --file the argument is a local
caption file (.json, .srt, .vtt, or plain text).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			source, err := ctx.transcriptSource(fromFile)
			if err != nil {
				return err
			}
			language := strings.TrimSpace(lang)
			if language == "" {
				language = cfg.Transcript.Language
			}
			lines, err := transcript.FetchWithRetry(cmd.Context(), source, args[0], language, ctx.fetchRetry(logger))
			if err != nil {
				return err
			}
			return writeJSON(cmd, lines)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Transcript language (defaults to transcript.language)")
	cmd.Flags().BoolVar(&fromFile, "file", false, "Treat the argument as a local transcript file")
	return cmd
}
