package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lectern/internal/quiz"
	"lectern/internal/services"
)

type structuredQuiz struct {
	Quiz          string          `json:"quiz"`
	Questions     []quiz.Question `json:"questions"`
	ParseWarnings []string        `json:"parse_warnings,omitempty"`
}

func newQuizCommand(ctx *commandContext) *cobra.Command {
	var structured bool

	cmd := &cobra.Command{
		Use:   "quiz SUMMARY [COUNT] [DIFFICULTY]",
		Short: "Generate multiple-choice questions from a summary",
		Long: `Generate multiple-choice questions from a summary in two steps: topic
extraction, then question writing. Pass "-" as SUMMARY to read it from stdin.
COUNT and DIFFICULTY default to quiz.question_count and quiz.difficulty.

The generated text is printed as-is. --structured additionally parses it into
questions and reports blocks that did not follow the expected format.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			summary := args[0]
			if summary == "-" {
				if summary, err = readInput(cmd, nil); err != nil {
					return err
				}
			}
			count := cfg.Quiz.QuestionCount
			if len(args) > 1 {
				count, err = strconv.Atoi(strings.TrimSpace(args[1]))
				if err != nil {
					return services.Wrap(services.ErrInputShape, services.StageQuizzing, "parse arguments", "question count must be an integer", err)
				}
			}
			difficulty := cfg.Quiz.Difficulty
			if len(args) > 2 {
				difficulty = strings.TrimSpace(args[2])
			}

			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			synthesizer, err := ctx.synthesizer(logger)
			if err != nil {
				return err
			}
			result, err := synthesizer.Synthesize(cmd.Context(), summary, count, difficulty)
			if err != nil {
				return err
			}
			if !structured {
				return writeJSON(cmd, map[string]string{"quiz": result.Text})
			}
			return writeJSON(cmd, structureQuiz(result.Text, count))
		},
	}

	cmd.Flags().BoolVar(&structured, "structured", false, "Also parse the quiz into structured questions")
	return cmd
}

func structureQuiz(raw string, requested int) structuredQuiz {
	out := structuredQuiz{Quiz: raw, Questions: []quiz.Question{}}
	questions, err := quiz.Parse(raw)
	if questions != nil {
		out.Questions = questions
	}
	if err != nil {
		out.ParseWarnings = append(out.ParseWarnings, splitWarnings(err)...)
	}
	if len(questions) > 0 {
		if err := quiz.CheckCount(questions, requested); err != nil {
			out.ParseWarnings = append(out.ParseWarnings, err.Error())
		}
	}
	return out
}

func splitWarnings(err error) []string {
	var warnings []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			warnings = append(warnings, line)
		}
	}
	return warnings
}
