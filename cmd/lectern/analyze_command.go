package main

import (
	"github.com/spf13/cobra"

	"lectern/internal/classifier"
	"lectern/internal/pipeline"
)

// analyzeResult is the JSON shape of one pipeline run. Rejected runs carry
// the classification and transcript without summary or quiz.
type analyzeResult struct {
	RequestID       string                      `json:"request_id"`
	Source          string                      `json:"source,omitempty"`
	State           pipeline.State              `json:"state"`
	TotalScore      float64                     `json:"total_score"`
	Educational     bool                        `json:"educational"`
	KeywordsMatched map[string]classifier.Match `json:"keywords_matched"`
	FullTranscript  []string                    `json:"full_transcript"`
	Summary         string                      `json:"summary,omitempty"`
	Quiz            string                      `json:"quiz,omitempty"`
}

// analyzeFailure is the JSON shape of a failed run.
type analyzeFailure struct {
	RequestID string `json:"request_id,omitempty"`
	Source    string `json:"source,omitempty"`
	errorPayload
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var fromFile bool

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Fetch, classify, summarize, and quiz one video",
		Long: `Run the full pipeline for one video: fetch the transcript, score it against
the educational lexicon, and, when it passes, summarize it and generate a quiz.
Transcripts that do not pass are reported with state "rejected" and no remote
generation calls are made.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.pipeline(cmd, fromFile)
			if err != nil {
				return err
			}
			report, runErr := p.Run(cmd.Context(), args[0])
			if err := writeJSON(cmd, renderOutcome(report)); err != nil {
				return err
			}
			if runErr != nil {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromFile, "file", false, "Treat the argument as a local transcript file")
	return cmd
}

func renderReport(report *pipeline.Report) analyzeResult {
	out := analyzeResult{
		RequestID:       report.RequestID,
		Source:          report.Source,
		State:           report.State,
		KeywordsMatched: map[string]classifier.Match{},
		FullTranscript:  report.Transcript,
	}
	if out.FullTranscript == nil {
		out.FullTranscript = []string{}
	}
	if report.Classification != nil {
		out.TotalScore = report.Classification.TotalScore
		out.Educational = report.Educational()
		out.KeywordsMatched = report.Classification.Matches
	}
	if report.Summary != nil {
		out.Summary = report.Summary.Text
	}
	if report.Quiz != nil {
		out.Quiz = report.Quiz.Text
	}
	return out
}

func renderFailure(report *pipeline.Report) analyzeFailure {
	return analyzeFailure{
		RequestID:    report.RequestID,
		Source:       report.Source,
		errorPayload: failurePayload(report.FailedStage, report.Err),
	}
}

// renderOutcome picks the success or failure shape for report.
func renderOutcome(report *pipeline.Report) any {
	if report.Succeeded() {
		return renderReport(report)
	}
	return renderFailure(report)
}

