package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"lectern/internal/logging"
	"lectern/internal/pipeline"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var concurrency int
	var fromFile bool
	var showProgress bool

	cmd := &cobra.Command{
		Use:   "batch [FILE]",
		Short: "Analyze many videos, one reference per line",
		Long: `Run the full pipeline for every reference listed in FILE (or stdin), one per
line. Blank lines and lines starting with # are ignored. Runs are independent:
a failure is reported in that entry and does not stop the others. The output
is a JSON array in input order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			refs, err := readBatchRefs(cmd, args)
			if err != nil {
				return err
			}
			if len(refs) == 0 {
				return fmt.Errorf("no references to analyze")
			}
			p, err := ctx.pipeline(cmd, fromFile)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			limit := concurrency
			if limit <= 0 {
				limit = cfg.Pipeline.MaxConcurrent
			}

			var bar *progressbar.ProgressBar
			if showProgress || (!cmd.Flags().Changed("progress") && shouldColorize(cmd.ErrOrStderr())) {
				bar = newBatchProgress(cmd.ErrOrStderr(), len(refs))
			}

			reports := runBatch(cmd, p, refs, limit, bar, logger)
			results := make([]any, len(reports))
			failed := 0
			for i, report := range reports {
				if !report.Succeeded() {
					failed++
				}
				results[i] = renderOutcome(report)
			}
			logger.Info("batch completed",
				logging.String(logging.FieldEventType, "batch_complete"),
				logging.Int("total", len(reports)),
				logging.Int("failed", failed),
			)
			if err := writeJSON(cmd, results); err != nil {
				return err
			}
			if failed > 0 {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Maximum concurrent runs (defaults to pipeline.max_concurrent)")
	cmd.Flags().BoolVar(&fromFile, "file", false, "Treat each line as a local transcript file")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar on stderr (default: when stderr is a terminal)")
	return cmd
}

func readBatchRefs(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) == 0 || args[0] == "-" {
		return readRefs(cmd.InOrStdin())
	}
	file, err := os.Open(strings.TrimSpace(args[0]))
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer file.Close()
	return readRefs(file)
}

// runBatch runs one pipeline per ref with at most limit in flight. Reports
// keep input order.
func runBatch(cmd *cobra.Command, p *pipeline.Pipeline, refs []string, limit int, bar *progressbar.ProgressBar, logger *slog.Logger) []*pipeline.Report {
	reports := make([]*pipeline.Report, len(refs))
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(limit)
	for i, ref := range refs {
		g.Go(func() error {
			report, _ := p.Run(cmd.Context(), ref)
			reports[i] = report
			if bar != nil {
				mu.Lock()
				if err := bar.Add(1); err != nil {
					logger.Debug("progress update failed", logging.Error(err))
				}
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

func newBatchProgress(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Analyzing videos...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
