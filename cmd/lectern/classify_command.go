package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"lectern/internal/classifier"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:   "classify [TRANSCRIPT_JSON]",
		Short: "Score a transcript against the educational keyword lexicon",
		Long: `Score a transcript against the educational keyword lexicon.

The transcript is a JSON array of strings, passed as the only argument or on
stdin. The result reports the total score, the verdict, and every matched
keyword.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			lines, err := classifier.DecodeLines([]byte(raw))
			if err != nil {
				return err
			}
			gate, err := ctx.classifier()
			if err != nil {
				return err
			}
			result := gate.Classify(lines)
			if asTable {
				fmt.Fprintln(cmd.OutOrStdout(), renderClassification(result, gate.Threshold()))
				return nil
			}
			return writeJSON(cmd, result)
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "Render matches as a table instead of JSON")
	return cmd
}

func renderClassification(result classifier.Result, threshold float64) string {
	keywords := make([]string, 0, len(result.Matches))
	for keyword := range result.Matches {
		keywords = append(keywords, keyword)
	}
	sort.Slice(keywords, func(i, j int) bool {
		a, b := result.Matches[keywords[i]], result.Matches[keywords[j]]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return keywords[i] < keywords[j]
	})

	rows := make([][]string, 0, len(keywords))
	for _, keyword := range keywords {
		match := result.Matches[keyword]
		rows = append(rows, []string{
			keyword,
			strconv.Itoa(match.Count),
			formatScore(match.Weight),
			formatScore(match.Score),
		})
	}
	verdict := "not educational"
	if result.Educational {
		verdict = "educational"
	}
	return tableView{
		headers: []string{"Keyword", "Count", "Weight", "Score"},
		aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignRight},
		rows:    rows,
		footer: []string{
			fmt.Sprintf("total (%s, threshold %s)", verdict, formatScore(threshold)),
			"",
			"",
			formatScore(result.TotalScore),
		},
	}.render()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
