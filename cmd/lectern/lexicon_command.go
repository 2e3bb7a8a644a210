package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLexiconCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lexicon",
		Short: "List the keywords and weights used by classify",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gate, err := ctx.classifier()
			if err != nil {
				return err
			}
			entries := gate.Lexicon().Entries()
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{entry.Keyword, formatScore(entry.Weight)})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tableView{
				headers: []string{"Keyword", "Weight"},
				aligns:  []columnAlignment{alignLeft, alignRight},
				rows:    rows,
			}.render())
			fmt.Fprintf(out, "%d keywords, threshold %s\n", gate.Lexicon().Len(), formatScore(gate.Threshold()))
			return nil
		},
	}
}
