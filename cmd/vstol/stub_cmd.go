package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newOutOfScopeCmd registers a thin boundary stub for a sub-command that
// is not part of this build (VCF/GTF parser dispatch, visualization,
// alignment-index enrichment). It parses the canonical TSV flags so the
// schema contract stays testable end-to-end, then exits ExitUsage with a
// clear "not implemented" diagnostic rather than silently succeeding.
func newOutOfScopeCmd(name, short string) *cobra.Command {
	var tsvFile string
	var outputPath string

	cmd := &cobra.Command{
		Use:           name,
		Short:         short + " (not implemented in this build)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(os.Stderr, "%s: not implemented in this build\n", name)
			os.Exit(ExitUsage)
			return nil
		},
	}

	cmd.Flags().StringVar(&tsvFile, "tsv-file", "", "input variant TSV")
	cmd.Flags().StringVar(&outputPath, "output-tsv-file", "-", "output variant TSV path (\"-\" for stdout)")

	return cmd
}
