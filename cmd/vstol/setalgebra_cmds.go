package main

import (
	"github.com/spf13/cobra"

	"github.com/pirl-unc/vstol-go/internal/setalgebra"
	"github.com/pirl-unc/vstol-go/internal/vstolerr"
)

func newMergeCmd(rt *runtime) *cobra.Command {
	var tsvFiles []string
	var outputPath string
	var gzipOutput bool
	var numThreads int
	mf := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Union one or more variant TSVs into connected components",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := mf.params()
			if err != nil {
				return err
			}
			paramsDesc := matchParamsDescription("merge", params)
			if lookupCachedOutput(rt, "merge", tsvFiles, paramsDesc, outputPath) {
				return nil
			}
			lists, err := readInputs(tsvFiles)
			if err != nil {
				return err
			}
			out, err := setalgebra.Merge(lists, params, numThreads, rt.log)
			if err != nil {
				return err
			}
			if err := writeOutput(outputPath, gzipOutput, out); err != nil {
				return err
			}
			storeCachedOutput(rt, "merge", tsvFiles, paramsDesc, outputPath, out.Size())
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&tsvFiles, "tsv-file", nil, "input variant TSV (repeatable, one or more)")
	cmd.Flags().StringVar(&outputPath, "output-tsv-file", "-", "output variant TSV path (\"-\" for stdout)")
	cmd.Flags().BoolVar(&gzipOutput, "gzip-output", false, "gzip-compress the output")
	numThreadsFlag(cmd, &numThreads)
	addMatchFlags(cmd, mf)

	return cmd
}

func newIntersectCmd(rt *runtime) *cobra.Command {
	var tsvFiles []string
	var outputPath string
	var gzipOutput bool
	var numThreads int
	mf := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "intersect",
		Short: "Retain only components touching every input variant TSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := mf.params()
			if err != nil {
				return err
			}
			paramsDesc := matchParamsDescription("intersect", params)
			if lookupCachedOutput(rt, "intersect", tsvFiles, paramsDesc, outputPath) {
				return nil
			}
			lists, err := readInputs(tsvFiles)
			if err != nil {
				return err
			}
			out, err := setalgebra.Intersect(lists, params, numThreads, rt.log)
			if err != nil {
				return err
			}
			if err := writeOutput(outputPath, gzipOutput, out); err != nil {
				return err
			}
			storeCachedOutput(rt, "intersect", tsvFiles, paramsDesc, outputPath, out.Size())
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&tsvFiles, "tsv-file", nil, "input variant TSV (repeatable, one or more)")
	cmd.Flags().StringVar(&outputPath, "output-tsv-file", "-", "output variant TSV path (\"-\" for stdout)")
	cmd.Flags().BoolVar(&gzipOutput, "gzip-output", false, "gzip-compress the output")
	numThreadsFlag(cmd, &numThreads)
	addMatchFlags(cmd, mf)

	return cmd
}

func newSubtractCmd(rt *runtime) *cobra.Command {
	var tsvFiles []string
	var outputPath string
	var gzipOutput bool
	var numThreads int
	mf := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "subtract",
		Short: "Keep calls in the first variant TSV with no match in the rest",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(tsvFiles) < 2 {
				return vstolerr.New(vstolerr.InvalidParameters, "subtract requires a target --tsv-file followed by at least one query --tsv-file")
			}
			params, err := mf.params()
			if err != nil {
				return err
			}
			paramsDesc := matchParamsDescription("subtract", params)
			if lookupCachedOutput(rt, "subtract", tsvFiles, paramsDesc, outputPath) {
				return nil
			}
			lists, err := readInputs(tsvFiles)
			if err != nil {
				return err
			}
			out, err := setalgebra.SubtractAll(lists[0], lists[1:], params, numThreads, rt.log)
			if err != nil {
				return err
			}
			if err := writeOutput(outputPath, gzipOutput, out); err != nil {
				return err
			}
			storeCachedOutput(rt, "subtract", tsvFiles, paramsDesc, outputPath, out.Size())
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&tsvFiles, "tsv-file", nil, "target TSV first, then one or more query TSVs (repeatable)")
	cmd.Flags().StringVar(&outputPath, "output-tsv-file", "-", "output variant TSV path (\"-\" for stdout)")
	cmd.Flags().BoolVar(&gzipOutput, "gzip-output", false, "gzip-compress the output")
	numThreadsFlag(cmd, &numThreads)
	addMatchFlags(cmd, mf)

	return cmd
}

func newCompareCmd(rt *runtime) *cobra.Command {
	var tsvFiles []string
	var outputPrefix string
	var gzipOutput bool
	var numThreads int
	mf := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Three-way partition two variant TSVs into shared/a-only/b-only",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(tsvFiles) != 2 {
				return vstolerr.New(vstolerr.InvalidParameters, "compare requires exactly two --tsv-file occurrences")
			}
			params, err := mf.params()
			if err != nil {
				return err
			}
			lists, err := readInputs(tsvFiles)
			if err != nil {
				return err
			}
			result, err := setalgebra.Compare(lists[0], lists[1], params, numThreads, rt.log)
			if err != nil {
				return err
			}
			if err := writeOutput(outputPrefix+".shared.tsv", gzipOutput, result.Shared); err != nil {
				return err
			}
			if err := writeOutput(outputPrefix+".a_only.tsv", gzipOutput, result.AOnly); err != nil {
				return err
			}
			return writeOutput(outputPrefix+".b_only.tsv", gzipOutput, result.BOnly)
		},
	}

	cmd.Flags().StringArrayVar(&tsvFiles, "tsv-file", nil, "exactly two input variant TSVs (repeatable)")
	cmd.Flags().StringVar(&outputPrefix, "output-tsv-file", "compare", "output path prefix; writes <prefix>.shared.tsv, <prefix>.a_only.tsv, <prefix>.b_only.tsv")
	cmd.Flags().BoolVar(&gzipOutput, "gzip-output", false, "gzip-compress the outputs")
	numThreadsFlag(cmd, &numThreads)
	addMatchFlags(cmd, mf)

	return cmd
}
