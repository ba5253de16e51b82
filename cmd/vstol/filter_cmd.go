package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	vconfig "github.com/pirl-unc/vstol-go/internal/config"
	"github.com/pirl-unc/vstol-go/internal/filterexpr"
	"github.com/pirl-unc/vstol-go/internal/setalgebra"
	"github.com/pirl-unc/vstol-go/internal/tsv"
	"github.com/pirl-unc/vstol-go/internal/vstolerr"
)

func newFilterCmd(rt *runtime) *cobra.Command {
	var tsvFile string
	var outputPath string
	var gzipOutput bool
	var filterExprs []string
	var caseSampleIDs []string
	var controlSampleIDs []string
	var excludedRegionsPath string
	var homopolymerLength int
	var numThreads int

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Reduce a variant TSV to variants passing every predicate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tsvFile == "" {
				return vstolerr.New(vstolerr.InvalidParameters, "--tsv-file is required")
			}

			filters, err := parseFilters(filterExprs, caseSampleIDs, controlSampleIDs)
			if err != nil {
				return err
			}

			r, err := tsv.NewReader(tsvFile)
			if err != nil {
				return err
			}
			vl, err := r.ReadAll()
			r.Close()
			if err != nil {
				return err
			}

			if excludedRegionsPath != "" {
				defaults := vconfig.NewDefaults()
				excluded, err := tsv.ReadRegions(excludedRegionsPath)
				if err != nil {
					return err
				}
				vl = setalgebra.FilterExcludedRegions(vl, excluded, defaults.ExcludedRegionPadding, numThreads, rt.log)
			}

			out, err := filterexpr.EvaluateAll(vl, filters, numThreads, rt.log)
			if err != nil {
				return err
			}

			return writeOutput(outputPath, gzipOutput, out)
		},
	}

	cmd.Flags().StringVar(&tsvFile, "tsv-file", "", "input variant TSV")
	cmd.Flags().StringVar(&outputPath, "output-tsv-file", "-", "output variant TSV path (\"-\" for stdout)")
	cmd.Flags().BoolVar(&gzipOutput, "gzip-output", false, "gzip-compress the output")
	cmd.Flags().StringArrayVar(&filterExprs, "filter", nil, `repeatable predicate: "{case|control} {quantifier} {attribute} {op} {value}"`)
	cmd.Flags().StringArrayVar(&caseSampleIDs, "case-sample-id", nil, "repeatable case-group sample ID")
	cmd.Flags().StringArrayVar(&controlSampleIDs, "control-sample-id", nil, "repeatable control-group sample ID")
	cmd.Flags().StringVar(&excludedRegionsPath, "excluded-regions-tsv-file", "", "optional region TSV; variants overlapping any region are dropped first")
	cmd.Flags().IntVar(&homopolymerLength, "homopolymer-length", vconfig.NewDefaults().HomopolymerLength, "homopolymer run length threshold (boundary stub: needs a reference FASTA, out of core scope)")
	numThreadsFlag(cmd, &numThreads)

	return cmd
}

// parseFilters converts "{case|control} {quantifier} {attribute} {op}
// {value}" strings into filterexpr.Filter values, folding the case/control
// sample-ID flags into each predicate's SampleIDs.
func parseFilters(exprs, caseIDs, controlIDs []string) ([]filterexpr.Filter, error) {
	filters := make([]filterexpr.Filter, 0, len(exprs))
	for _, raw := range exprs {
		tokens := strings.Fields(raw)
		if len(tokens) != 5 {
			return nil, vstolerr.Newf(vstolerr.MalformedInput, "malformed --filter expression %q: expected 5 space-separated fields", raw)
		}

		var sampleIDs []string
		switch tokens[0] {
		case "case":
			sampleIDs = caseIDs
		case "control":
			sampleIDs = controlIDs
		default:
			return nil, vstolerr.Newf(vstolerr.MalformedInput, "--filter sample group must be \"case\" or \"control\", got %q", tokens[0])
		}

		value, err := parseFilterValue(tokens[4])
		if err != nil {
			return nil, err
		}

		filters = append(filters, filterexpr.Filter{
			Quantifier: filterexpr.Quantifier(tokens[1]),
			Attribute:  tokens[2],
			Operator:   filterexpr.Operator(tokens[3]),
			Value:      value,
			SampleIDs:  sampleIDs,
		})
	}
	return filters, nil
}

func parseFilterValue(raw string) (filterexpr.Literal, error) {
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		inner := strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
		var items []filterexpr.Scalar
		for _, part := range strings.Split(inner, ",") {
			items = append(items, parseScalar(strings.TrimSpace(part)))
		}
		return filterexpr.NewListLiteral(items), nil
	}
	return filterexpr.NewScalarLiteral(parseScalar(raw)), nil
}

func parseScalar(s string) filterexpr.Scalar {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return filterexpr.NewNumericScalar(f)
	}
	return filterexpr.NewTextScalar(s)
}
