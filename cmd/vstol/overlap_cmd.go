package main

import (
	"fmt"

	"github.com/spf13/cobra"

	vconfig "github.com/pirl-unc/vstol-go/internal/config"
	"github.com/pirl-unc/vstol-go/internal/setalgebra"
	"github.com/pirl-unc/vstol-go/internal/tsv"
	"github.com/pirl-unc/vstol-go/internal/variantmodel"
	"github.com/pirl-unc/vstol-go/internal/vstolerr"
)

func newOverlapCmd(rt *runtime) *cobra.Command {
	var variantsPath string
	var regionsPath string
	var outputPath string
	var gzipOutput bool
	var padding int64
	var numThreads int

	cmd := &cobra.Command{
		Use:   "overlap",
		Short: "Identify, per call, which regions its breakpoints fall in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if variantsPath == "" {
				return vstolerr.New(vstolerr.InvalidParameters, "--tsv-file is required")
			}
			if regionsPath == "" {
				return vstolerr.New(vstolerr.InvalidParameters, "--regions-tsv-file is required")
			}
			if padding < 0 {
				return vstolerr.New(vstolerr.InvalidParameters, "--padding must be non-negative")
			}

			paramsDesc := fmt.Sprintf("overlap|padding=%d", padding)
			inputPaths := []string{variantsPath, regionsPath}
			if lookupCachedOutput(rt, "overlap", inputPaths, paramsDesc, outputPath) {
				return nil
			}

			r, err := tsv.NewReader(variantsPath)
			if err != nil {
				return err
			}
			vl, err := r.ReadAll()
			r.Close()
			if err != nil {
				return err
			}

			regions, err := tsv.ReadRegions(regionsPath)
			if err != nil {
				return err
			}

			hits := setalgebra.Overlap(vl, regions, padding, numThreads, rt.log)

			out := variantmodel.NewVariantsList()
			for _, v := range vl.Variants {
				var kept []*variantmodel.VariantCall
				for _, c := range v.VariantCalls {
					if _, ok := hits[c.ID]; ok {
						kept = append(kept, c)
					}
				}
				if len(kept) == 0 {
					continue
				}
				nv, err := variantmodel.NewVariant(v.ID, kept)
				if err != nil {
					return err
				}
				out.Add(nv)
			}

			if err := writeOutput(outputPath, gzipOutput, out); err != nil {
				return err
			}
			storeCachedOutput(rt, "overlap", inputPaths, paramsDesc, outputPath, out.Size())
			return nil
		},
	}

	cmd.Flags().StringVar(&variantsPath, "tsv-file", "", "input variant TSV")
	cmd.Flags().StringVar(&regionsPath, "regions-tsv-file", "", "input region TSV")
	cmd.Flags().StringVar(&outputPath, "output-tsv-file", "-", "output variant TSV path (\"-\" for stdout)")
	cmd.Flags().BoolVar(&gzipOutput, "gzip-output", false, "gzip-compress the output")
	cmd.Flags().Int64Var(&padding, "padding", vconfig.NewDefaults().OverlapPadding, "bases to pad each region by before testing overlap")
	numThreadsFlag(cmd, &numThreads)

	return cmd
}
