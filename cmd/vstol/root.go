package main

import (
	"github.com/spf13/cobra"

	"github.com/pirl-unc/vstol-go/internal/cachedb"
	vconfig "github.com/pirl-unc/vstol-go/internal/config"
	"github.com/pirl-unc/vstol-go/internal/logging"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	var cacheDBPath string

	rt := &runtime{}

	root := &cobra.Command{
		Use:           "vstol",
		Short:         "Variant set-algebra and spatial-matching toolkit",
		Long:          "vstol merges, intersects, subtracts, compares, and filters collections of genomic variant calls using a parallel, breakpoint-aware matching engine.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := vconfig.Load(); err != nil {
				return err
			}

			log, err := logging.New(verbose)
			if err != nil {
				return err
			}
			rt.log = log

			if cacheDBPath != "" {
				store, err := cachedb.Open(cacheDBPath)
				if err != nil {
					log.Sugar().Warnf("cache database %s unavailable, running without it: %v", cacheDBPath, err)
				} else {
					rt.cache = store
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			rt.Close()
			if rt.log != nil {
				rt.log.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug-level logging")
	root.PersistentFlags().StringVar(&cacheDBPath, "cache-db", "", "optional DuckDB path for memoizing merge/intersect/subtract/overlap results")

	root.AddCommand(newMergeCmd(rt))
	root.AddCommand(newIntersectCmd(rt))
	root.AddCommand(newSubtractCmd(rt))
	root.AddCommand(newCompareCmd(rt))
	root.AddCommand(newOverlapCmd(rt))
	root.AddCommand(newFilterCmd(rt))
	root.AddCommand(newConfigCmd())
	root.AddCommand(newOutOfScopeCmd("vcf2tsv", "convert a caller-specific VCF to the canonical variant TSV"))
	root.AddCommand(newOutOfScopeCmd("tsv2vcf", "convert the canonical variant TSV back to VCF"))
	root.AddCommand(newOutOfScopeCmd("annotate", "attach GTF-based gene annotations to a variant TSV"))
	root.AddCommand(newOutOfScopeCmd("score", "enrich a variant TSV with alignment-index mapping-quality scores"))
	root.AddCommand(newOutOfScopeCmd("visualize", "render a variant TSV as a plot"))

	return root
}
