package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pirl-unc/vstol-go/internal/cachedb"
	vconfig "github.com/pirl-unc/vstol-go/internal/config"
	"github.com/pirl-unc/vstol-go/internal/matchoracle"
	"github.com/pirl-unc/vstol-go/internal/tsv"
	"github.com/pirl-unc/vstol-go/internal/variantmodel"
	"github.com/pirl-unc/vstol-go/internal/vstolerr"
)

// matchFlags binds the five match-parameter knobs shared by merge,
// intersect, subtract, and compare.
type matchFlags struct {
	maxNeighborDistance int64
	matchAllBreakpoints bool
	matchVariantTypes   bool
	minInsSizeOverlap   float64
	minDelSizeOverlap   float64
}

func addMatchFlags(cmd *cobra.Command, f *matchFlags) {
	defaults := vconfig.NewDefaults()
	cmd.Flags().Int64Var(&f.maxNeighborDistance, "max-neighbor-distance", defaults.Match.MaxNeighborDistance, "maximum breakpoint distance in bases")
	cmd.Flags().BoolVar(&f.matchAllBreakpoints, "match-all-breakpoints", defaults.Match.MatchAllBreakpoints, "require both breakpoints within range, not just one")
	cmd.Flags().BoolVar(&f.matchVariantTypes, "match-variant-types", defaults.Match.MatchVariantTypes, "require equivalence-class-matching variant types")
	cmd.Flags().Float64Var(&f.minInsSizeOverlap, "min-ins-size-overlap", defaults.Match.MinInsSizeOverlap, "minimum reciprocal size overlap for INS/DUP")
	cmd.Flags().Float64Var(&f.minDelSizeOverlap, "min-del-size-overlap", defaults.Match.MinDelSizeOverlap, "minimum reciprocal size overlap for DEL")
}

// params validates and converts the bound flags into a matchoracle.Params,
// surfacing InvalidParameters for out-of-range knobs.
func (f *matchFlags) params() (matchoracle.Params, error) {
	if f.maxNeighborDistance < 0 {
		return matchoracle.Params{}, vstolerr.New(vstolerr.InvalidParameters, "max-neighbor-distance must be non-negative")
	}
	if f.minInsSizeOverlap < 0 || f.minInsSizeOverlap > 1 {
		return matchoracle.Params{}, vstolerr.New(vstolerr.InvalidParameters, "min-ins-size-overlap must be in [0,1]")
	}
	if f.minDelSizeOverlap < 0 || f.minDelSizeOverlap > 1 {
		return matchoracle.Params{}, vstolerr.New(vstolerr.InvalidParameters, "min-del-size-overlap must be in [0,1]")
	}
	return matchoracle.Params{
		MaxNeighborDistance: f.maxNeighborDistance,
		MatchAllBreakpoints: f.matchAllBreakpoints,
		MatchVariantTypes:   f.matchVariantTypes,
		MinInsSizeOverlap:   f.minInsSizeOverlap,
		MinDelSizeOverlap:   f.minDelSizeOverlap,
	}, nil
}

// readInputs parses each canonical variant TSV in order.
func readInputs(paths []string) ([]*variantmodel.VariantsList, error) {
	if len(paths) == 0 {
		return nil, vstolerr.New(vstolerr.InvalidParameters, "at least one --tsv-file is required")
	}
	lists := make([]*variantmodel.VariantsList, len(paths))
	for i, p := range paths {
		r, err := tsv.NewReader(p)
		if err != nil {
			return nil, err
		}
		vl, err := r.ReadAll()
		r.Close()
		if err != nil {
			return nil, err
		}
		lists[i] = vl
	}
	return lists, nil
}

// writeOutput writes vl to outputPath as a canonical variant TSV and flushes
// it once every row has been written. The file is created before the first
// row is written, so a write error can leave a partial file behind.
func writeOutput(outputPath string, gzipOutput bool, vl *variantmodel.VariantsList) error {
	w, err := tsv.NewWriter(outputPath, gzipOutput)
	if err != nil {
		return err
	}
	if err := w.WriteHeader(); err != nil {
		return vstolerr.Newf(vstolerr.IOFailure, "write header: %v", err)
	}
	if err := w.WriteAll(vl); err != nil {
		return vstolerr.Newf(vstolerr.IOFailure, "write rows: %v", err)
	}
	return w.Flush()
}

func numThreadsFlag(cmd *cobra.Command, dest *int) {
	defaults := vconfig.NewDefaults()
	cmd.Flags().IntVar(dest, "num-threads", defaults.NumThreads, "worker pool size (0 = runtime.NumCPU())")
}

// matchParamsDescription canonicalizes a matchoracle.Params into the
// description string cachedb.HashParams hashes, so two invocations with
// identical flags hit the same cache entry.
func matchParamsDescription(operation string, params matchoracle.Params) string {
	return fmt.Sprintf("%s|d=%d|allbp=%t|types=%t|ins=%g|del=%g",
		operation, params.MaxNeighborDistance, params.MatchAllBreakpoints,
		params.MatchVariantTypes, params.MinInsSizeOverlap, params.MinDelSizeOverlap)
}

// lookupCachedOutput consults rt.cache (if enabled) for a memoized result of
// operation over inputPaths/paramsDesc, copying the cached file to
// outputPath and reporting a hit. Caching is advisory: any error or miss
// simply falls through to recomputation, never failing the operation.
func lookupCachedOutput(rt *runtime, operation string, inputPaths []string, paramsDesc, outputPath string) bool {
	if rt == nil || rt.cache == nil || outputPath == "-" || outputPath == "" {
		return false
	}
	inputHash, err := cachedb.HashFiles(inputPaths)
	if err != nil {
		return false
	}
	key := cachedb.Key{Operation: operation, InputHash: inputHash, ParamHash: cachedb.HashParams(paramsDesc)}
	cachedPath, _, found, err := rt.cache.Lookup(key)
	if err != nil || !found {
		return false
	}
	data, err := os.ReadFile(cachedPath)
	if err != nil {
		return false
	}
	return os.WriteFile(outputPath, data, 0644) == nil
}

// storeCachedOutput records outputPath as the memoized result of operation
// over inputPaths/paramsDesc, so a later identical invocation can reuse it.
// Best-effort: write failures are silently ignored, matching the advisory
// nature of the cache.
func storeCachedOutput(rt *runtime, operation string, inputPaths []string, paramsDesc, outputPath string, rowCount int) {
	if rt == nil || rt.cache == nil || outputPath == "-" || outputPath == "" {
		return
	}
	inputHash, err := cachedb.HashFiles(inputPaths)
	if err != nil {
		return
	}
	key := cachedb.Key{Operation: operation, InputHash: inputHash, ParamHash: cachedb.HashParams(paramsDesc)}
	_ = rt.cache.Put(key, outputPath, int64(rowCount))
}
