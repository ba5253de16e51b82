package setalgebra

import (
	"sync"

	"github.com/pirl-unc/vstol-go/internal/spatialindex"
	"github.com/pirl-unc/vstol-go/internal/variantmodel"
	"go.uber.org/zap"
)

// Overlap identifies, for each call in v, the regions in g whose
// [start-padding, end+padding] contains position_1 or position_2 on the
// matching chromosome. Both breakpoints and both chromosomes are tested
// independently; a call is reported once per distinct overlapping range.
func Overlap(v *variantmodel.VariantsList, g *variantmodel.GenomicRangesList, padding int64, workers int, log *zap.Logger) map[string][]*variantmodel.GenomicRange {
	idx := spatialindex.BuildRanges(g)
	calls := v.VariantCalls()
	workers = resolveWorkers(workers)

	type hit struct {
		callID string
		ranges []*variantmodel.GenomicRange
	}

	jobCh := make(chan int, len(calls))
	for i := range calls {
		jobCh <- i
	}
	close(jobCh)

	results := make([]hit, len(calls))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobCh {
				c := calls[i]
				results[i] = hit{callID: c.ID, ranges: overlappingRanges(idx, g, c, padding)}
			}
		}()
	}
	wg.Wait()

	if log != nil {
		log.Debug("overlap pass complete", zap.Int("calls", len(calls)), zap.Int64("padding", padding))
	}

	out := make(map[string][]*variantmodel.GenomicRange)
	for _, r := range results {
		if len(r.ranges) > 0 {
			out[r.callID] = r.ranges
		}
	}
	return out
}

// overlappingRanges gathers the distinct ranges overlapping either
// breakpoint of c, deduplicated by range ID.
func overlappingRanges(idx *spatialindex.Index, g *variantmodel.GenomicRangesList, c *variantmodel.VariantCall, padding int64) []*variantmodel.GenomicRange {
	seen := make(map[string]struct{})
	var out []*variantmodel.GenomicRange
	add := func(chrom string, pos int64) {
		for _, rid := range idx.Query(chrom, pos-padding, pos+padding) {
			if _, ok := seen[rid]; ok {
				continue
			}
			seen[rid] = struct{}{}
			out = append(out, g.Get(rid))
		}
	}
	add(c.Chromosome1, c.Position1)
	add(c.Chromosome2, c.Position2)
	return out
}

// FilterExcludedRegions builds a VariantsList dropping any variant that has
// at least one call overlapping an excluded region, as opposed to Overlap's
// callers, which keep them.
func FilterExcludedRegions(v *variantmodel.VariantsList, excluded *variantmodel.GenomicRangesList, padding int64, workers int, log *zap.Logger) *variantmodel.VariantsList {
	hits := Overlap(v, excluded, padding, workers, log)

	out := variantmodel.NewVariantsList()
	for _, variant := range v.Variants {
		excludedHit := false
		for _, c := range variant.VariantCalls {
			if _, ok := hits[c.ID]; ok {
				excludedHit = true
				break
			}
		}
		if !excludedHit {
			out.Add(variant)
		}
	}
	return out
}
