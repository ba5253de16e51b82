package filterexpr

import (
	"runtime"
	"sync"

	"github.com/pirl-unc/vstol-go/internal/variantmodel"
	"go.uber.org/zap"
)

// EvaluateAll evaluates filters against every variant in vl, fanning the
// per-variant work out across workers (no shared mutable state: each
// goroutine only ever reads its assigned variant and writes its own result
// slot), then rebuilds a VariantsList of the variants that passed, tagging
// every surviving/dropped call with "passed"/"failed_filter" via WithTag
// rather than in-place mutation.
func EvaluateAll(vl *variantmodel.VariantsList, filters []Filter, workers int, log *zap.Logger) (*variantmodel.VariantsList, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(vl.Variants) && len(vl.Variants) > 0 {
		workers = len(vl.Variants)
	}
	if workers < 1 {
		workers = 1
	}

	type outcome struct {
		pass bool
		err  error
	}
	results := make([]outcome, len(vl.Variants))

	jobs := make(chan int, len(vl.Variants))
	for i := range vl.Variants {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				ok, err := Evaluate(vl.Variants[i], filters)
				results[i] = outcome{pass: ok, err: err}
			}
		}()
	}
	wg.Wait()

	for _, o := range results {
		if o.err != nil {
			return nil, o.err
		}
	}

	if log != nil {
		log.Debug("filter pass complete", zap.Int("variants", len(vl.Variants)), zap.Int("filters", len(filters)))
	}

	out := variantmodel.NewVariantsList()
	for i, variant := range vl.Variants {
		tag := TagFailedFilter
		if results[i].pass {
			tag = TagPassed
		}
		tagged := make([]*variantmodel.VariantCall, len(variant.VariantCalls))
		for j, c := range variant.VariantCalls {
			tagged[j] = c.WithTag(tag)
		}
		taggedVariant, err := variantmodel.NewVariant(variant.ID, tagged)
		if err != nil {
			return nil, err
		}
		if results[i].pass {
			out.Add(taggedVariant)
		}
	}
	return out, nil
}
