package setalgebra

import (
	"sync"

	"github.com/pirl-unc/vstol-go/internal/matchoracle"
	"github.com/pirl-unc/vstol-go/internal/spatialindex"
	"github.com/pirl-unc/vstol-go/internal/variantmodel"
	"go.uber.org/zap"
)

// Subtract returns only those calls in t that have no match in q under the
// oracle. Surviving calls are re-attached under their original Variant ID;
// Variants with zero surviving calls are dropped.
func Subtract(t, q *variantmodel.VariantsList, params matchoracle.Params, workers int, log *zap.Logger) (*variantmodel.VariantsList, error) {
	qCalls := q.VariantCalls()
	qByID := make(map[string]*variantmodel.VariantCall, len(qCalls))
	for _, c := range qCalls {
		qByID[c.ID] = c
	}
	idx := spatialindex.Build(qCalls, spatialindex.Both)
	workers = resolveWorkers(workers)

	type job struct {
		variantIdx int
		callIdx    int
	}

	var jobs []job
	for vi, v := range t.Variants {
		for ci := range v.VariantCalls {
			jobs = append(jobs, job{vi, ci})
		}
	}

	survives := make([]bool, len(jobs))
	jobCh := make(chan int, len(jobs))
	for i := range jobs {
		jobCh <- i
	}
	close(jobCh)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for ji := range jobCh {
				j := jobs[ji]
				a := t.Variants[j.variantIdx].VariantCalls[j.callIdx]
				matched := false
				for _, cid := range candidateIDs(idx, a, params.MaxNeighborDistance) {
					b, ok := qByID[cid]
					if !ok {
						continue
					}
					if matchoracle.Match(a, b, params) {
						matched = true
						break
					}
				}
				survives[ji] = !matched
			}
		}()
	}
	wg.Wait()

	if log != nil {
		log.Debug("subtract pass complete", zap.Int("t_calls", len(jobs)), zap.Int("q_calls", len(qCalls)))
	}

	survivorsByVariant := make(map[string][]*variantmodel.VariantCall)
	var order []string
	for i, j := range jobs {
		if !survives[i] {
			continue
		}
		v := t.Variants[j.variantIdx]
		if _, ok := survivorsByVariant[v.ID]; !ok {
			order = append(order, v.ID)
		}
		survivorsByVariant[v.ID] = append(survivorsByVariant[v.ID], t.Variants[j.variantIdx].VariantCalls[j.callIdx])
	}

	out, err := regroup(order, survivorsByVariant)
	if err != nil {
		return nil, err
	}
	out.SortByLocus()
	return out, nil
}

// SubtractAll is the left fold of pairwise subtract across queries.
func SubtractAll(t *variantmodel.VariantsList, queries []*variantmodel.VariantsList, params matchoracle.Params, workers int, log *zap.Logger) (*variantmodel.VariantsList, error) {
	result := t
	for _, q := range queries {
		next, err := Subtract(result, q, params, workers, log)
		if err != nil {
			return nil, err
		}
		result = next
	}
	return result, nil
}
