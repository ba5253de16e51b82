// Package setalgebra combines or partitions VariantsList collections using
// the spatial index and match oracle: merge (union), intersect, subtract,
// compare (three-way partition), overlap-against-regions, and the shared
// clustering primitive behind merge, intersect and compare. The outer loop over calls is
// partitioned across a fixed-size worker pool; union-find updates are
// serialized through a mutex.
package setalgebra

import (
	"runtime"
	"sort"
	"strconv"
	"sync"

	"github.com/pirl-unc/vstol-go/internal/matchoracle"
	"github.com/pirl-unc/vstol-go/internal/spatialindex"
	"github.com/pirl-unc/vstol-go/internal/variantmodel"
	"github.com/pirl-unc/vstol-go/internal/vstolerr"
	"go.uber.org/zap"
)

// sourceCall is one VariantCall tagged with which input list it came from
// and the ID of the Variant it originally belonged to, needed to
// re-attach surviving calls under their original grouping.
type sourceCall struct {
	call            *variantmodel.VariantCall
	sourceIdx       int
	originVariantID string
}

// flattenSources orders calls by input index, then by position within
// input (each input's own Variant order, then each Variant's locus-sorted
// calls), so downstream component ID assignment is deterministic.
func flattenSources(lists []*variantmodel.VariantsList) []sourceCall {
	var out []sourceCall
	for li, list := range lists {
		for _, v := range list.Variants {
			for _, c := range v.VariantCalls {
				out = append(out, sourceCall{call: c, sourceIdx: li, originVariantID: v.ID})
			}
		}
	}
	return out
}

// resolveWorkers applies the "0 means runtime.NumCPU()" convention.
func resolveWorkers(workers int) int {
	if workers <= 0 {
		return runtime.NumCPU()
	}
	return workers
}

// clusterCalls computes the connected components of the match relation over
// calls under params, using workers goroutines. The result is independent
// of thread count: union-find's final partition depends only on the set of
// confirmed edges, never on the order in which they were discovered.
func clusterCalls(calls []sourceCall, params matchoracle.Params, workers int, log *zap.Logger) *unionFind {
	n := len(calls)
	uf := newUnionFind(n)
	if n == 0 {
		return uf
	}

	vcs := make([]*variantmodel.VariantCall, n)
	idIndex := make(map[string]int, n)
	for i, sc := range calls {
		vcs[i] = sc.call
		idIndex[sc.call.ID] = i
	}

	idx := spatialindex.Build(vcs, spatialindex.Both)
	workers = resolveWorkers(workers)

	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				a := vcs[i]
				for _, cid := range candidateIDs(idx, a, params.MaxNeighborDistance) {
					j, ok := idIndex[cid]
					if !ok || j == i {
						continue
					}
					if matchoracle.Match(a, vcs[j], params) {
						mu.Lock()
						uf.union(i, j)
						mu.Unlock()
					}
				}
			}
		}()
	}
	wg.Wait()

	if log != nil {
		log.Debug("clustered variant calls",
			zap.Int("calls", n),
			zap.Int("workers", workers))
	}

	return uf
}

// candidateIDs queries the index around both of a's breakpoints, de-duped.
// Querying both breakpoints unconditionally, rather than only the
// chromosome_2 side when MatchAllBreakpoints is false, is required for
// correctness: a translocation's breakpoints may be stored in reversed
// order by the other caller, and that reversal is independent of
// MatchAllBreakpoints. Querying both sides only widens the candidate set
// the oracle confirms against; it never changes the confirmed result.
func candidateIDs(idx *spatialindex.Index, a *variantmodel.VariantCall, d int64) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(ids []string) {
		for _, id := range ids {
			if id == a.ID {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	add(idx.Query(a.Chromosome1, a.Position1-d, a.Position1+d))
	add(idx.Query(a.Chromosome2, a.Position2-d, a.Position2+d))
	return out
}

// component is one connected component of the match relation: its member
// calls, the set of input-list indices they came from, and the smallest
// flatten index among its members, used as a total-order tie-break when
// two components share a smallest-member locus.
type component struct {
	members []sourceCall
	sources map[int]struct{}
	minIdx  int
}

func (c component) touchesAllSources(n int) bool {
	return len(c.sources) == n
}

func (c component) touchesSource(idx int) bool {
	_, ok := c.sources[idx]
	return ok
}

// computeComponents runs clusterCalls and materializes the resulting
// components, sorted deterministically by their smallest member's locus.
func computeComponents(calls []sourceCall, params matchoracle.Params, workers int, log *zap.Logger) []component {
	uf := clusterCalls(calls, params, workers, log)
	groups := uf.components()

	components := make([]component, 0, len(groups))
	for _, idxs := range groups {
		sort.Ints(idxs)
		members := make([]sourceCall, len(idxs))
		sources := make(map[int]struct{})
		for i, gi := range idxs {
			members[i] = calls[gi]
			sources[calls[gi].sourceIdx] = struct{}{}
		}
		components = append(components, component{members: members, sources: sources, minIdx: idxs[0]})
	}

	// The groups map iterates in random order, so locus alone is not
	// enough: two components can share a smallest-member locus (e.g. an
	// SNV and a 1-bp INS at the same position split by type grouping).
	// The minimum flatten index breaks such ties deterministically.
	sort.SliceStable(components, func(i, j int) bool {
		a, b := smallestLocus(components[i]), smallestLocus(components[j])
		if variantmodel.LessByLocus(a, b) {
			return true
		}
		if variantmodel.LessByLocus(b, a) {
			return false
		}
		return components[i].minIdx < components[j].minIdx
	})

	return components
}

func smallestLocus(c component) *variantmodel.VariantCall {
	best := c.members[0].call
	for _, m := range c.members[1:] {
		if variantmodel.LessByLocus(m.call, best) {
			best = m.call
		}
	}
	return best
}

// toVariant builds a Variant for a component, assigning it a dense,
// position-based integer ID.
func toVariant(c component, id int) (*variantmodel.Variant, error) {
	calls := make([]*variantmodel.VariantCall, len(c.members))
	for i, m := range c.members {
		calls[i] = m.call
	}
	return variantmodel.NewVariant(strconv.Itoa(id), calls)
}

// requireNonEmpty rejects operations given zero input VariantsLists.
func requireNonEmpty(lists []*variantmodel.VariantsList) error {
	if len(lists) == 0 {
		return vstolerr.New(vstolerr.InvalidParameters, "at least one input VariantsList is required")
	}
	return nil
}
