// Package spatialindex answers "which records in a collection have a
// breakpoint (or range) within [start, end] on a given chromosome?" using a
// per-chromosome sorted-interval index: a start-sorted slice plus a
// prefix-max array of interval ends. A query is a binary search followed by
// a backward scan that stops once no earlier interval can reach the query
// start; the scan can pass over intervals that do not overlap, so its cost
// is not bounded by the number of hits.
package spatialindex

import "sort"

// Anchor selects which breakpoint(s) of a VariantCall are indexed.
type Anchor int

const (
	Pos1 Anchor = iota
	Pos2
	Both
)

type interval struct {
	start int64
	end   int64
	id    string
	// seq preserves original insertion order as a tie-break so that Index
	// construction is deterministic regardless of sort stability nuances.
	seq int
}

// chromTree is one chromosome's interval index: a start-sorted slice plus a
// prefix-max array of End values (maxEnd[i] is the largest End among
// intervals[0..i]), used to stop the backward query scan early.
type chromTree struct {
	intervals []interval
	maxEnd    []int64
}

func buildChromTree(ivs []interval) *chromTree {
	sort.SliceStable(ivs, func(i, j int) bool {
		if ivs[i].start != ivs[j].start {
			return ivs[i].start < ivs[j].start
		}
		return ivs[i].seq < ivs[j].seq
	})

	maxEnd := make([]int64, len(ivs))
	maxEnd[0] = ivs[0].end
	for i := 1; i < len(ivs); i++ {
		maxEnd[i] = ivs[i].end
		if maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}
	return &chromTree{intervals: ivs, maxEnd: maxEnd}
}

// queryOverlap returns every interval ID whose [start,end] intersects
// [qStart,qEnd].
func (t *chromTree) queryOverlap(qStart, qEnd int64) []string {
	if t == nil || len(t.intervals) == 0 {
		return nil
	}

	// Candidates must start <= qEnd; all intervals with start > qEnd are
	// excluded up front via binary search.
	hi := sort.Search(len(t.intervals), func(i int) bool {
		return t.intervals[i].start > qEnd
	})

	var result []string
	for i := hi - 1; i >= 0; i-- {
		// Prune: maxEnd[i] is the max End over intervals[0..i]. If it's
		// below qStart, nothing in [0,i] can overlap either.
		if t.maxEnd[i] < qStart {
			break
		}
		if t.intervals[i].end >= qStart {
			result = append(result, t.intervals[i].id)
		}
	}
	return result
}

// Index is a per-chromosome collection of interval trees, immutable once
// built.
type Index struct {
	trees map[string]*chromTree
}

// Query returns the IDs of every indexed record whose interval overlaps
// [start, end] on chromosome. Queries against an absent chromosome return
// nil, which is not an error.
func (idx *Index) Query(chromosome string, start, end int64) []string {
	return idx.trees[chromosome].queryOverlap(start, end)
}

// HasChromosome reports whether the index carries any intervals for the
// given chromosome.
func (idx *Index) HasChromosome(chromosome string) bool {
	_, ok := idx.trees[chromosome]
	return ok
}

// builder accumulates per-chromosome interval lists before the final sort.
type builder struct {
	byChrom map[string][]interval
	seq     int
}

func newBuilder() *builder {
	return &builder{byChrom: make(map[string][]interval)}
}

func (b *builder) add(chrom string, start, end int64, id string) {
	b.byChrom[chrom] = append(b.byChrom[chrom], interval{start: start, end: end, id: id, seq: b.seq})
	b.seq++
}

func (b *builder) build() *Index {
	trees := make(map[string]*chromTree, len(b.byChrom))
	for chrom, ivs := range b.byChrom {
		trees[chrom] = buildChromTree(ivs)
	}
	return &Index{trees: trees}
}
