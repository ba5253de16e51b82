package variantmodel

import (
	"fmt"
	"sort"

	"github.com/pirl-unc/vstol-go/internal/vstolerr"
)

// GenomicRange is a 1-based inclusive interval on a chromosome.
type GenomicRange struct {
	Chromosome string
	Start      int64
	End        int64
}

// NewGenomicRange validates start <= end and derives the canonical ID.
func NewGenomicRange(chromosome string, start, end int64) (*GenomicRange, error) {
	if start > end {
		return nil, vstolerr.Newf(vstolerr.MalformedInput, "genomic range start %d > end %d on %s", start, end, chromosome)
	}
	return &GenomicRange{Chromosome: chromosome, Start: start, End: end}, nil
}

// ID returns "chromosome:start-end".
func (g *GenomicRange) ID() string {
	return fmt.Sprintf("%s:%d-%d", g.Chromosome, g.Start, g.End)
}

// GenomicRangesList holds GenomicRange records in insertion order with an
// ID lookup; padded overlap queries go through internal/spatialindex.
type GenomicRangesList struct {
	Ranges []*GenomicRange
	byID   map[string]*GenomicRange
}

// NewGenomicRangesList builds an empty, ready-to-use GenomicRangesList.
func NewGenomicRangesList() *GenomicRangesList {
	return &GenomicRangesList{byID: make(map[string]*GenomicRange)}
}

// Add appends a range and indexes it by ID.
func (g *GenomicRangesList) Add(r *GenomicRange) {
	if g.byID == nil {
		g.byID = make(map[string]*GenomicRange)
	}
	g.Ranges = append(g.Ranges, r)
	g.byID[r.ID()] = r
}

// Get returns the range with the given ID, or nil if absent.
func (g *GenomicRangesList) Get(id string) *GenomicRange {
	return g.byID[id]
}

// Size reports the number of ranges in the list.
func (g *GenomicRangesList) Size() int { return len(g.Ranges) }

// SortByLocus orders ranges by (chromosome, start, end).
func (g *GenomicRangesList) SortByLocus() {
	sort.SliceStable(g.Ranges, func(i, j int) bool {
		a, b := g.Ranges[i], g.Ranges[j]
		if a.Chromosome != b.Chromosome {
			return a.Chromosome < b.Chromosome
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
}
