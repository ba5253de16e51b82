package spatialindex

import "github.com/pirl-unc/vstol-go/internal/variantmodel"

// Build indexes a slice of variant calls on the breakpoint(s) selected by
// anchor, single-point intervals [position, position] so that callers apply
// padding by expanding query bounds.
func Build(calls []*variantmodel.VariantCall, anchor Anchor) *Index {
	b := newBuilder()
	for _, c := range calls {
		if anchor == Pos1 || anchor == Both {
			b.add(c.Chromosome1, c.Position1, c.Position1, c.ID)
		}
		if anchor == Pos2 || anchor == Both {
			b.add(c.Chromosome2, c.Position2, c.Position2, c.ID)
		}
	}
	return b.build()
}

// BuildRanges indexes a GenomicRangesList on each range's full [start, end]
// interval, for range-vs-point queries.
func BuildRanges(ranges *variantmodel.GenomicRangesList) *Index {
	b := newBuilder()
	for _, r := range ranges.Ranges {
		b.add(r.Chromosome, r.Start, r.End, r.ID())
	}
	return b.build()
}
