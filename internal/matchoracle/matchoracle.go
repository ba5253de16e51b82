// Package matchoracle provides the canonical "same event" predicate shared
// by every set-algebra operation: a pure function over two VariantCall
// records and a parameter bundle, combining a chromosome-pair constraint,
// variant-type equivalence classes, breakpoint-distance thresholds over
// both candidate alignments, and reciprocal size overlap for insertions
// and deletions. All operations share this predicate so their results
// compose predictably.
package matchoracle

import "github.com/pirl-unc/vstol-go/internal/variantmodel"

// Params bundles the match-decision knobs: neighbor distance, whether both
// breakpoints must be near or just one, whether variant types must agree,
// and the minimum reciprocal size-overlap ratios for insertions/deletions.
type Params struct {
	MaxNeighborDistance int64
	MatchAllBreakpoints bool
	MatchVariantTypes   bool
	MinInsSizeOverlap   float64
	MinDelSizeOverlap   float64
}

// DefaultParams returns the engine-default parameter bundle used for
// inputs that omit the newer knobs: D=100, match_all=true, match_types=true,
// min_ins=0.5, min_del=0.5.
func DefaultParams() Params {
	return Params{
		MaxNeighborDistance: 100,
		MatchAllBreakpoints: true,
		MatchVariantTypes:   true,
		MinInsSizeOverlap:   0.5,
		MinDelSizeOverlap:   0.5,
	}
}

// typeClass is the equivalence class a variant type collapses into for the
// purposes of the type-grouping step.
type typeClass int

const (
	classSNV typeClass = iota
	classMNV
	classInsDup
	classDel
	classBndInvTra
	classUnknown
)

func classify(t variantmodel.VariantType) typeClass {
	switch t {
	case variantmodel.SNV:
		return classSNV
	case variantmodel.MNV:
		return classMNV
	case variantmodel.INS, variantmodel.DUP:
		return classInsDup
	case variantmodel.DEL:
		return classDel
	case variantmodel.BND, variantmodel.INV, variantmodel.TRA:
		return classBndInvTra
	default:
		return classUnknown
	}
}

// Match decides whether a and b represent the same event under params.
func Match(a, b *variantmodel.VariantCall, params Params) bool {
	// Step 1: chromosome constraint (unordered pair).
	if a.ChromosomePair() != b.ChromosomePair() {
		return false
	}

	// Step 2: type grouping.
	if params.MatchVariantTypes {
		if classify(a.VariantType) != classify(b.VariantType) {
			return false
		}
	}

	// Step 3: breakpoint distances over the two candidate alignments.
	if !anyAlignmentMatches(a, b, params) {
		return false
	}

	// Step 4: size reciprocity for INS/DUP and DEL.
	cls := classify(a.VariantType)
	if cls == classInsDup && classify(b.VariantType) == classInsDup {
		if sizeRatio(a.VariantSize, b.VariantSize) < params.MinInsSizeOverlap {
			return false
		}
	} else if cls == classDel && classify(b.VariantType) == classDel {
		if sizeRatio(a.VariantSize, b.VariantSize) < params.MinDelSizeOverlap {
			return false
		}
	}

	return true
}

// anyAlignmentMatches checks the direct alignment (a.1<->b.1, a.2<->b.2)
// and the swapped alignment (a.1<->b.2, a.2<->b.1), each feasible only if
// its paired chromosomes agree.
func anyAlignmentMatches(a, b *variantmodel.VariantCall, params Params) bool {
	if a.Chromosome1 == b.Chromosome1 && a.Chromosome2 == b.Chromosome2 {
		d1 := abs64(a.Position1 - b.Position1)
		d2 := abs64(a.Position2 - b.Position2)
		if distancesSatisfy(d1, d2, params) {
			return true
		}
	}
	if a.Chromosome1 == b.Chromosome2 && a.Chromosome2 == b.Chromosome1 {
		d1 := abs64(a.Position1 - b.Position2)
		d2 := abs64(a.Position2 - b.Position1)
		if distancesSatisfy(d1, d2, params) {
			return true
		}
	}
	return false
}

func distancesSatisfy(d1, d2 int64, params Params) bool {
	if params.MatchAllBreakpoints {
		return max64(d1, d2) <= params.MaxNeighborDistance
	}
	return min64(d1, d2) <= params.MaxNeighborDistance
}

// sizeRatio is the reciprocal size overlap min(size)/max(size), with size
// zero or unknown (negative sentinel) conventionally giving ratio 0.
func sizeRatio(a, b int64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return float64(lo) / float64(hi)
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
