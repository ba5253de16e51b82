package variantmodel

import (
	"sort"

	"github.com/pirl-unc/vstol-go/internal/vstolerr"
)

// Variant is a cluster of VariantCall records representing one biological
// event. All contained calls must share the same unordered pair of
// Chromosome1 and Chromosome2.
type Variant struct {
	ID           string
	VariantCalls []*VariantCall
}

// NewVariant builds a Variant from calls, sorting them by locus and
// validating the chromosome-uniformity invariant.
//
// The invariant is checked on the unordered breakpoint-chromosome pair
// (VariantCall.ChromosomePair), not the ordered (chromosome_1, chromosome_2)
// tuple: the match oracle's breakpoint-swap rule deliberately clusters calls whose breakpoints were stored
// in opposite order by their callers into one Variant, so a strict ordered
// check would reject the very translocations the oracle is designed to
// unify.
func NewVariant(id string, calls []*VariantCall) (*Variant, error) {
	if len(calls) == 0 {
		return &Variant{ID: id}, nil
	}
	pair := calls[0].ChromosomePair()
	for _, c := range calls {
		if c.ChromosomePair() != pair {
			return nil, vstolerr.Newf(vstolerr.MalformedInput,
				"variant %s: call %s chromosome pair (%s,%s) disagrees with (%s,%s)",
				id, c.ID, c.Chromosome1, c.Chromosome2, pair[0], pair[1]).WithDetail(c.ID)
		}
	}
	sorted := make([]*VariantCall, len(calls))
	copy(sorted, calls)
	sort.SliceStable(sorted, func(i, j int) bool { return LessByLocus(sorted[i], sorted[j]) })
	return &Variant{ID: id, VariantCalls: sorted}, nil
}

// Chromosome1 returns the chromosome_1 of the variant's first (locus-
// smallest) call, or "" if the variant has no calls.
func (v *Variant) Chromosome1() string {
	if len(v.VariantCalls) == 0 {
		return ""
	}
	return v.VariantCalls[0].Chromosome1
}

// Chromosome2 returns the chromosome_2 of the variant's first (locus-
// smallest) call, or "" if the variant has no calls.
func (v *Variant) Chromosome2() string {
	if len(v.VariantCalls) == 0 {
		return ""
	}
	return v.VariantCalls[0].Chromosome2
}

// LocusKey returns the locus of the variant's smallest member, used to
// order output variants.
func (v *Variant) LocusKey() (string, int64, string, int64) {
	if len(v.VariantCalls) == 0 {
		return "", 0, "", 0
	}
	c := v.VariantCalls[0]
	return c.Chromosome1, c.Position1, c.Chromosome2, c.Position2
}

// LessVariantByLocus orders two Variants by their smallest member's locus.
func LessVariantByLocus(a, b *Variant) bool {
	ac1, ap1, ac2, ap2 := a.LocusKey()
	bc1, bp1, bc2, bp2 := b.LocusKey()
	if ac1 != bc1 {
		return ac1 < bc1
	}
	if ap1 != bp1 {
		return ap1 < bp1
	}
	if ac2 != bc2 {
		return ac2 < bc2
	}
	return ap2 < bp2
}
