package setalgebra

import (
	"fmt"
	"testing"

	"github.com/pirl-unc/vstol-go/internal/matchoracle"
	"github.com/pirl-unc/vstol-go/internal/variantmodel"
	"github.com/stretchr/testify/require"
)

func singleCallList(t *testing.T, vID, cID, chrom string, pos int64, vtype variantmodel.VariantType) *variantmodel.VariantsList {
	t.Helper()
	c, err := variantmodel.NewVariantCall(cID, "s1", chrom, pos, chrom, pos, vtype, "C", "A")
	require.NoError(t, err)
	v, err := variantmodel.NewVariant(vID, []*variantmodel.VariantCall{c})
	require.NoError(t, err)
	vl := variantmodel.NewVariantsList()
	vl.Add(v)
	return vl
}

// TestIntersect_SNVExactMatch checks that two identical SNV calls from
// different inputs intersect into a single two-call variant.
func TestIntersect_SNVExactMatch(t *testing.T) {
	a := singleCallList(t, "va", "ca", "chr1", 100, variantmodel.SNV)
	b := singleCallList(t, "vb", "cb", "chr1", 100, variantmodel.SNV)

	params := matchoracle.Params{MaxNeighborDistance: 0, MatchAllBreakpoints: true, MatchVariantTypes: true}
	result, err := Intersect([]*variantmodel.VariantsList{a, b}, params, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.Size())
	require.Len(t, result.Variants[0].VariantCalls, 2)
}

// TestMerge_Idempotent checks that merging a single already-clustered
// VariantsList preserves its partition of calls (up to component IDs).
func TestMerge_Idempotent(t *testing.T) {
	v := singleCallList(t, "v1", "c1", "chr1", 100, variantmodel.SNV)
	params := matchoracle.DefaultParams()

	result, err := Merge([]*variantmodel.VariantsList{v}, params, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.Size())
	require.Equal(t, "c1", result.Variants[0].VariantCalls[0].ID)
}

// TestSubtractThenIntersect_Empty checks that intersect(subtract(A,B), B)
// has no calls in common with B.
func TestSubtractThenIntersect_Empty(t *testing.T) {
	a := singleCallList(t, "va", "ca", "chr1", 100, variantmodel.SNV)
	b := singleCallList(t, "vb", "cb", "chr1", 100, variantmodel.SNV)
	params := matchoracle.Params{MaxNeighborDistance: 0, MatchAllBreakpoints: true, MatchVariantTypes: true}

	subtracted, err := Subtract(a, b, params, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 0, subtracted.Size())

	intersected, err := Intersect([]*variantmodel.VariantsList{subtracted, b}, params, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 0, intersected.Size())
}

func TestSubtract_NoMatchKeepsCall(t *testing.T) {
	a := singleCallList(t, "va", "ca", "chr1", 100, variantmodel.SNV)
	b := singleCallList(t, "vb", "cb", "chr1", 500, variantmodel.SNV)
	params := matchoracle.Params{MaxNeighborDistance: 10, MatchAllBreakpoints: true, MatchVariantTypes: true}

	result, err := Subtract(a, b, params, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.Size())
	require.Equal(t, "va", result.Variants[0].ID)
}

// TestCompare_ThreeWayPartition checks the shared/a_only/b_only split.
func TestCompare_ThreeWayPartition(t *testing.T) {
	sharedCallA, err := variantmodel.NewVariantCall("shared-a", "s1", "chr1", 100, "chr1", 100, variantmodel.SNV, "C", "A")
	require.NoError(t, err)
	sharedCallB, err := variantmodel.NewVariantCall("shared-b", "s2", "chr1", 100, "chr1", 100, variantmodel.SNV, "C", "A")
	require.NoError(t, err)
	onlyA, err := variantmodel.NewVariantCall("only-a", "s1", "chr1", 900, "chr1", 900, variantmodel.SNV, "C", "A")
	require.NoError(t, err)
	onlyB, err := variantmodel.NewVariantCall("only-b", "s2", "chr1", 1900, "chr1", 1900, variantmodel.SNV, "C", "A")
	require.NoError(t, err)

	vSharedA, err := variantmodel.NewVariant("vsa", []*variantmodel.VariantCall{sharedCallA})
	require.NoError(t, err)
	vOnlyA, err := variantmodel.NewVariant("voa", []*variantmodel.VariantCall{onlyA})
	require.NoError(t, err)
	a := variantmodel.NewVariantsList()
	a.Add(vSharedA)
	a.Add(vOnlyA)

	vSharedB, err := variantmodel.NewVariant("vsb", []*variantmodel.VariantCall{sharedCallB})
	require.NoError(t, err)
	vOnlyB, err := variantmodel.NewVariant("vob", []*variantmodel.VariantCall{onlyB})
	require.NoError(t, err)
	b := variantmodel.NewVariantsList()
	b.Add(vSharedB)
	b.Add(vOnlyB)

	params := matchoracle.Params{MaxNeighborDistance: 0, MatchAllBreakpoints: true, MatchVariantTypes: true}
	result, err := Compare(a, b, params, 2, nil)
	require.NoError(t, err)

	require.Equal(t, 1, result.Shared.Size())
	require.Len(t, result.Shared.Variants[0].VariantCalls, 2)

	require.Equal(t, 1, result.AOnly.Size())
	require.Equal(t, "only-a", result.AOnly.Variants[0].VariantCalls[0].ID)

	require.Equal(t, 1, result.BOnly.Size())
	require.Equal(t, "only-b", result.BOnly.Variants[0].VariantCalls[0].ID)
}

// TestOverlap_Monotonicity checks that increasing padding only adds hits,
// never removes them.
func TestOverlap_Monotonicity(t *testing.T) {
	v := singleCallList(t, "v1", "c1", "chr1", 1000, variantmodel.SNV)

	ranges := variantmodel.NewGenomicRangesList()
	r, err := variantmodel.NewGenomicRange("chr1", 1100, 1200)
	require.NoError(t, err)
	ranges.Add(r)

	small := Overlap(v, ranges, 0, 2, nil)
	require.Empty(t, small)

	big := Overlap(v, ranges, 200, 2, nil)
	require.NotEmpty(t, big["c1"])
}

func TestFilterExcludedRegions_DropsHit(t *testing.T) {
	v := singleCallList(t, "v1", "c1", "chr1", 1000, variantmodel.SNV)
	excluded := variantmodel.NewGenomicRangesList()
	r, err := variantmodel.NewGenomicRange("chr1", 900, 1100)
	require.NoError(t, err)
	excluded.Add(r)

	result := FilterExcludedRegions(v, excluded, 0, 2, nil)
	require.Equal(t, 0, result.Size())
}

func TestMerge_RequiresNonEmptyInput(t *testing.T) {
	_, err := Merge(nil, matchoracle.DefaultParams(), 1, nil)
	require.Error(t, err)
}

// TestIntersect_NearMissBreakpoint checks that the neighbor distance
// gates the shared component.
func TestIntersect_NearMissBreakpoint(t *testing.T) {
	a := singleCallList(t, "va", "ca", "chr1", 100, variantmodel.SNV)
	b := singleCallList(t, "vb", "cb", "chr1", 105, variantmodel.SNV)

	wide := matchoracle.Params{MaxNeighborDistance: 10, MatchAllBreakpoints: true, MatchVariantTypes: true}
	result, err := Intersect([]*variantmodel.VariantsList{a, b}, wide, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.Size())

	narrow := wide
	narrow.MaxNeighborDistance = 3
	result, err = Intersect([]*variantmodel.VariantsList{a, b}, narrow, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 0, result.Size())
}

// TestMerge_DeterministicAcrossWorkerCounts checks that component IDs,
// variant ordering, and membership do not depend on the pool size.
func TestMerge_DeterministicAcrossWorkerCounts(t *testing.T) {
	buildInputs := func() []*variantmodel.VariantsList {
		var lists []*variantmodel.VariantsList
		for li := 0; li < 3; li++ {
			vl := variantmodel.NewVariantsList()
			for i := 0; i < 20; i++ {
				pos := int64(1000 + i*50 + li)
				c, err := variantmodel.NewVariantCall(
					fmt.Sprintf("l%d-c%d", li, i), "s1", "chr1", pos, "chr1", pos,
					variantmodel.SNV, "C", "A")
				require.NoError(t, err)
				v, err := variantmodel.NewVariant(fmt.Sprintf("l%d-v%d", li, i), []*variantmodel.VariantCall{c})
				require.NoError(t, err)
				vl.Add(v)
			}
			lists = append(lists, vl)
		}
		return lists
	}

	params := matchoracle.Params{MaxNeighborDistance: 5, MatchAllBreakpoints: true, MatchVariantTypes: true}

	snapshot := func(vl *variantmodel.VariantsList) []string {
		var rows []string
		for _, v := range vl.Variants {
			row := v.ID + ":"
			for _, c := range v.VariantCalls {
				row += c.ID + ","
			}
			rows = append(rows, row)
		}
		return rows
	}

	first, err := Merge(buildInputs(), params, 1, nil)
	require.NoError(t, err)
	want := snapshot(first)

	for _, workers := range []int{2, 4, 8} {
		got, err := Merge(buildInputs(), params, workers, nil)
		require.NoError(t, err)
		require.Equal(t, want, snapshot(got), "workers=%d", workers)
	}
}

// TestMerge_DeterministicWithTiedLoci checks component ordering when two
// distinct components share a smallest-member locus: an SNV and a 1-bp INS
// at the same position split into separate components under type grouping,
// and their IDs must not flap run-to-run.
func TestMerge_DeterministicWithTiedLoci(t *testing.T) {
	buildInput := func() []*variantmodel.VariantsList {
		vl := variantmodel.NewVariantsList()
		snv, err := variantmodel.NewVariantCall("c-snv", "s1", "chr1", 100, "chr1", 100, variantmodel.SNV, "C", "A")
		require.NoError(t, err)
		ins, err := variantmodel.NewVariantCall("c-ins", "s1", "chr1", 100, "chr1", 100, variantmodel.INS, "C", "CA")
		require.NoError(t, err)
		for i, c := range []*variantmodel.VariantCall{snv, ins} {
			v, err := variantmodel.NewVariant(fmt.Sprintf("v%d", i), []*variantmodel.VariantCall{c})
			require.NoError(t, err)
			vl.Add(v)
		}
		return []*variantmodel.VariantsList{vl}
	}

	params := matchoracle.Params{MaxNeighborDistance: 10, MatchAllBreakpoints: true, MatchVariantTypes: true}

	for i := 0; i < 20; i++ {
		result, err := Merge(buildInput(), params, 4, nil)
		require.NoError(t, err)
		require.Equal(t, 2, result.Size())
		// The SNV flattens first, so the tie resolves in its favor.
		require.Equal(t, "0", result.Variants[0].ID)
		require.Equal(t, "c-snv", result.Variants[0].VariantCalls[0].ID)
		require.Equal(t, "1", result.Variants[1].ID)
		require.Equal(t, "c-ins", result.Variants[1].VariantCalls[0].ID)
	}
}

// TestSubtract_OutputSortedByLocus checks that surviving variants come out
// locus-sorted even when the target list is not.
func TestSubtract_OutputSortedByLocus(t *testing.T) {
	mk := func(vID, cID string, pos int64) *variantmodel.Variant {
		c, err := variantmodel.NewVariantCall(cID, "s1", "chr1", pos, "chr1", pos, variantmodel.SNV, "C", "A")
		require.NoError(t, err)
		v, err := variantmodel.NewVariant(vID, []*variantmodel.VariantCall{c})
		require.NoError(t, err)
		return v
	}

	target := variantmodel.NewVariantsList()
	target.Add(mk("v-late", "c-late", 900))
	target.Add(mk("v-early", "c-early", 100))

	query := singleCallList(t, "vq", "cq", "chr1", 5000, variantmodel.SNV)
	params := matchoracle.Params{MaxNeighborDistance: 10, MatchAllBreakpoints: true, MatchVariantTypes: true}

	result, err := Subtract(target, query, params, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 2, result.Size())
	require.Equal(t, "v-early", result.Variants[0].ID)
	require.Equal(t, "v-late", result.Variants[1].ID)
}
