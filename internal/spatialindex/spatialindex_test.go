package spatialindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pirl-unc/vstol-go/internal/variantmodel"
)

func mustCall(t *testing.T, id, chrom1 string, pos1 int64, chrom2 string, pos2 int64) *variantmodel.VariantCall {
	t.Helper()
	c, err := variantmodel.NewVariantCall(id, "s1", chrom1, pos1, chrom2, pos2, variantmodel.BND, "", "N")
	require.NoError(t, err)
	return c
}

func TestQuery_Empty(t *testing.T) {
	idx := Build(nil, Both)
	assert.Empty(t, idx.Query("chr1", 0, 1000))
}

func TestQuery_SinglePointHit(t *testing.T) {
	c := mustCall(t, "c1", "chr1", 100, "chr1", 100)
	idx := Build([]*variantmodel.VariantCall{c}, Pos1)

	assert.Equal(t, []string{"c1"}, idx.Query("chr1", 100, 100), "exact position")
	assert.Equal(t, []string{"c1"}, idx.Query("chr1", 90, 110), "padded window")
	assert.Empty(t, idx.Query("chr1", 101, 200), "window past the point")
	assert.Empty(t, idx.Query("chr2", 100, 100), "absent chromosome")
}

func TestQuery_AnchorSelection(t *testing.T) {
	c := mustCall(t, "c1", "chr1", 100, "chr5", 500)

	pos1Only := Build([]*variantmodel.VariantCall{c}, Pos1)
	assert.NotEmpty(t, pos1Only.Query("chr1", 100, 100))
	assert.Empty(t, pos1Only.Query("chr5", 500, 500))

	both := Build([]*variantmodel.VariantCall{c}, Both)
	assert.NotEmpty(t, both.Query("chr1", 100, 100))
	assert.NotEmpty(t, both.Query("chr5", 500, 500))
}

func TestQuery_MultipleCallsOnOneChromosome(t *testing.T) {
	calls := []*variantmodel.VariantCall{
		mustCall(t, "a", "chr1", 100, "chr1", 100),
		mustCall(t, "b", "chr1", 150, "chr1", 150),
		mustCall(t, "c", "chr1", 900, "chr1", 900),
	}
	idx := Build(calls, Pos1)

	hits := idx.Query("chr1", 90, 200)
	assert.Len(t, hits, 2)
	ids := map[string]bool{}
	for _, id := range hits {
		ids[id] = true
	}
	assert.True(t, ids["a"])
	assert.True(t, ids["b"])
	assert.False(t, ids["c"])
}

func TestQuery_DeterministicAcrossBuilds(t *testing.T) {
	calls := []*variantmodel.VariantCall{
		mustCall(t, "a", "chr1", 100, "chr1", 100),
		mustCall(t, "b", "chr1", 100, "chr1", 100),
		mustCall(t, "c", "chr1", 100, "chr1", 100),
	}

	first := Build(calls, Pos1).Query("chr1", 100, 100)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Build(calls, Pos1).Query("chr1", 100, 100))
	}
}

func TestBuildRanges_FullIntervalIndexed(t *testing.T) {
	g := variantmodel.NewGenomicRangesList()
	r, err := variantmodel.NewGenomicRange("chr1", 1000, 2000)
	require.NoError(t, err)
	g.Add(r)

	idx := BuildRanges(g)
	assert.Equal(t, []string{"chr1:1000-2000"}, idx.Query("chr1", 1500, 1500), "interior point")
	assert.Equal(t, []string{"chr1:1000-2000"}, idx.Query("chr1", 1000, 1000), "start boundary inclusive")
	assert.Equal(t, []string{"chr1:1000-2000"}, idx.Query("chr1", 2000, 2000), "end boundary inclusive")
	assert.Empty(t, idx.Query("chr1", 2001, 3000))
}

func TestHasChromosome(t *testing.T) {
	c := mustCall(t, "c1", "chr1", 100, "chr1", 100)
	idx := Build([]*variantmodel.VariantCall{c}, Pos1)
	assert.True(t, idx.HasChromosome("chr1"))
	assert.False(t, idx.HasChromosome("chrX"))
}
