package variantmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVariantCall_RejectsUnknownType(t *testing.T) {
	_, err := NewVariantCall("c1", "s1", "chr1", 100, "chr1", 100, VariantType("WEIRD"), "C", "A")
	require.Error(t, err)
}

func TestNewVariantCall_RejectsLocusInversion(t *testing.T) {
	_, err := NewVariantCall("c1", "s1", "chr1", 200, "chr1", 100, DEL, "CTT", "C")
	require.Error(t, err)

	// BND breakpoints may be stored in either order.
	_, err = NewVariantCall("c2", "s1", "chr1", 200, "chr1", 100, BND, "", "N")
	require.NoError(t, err)
}

func TestNewVariantCall_DerivesSizeForSameChromosomeBreakends(t *testing.T) {
	c, err := NewVariantCall("c1", "s1", "chr1", 300, "chr1", 100, TRA, "", "N")
	require.NoError(t, err)
	assert.Equal(t, int64(200), c.VariantSize)

	c, err = NewVariantCall("c2", "s1", "chr1", 100, "chr5", 500, TRA, "", "N")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), c.VariantSize)

	c, err = NewVariantCall("c3", "s1", "chr1", 100, "chr1", 200, DEL, "C", "")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), c.VariantSize, "non-breakend size comes from the caller")
}

func TestLessByLocus(t *testing.T) {
	mk := func(chrom1 string, pos1 int64, chrom2 string, pos2 int64) *VariantCall {
		c, err := NewVariantCall("c", "s1", chrom1, pos1, chrom2, pos2, BND, "", "N")
		require.NoError(t, err)
		return c
	}

	tests := []struct {
		name string
		a, b *VariantCall
		want bool
	}{
		{"chromosome_1 first", mk("chr1", 900, "chr1", 900), mk("chr2", 100, "chr2", 100), true},
		{"position_1 second", mk("chr1", 100, "chr1", 100), mk("chr1", 200, "chr1", 200), true},
		{"chromosome_2 third", mk("chr1", 100, "chr2", 100), mk("chr1", 100, "chr3", 100), true},
		{"position_2 last", mk("chr1", 100, "chr2", 100), mk("chr1", 100, "chr2", 200), true},
		{"equal is not less", mk("chr1", 100, "chr1", 100), mk("chr1", 100, "chr1", 100), false},
		{"lexicographic chromosomes", mk("chr10", 100, "chr10", 100), mk("chr2", 100, "chr2", 100), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LessByLocus(tc.a, tc.b))
		})
	}
}

func TestNewVariant_SortsCallsByLocus(t *testing.T) {
	late, err := NewVariantCall("late", "s1", "chr1", 500, "chr1", 500, SNV, "C", "A")
	require.NoError(t, err)
	early, err := NewVariantCall("early", "s1", "chr1", 100, "chr1", 100, SNV, "C", "A")
	require.NoError(t, err)

	v, err := NewVariant("v1", []*VariantCall{late, early})
	require.NoError(t, err)
	require.Len(t, v.VariantCalls, 2)
	assert.Equal(t, "early", v.VariantCalls[0].ID)
	assert.Equal(t, "late", v.VariantCalls[1].ID)
}

func TestNewVariant_RejectsMixedChromosomes(t *testing.T) {
	a, err := NewVariantCall("a", "s1", "chr1", 100, "chr1", 100, SNV, "C", "A")
	require.NoError(t, err)
	b, err := NewVariantCall("b", "s1", "chr2", 100, "chr2", 100, SNV, "C", "A")
	require.NoError(t, err)

	_, err = NewVariant("v1", []*VariantCall{a, b})
	require.Error(t, err)
}

func TestNewVariant_AcceptsSwappedBreakpointOrder(t *testing.T) {
	a, err := NewVariantCall("a", "s1", "chr1", 100, "chr5", 500, TRA, "", "N")
	require.NoError(t, err)
	b, err := NewVariantCall("b", "s2", "chr5", 500, "chr1", 100, TRA, "", "N")
	require.NoError(t, err)

	v, err := NewVariant("v1", []*VariantCall{a, b})
	require.NoError(t, err)
	assert.Len(t, v.VariantCalls, 2)
}

func TestVariantsList_GetAndSort(t *testing.T) {
	mk := func(vID, cID string, pos int64) *Variant {
		c, err := NewVariantCall(cID, "s1", "chr1", pos, "chr1", pos, SNV, "C", "A")
		require.NoError(t, err)
		v, err := NewVariant(vID, []*VariantCall{c})
		require.NoError(t, err)
		return v
	}

	vl := NewVariantsList()
	vl.Add(mk("v-late", "c1", 900))
	vl.Add(mk("v-early", "c2", 100))

	assert.Equal(t, 2, vl.Size())
	assert.NotNil(t, vl.Get("v-late"))
	assert.Nil(t, vl.Get("missing"))

	vl.SortByLocus()
	assert.Equal(t, "v-early", vl.Variants[0].ID)
	assert.NotNil(t, vl.Get("v-late"), "index survives re-sorting")
}

func TestWithTag_DoesNotMutateReceiver(t *testing.T) {
	c, err := NewVariantCall("c1", "s1", "chr1", 100, "chr1", 100, SNV, "C", "A")
	require.NoError(t, err)

	tagged := c.WithTag("passed")
	assert.True(t, tagged.HasTag("passed"))
	assert.False(t, c.HasTag("passed"))
}

func TestAttributes_PreserveInsertionOrder(t *testing.T) {
	attrs := NewAttributes()
	attrs.Set("zeta", NewIntAttribute(1))
	attrs.Set("alpha", NewFloatAttribute(0.5))
	attrs.Set("zeta", NewIntAttribute(2))

	assert.Equal(t, []string{"zeta", "alpha"}, attrs.Keys)
	v, ok := attrs.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, int64(2), v.Int)
}

func TestGenomicRange_IDAndValidation(t *testing.T) {
	r, err := NewGenomicRange("chr1", 100, 200)
	require.NoError(t, err)
	assert.Equal(t, "chr1:100-200", r.ID())

	_, err = NewGenomicRange("chr1", 200, 100)
	require.Error(t, err)
}
