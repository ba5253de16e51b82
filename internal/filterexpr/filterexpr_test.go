package filterexpr

import (
	"testing"

	"github.com/pirl-unc/vstol-go/internal/variantmodel"
	"github.com/stretchr/testify/require"
)

func callWithQuality(t *testing.T, id, sampleID string, quality float64) *variantmodel.VariantCall {
	t.Helper()
	c, err := variantmodel.NewVariantCall(id, sampleID, "chr1", 100, "chr1", 100, variantmodel.SNV, "C", "A")
	require.NoError(t, err)
	c.QualityScore = quality
	return c
}

func variantOf(t *testing.T, id string, calls ...*variantmodel.VariantCall) *variantmodel.Variant {
	t.Helper()
	v, err := variantmodel.NewVariant(id, calls)
	require.NoError(t, err)
	return v
}

// TestEvaluate_QuantifierAll_AllAboveThreshold requires every restricted
// call to clear the threshold.
func TestEvaluate_QuantifierAll_AllAboveThreshold(t *testing.T) {
	v := variantOf(t, "v1",
		callWithQuality(t, "c1", "case1", 40),
		callWithQuality(t, "c2", "case1", 55))

	f := Filter{Quantifier: QuantifierAll, Attribute: "quality_score", Operator: OpGreaterThanOrEqual, Value: NewScalarLiteral(NewNumericScalar(30)), SampleIDs: []string{"case1"}}
	ok, err := Evaluate(v, []Filter{f})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvaluate_QuantifierAll_OneBelowThresholdFails(t *testing.T) {
	v := variantOf(t, "v1",
		callWithQuality(t, "c1", "case1", 10),
		callWithQuality(t, "c2", "case1", 55))

	f := Filter{Quantifier: QuantifierAll, Attribute: "quality_score", Operator: OpGreaterThanOrEqual, Value: NewScalarLiteral(NewNumericScalar(30)), SampleIDs: []string{"case1"}}
	ok, err := Evaluate(v, []Filter{f})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEvaluate_QuantifierAny_OneAboveThresholdPasses(t *testing.T) {
	v := variantOf(t, "v1",
		callWithQuality(t, "c1", "case1", 10),
		callWithQuality(t, "c2", "case1", 55))

	f := Filter{Quantifier: QuantifierAny, Attribute: "quality_score", Operator: OpGreaterThanOrEqual, Value: NewScalarLiteral(NewNumericScalar(30)), SampleIDs: []string{"case1"}}
	ok, err := Evaluate(v, []Filter{f})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvaluate_QuantifierMedian(t *testing.T) {
	v := variantOf(t, "v1",
		callWithQuality(t, "c1", "case1", 10),
		callWithQuality(t, "c2", "case1", 20),
		callWithQuality(t, "c3", "case1", 90))

	f := Filter{Quantifier: QuantifierMedian, Attribute: "quality_score", Operator: OpEquals, Value: NewScalarLiteral(NewNumericScalar(20)), SampleIDs: []string{"case1"}}
	ok, err := Evaluate(v, []Filter{f})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvaluate_SampleRestrictionExcludesOtherSample(t *testing.T) {
	v := variantOf(t, "v1",
		callWithQuality(t, "c1", "control1", 90))

	f := Filter{Quantifier: QuantifierAll, Attribute: "quality_score", Operator: OpGreaterThanOrEqual, Value: NewScalarLiteral(NewNumericScalar(30)), SampleIDs: []string{"case1"}}
	ok, err := Evaluate(v, []Filter{f})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEvaluate_NonNumericAttributeWithOrderingOperatorIsInvalidPredicate(t *testing.T) {
	c, err := variantmodel.NewVariantCall("c1", "case1", "chr1", 100, "chr1", 100, variantmodel.SNV, "C", "A")
	require.NoError(t, err)
	v := variantOf(t, "v1", c)

	f := Filter{Quantifier: QuantifierAll, Attribute: "variant_type", Operator: OpGreaterThan, Value: NewScalarLiteral(NewTextScalar("DEL")), SampleIDs: []string{"case1"}}
	_, err = Evaluate(v, []Filter{f})
	require.Error(t, err)
}

func TestEvaluate_InOperatorOnText(t *testing.T) {
	c, err := variantmodel.NewVariantCall("c1", "case1", "chr1", 100, "chr1", 100, variantmodel.SNV, "C", "A")
	require.NoError(t, err)
	v := variantOf(t, "v1", c)

	f := Filter{
		Quantifier: QuantifierAny,
		Attribute:  "variant_type",
		Operator:   OpIn,
		Value:      NewListLiteral([]Scalar{NewTextScalar("SNV"), NewTextScalar("MNV")}),
		SampleIDs:  []string{"case1"},
	}
	ok, err := Evaluate(v, []Filter{f})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvaluate_UnknownAttributeErrors(t *testing.T) {
	c, err := variantmodel.NewVariantCall("c1", "case1", "chr1", 100, "chr1", 100, variantmodel.SNV, "C", "A")
	require.NoError(t, err)
	v := variantOf(t, "v1", c)

	f := Filter{Quantifier: QuantifierAll, Attribute: "not_a_field", Operator: OpEquals, Value: NewScalarLiteral(NewNumericScalar(1)), SampleIDs: []string{"case1"}}
	_, err = Evaluate(v, []Filter{f})
	require.Error(t, err)
}

func TestEvaluateAll_TagsPassAndFail(t *testing.T) {
	vl := variantmodel.NewVariantsList()
	vl.Add(variantOf(t, "v1", callWithQuality(t, "c1", "case1", 55)))
	vl.Add(variantOf(t, "v2", callWithQuality(t, "c2", "case1", 5)))

	f := Filter{Quantifier: QuantifierAll, Attribute: "quality_score", Operator: OpGreaterThanOrEqual, Value: NewScalarLiteral(NewNumericScalar(30)), SampleIDs: []string{"case1"}}
	out, err := EvaluateAll(vl, []Filter{f}, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 1, out.Size())
	require.True(t, out.Variants[0].VariantCalls[0].HasTag(TagPassed))
}
