package filterexpr

import (
	"sort"

	"github.com/pirl-unc/vstol-go/internal/variantmodel"
	"github.com/pirl-unc/vstol-go/internal/vstolerr"
)

// Evaluate applies every filter to variant in order, short-circuiting on
// the first unsatisfied predicate.
func Evaluate(variant *variantmodel.Variant, filters []Filter) (bool, error) {
	for _, f := range filters {
		ok, err := evaluateOne(variant, f)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func evaluateOne(variant *variantmodel.Variant, f Filter) (bool, error) {
	resolver, ok := attributeResolvers[f.Attribute]
	if !ok {
		return false, vstolerr.Newf(vstolerr.UnknownAttribute, "unknown filter attribute %q", f.Attribute)
	}

	sampleSet := make(map[string]struct{}, len(f.SampleIDs))
	for _, s := range f.SampleIDs {
		sampleSet[s] = struct{}{}
	}

	var values []resolved
	for _, c := range variant.VariantCalls {
		if _, ok := sampleSet[c.SampleID]; !ok {
			continue
		}
		values = append(values, resolver(c))
	}
	if len(values) == 0 {
		return false, nil
	}

	kind := values[0].kind

	switch f.Quantifier {
	case QuantifierAll, QuantifierAny:
		if kind == resolvedText && !textOperatorAllowed(f.Operator) {
			return false, vstolerr.Newf(vstolerr.InvalidPredicate, "operator %q is not legal on non-numeric attribute %q", f.Operator, f.Attribute)
		}
		matches := 0
		for _, v := range values {
			ok, err := compare(v, f.Operator, f.Value)
			if err != nil {
				return false, err
			}
			if ok {
				matches++
			}
		}
		if f.Quantifier == QuantifierAll {
			return matches == len(values), nil
		}
		return matches > 0, nil

	case QuantifierMin, QuantifierMax, QuantifierMedian, QuantifierAverage:
		if kind == resolvedText {
			return false, vstolerr.Newf(vstolerr.InvalidPredicate, "quantifier %q requires a numeric attribute, got %q", f.Quantifier, f.Attribute)
		}
		agg := aggregate(values, f.Quantifier)
		return compare(numericValue(agg), f.Operator, f.Value)

	default:
		return false, vstolerr.Newf(vstolerr.InvalidPredicate, "unknown quantifier %q", f.Quantifier)
	}
}

func textOperatorAllowed(op Operator) bool {
	switch op {
	case OpEquals, OpNotEquals, OpIn:
		return true
	}
	return false
}

func aggregate(values []resolved, q Quantifier) float64 {
	nums := make([]float64, len(values))
	for i, v := range values {
		nums[i] = v.num
	}
	switch q {
	case QuantifierMin:
		m := nums[0]
		for _, n := range nums[1:] {
			if n < m {
				m = n
			}
		}
		return m
	case QuantifierMax:
		m := nums[0]
		for _, n := range nums[1:] {
			if n > m {
				m = n
			}
		}
		return m
	case QuantifierAverage:
		var sum float64
		for _, n := range nums {
			sum += n
		}
		return sum / float64(len(nums))
	case QuantifierMedian:
		sorted := append([]float64(nil), nums...)
		sort.Float64s(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return sorted[mid]
		}
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return 0
}

func compare(v resolved, op Operator, lit Literal) (bool, error) {
	if op == OpIn {
		if !lit.IsList {
			return false, vstolerr.New(vstolerr.InvalidPredicate, "operator \"in\" requires a list value")
		}
		for _, item := range lit.List {
			if equal(v, item) {
				return true, nil
			}
		}
		return false, nil
	}

	switch op {
	case OpEquals:
		return equal(v, lit.Scalar), nil
	case OpNotEquals:
		return !equal(v, lit.Scalar), nil
	case OpLessThan, OpLessThanOrEqual, OpGreaterThan, OpGreaterThanOrEqual:
		if v.kind != resolvedNumeric {
			return false, vstolerr.Newf(vstolerr.InvalidPredicate, "operator %q is not legal on a non-numeric attribute", op)
		}
		rhs, ok := lit.Scalar.asFloat()
		if !ok {
			return false, vstolerr.Newf(vstolerr.InvalidPredicate, "value is not numeric for operator %q", op)
		}
		switch op {
		case OpLessThan:
			return v.num < rhs, nil
		case OpLessThanOrEqual:
			return v.num <= rhs, nil
		case OpGreaterThan:
			return v.num > rhs, nil
		default:
			return v.num >= rhs, nil
		}
	default:
		return false, vstolerr.Newf(vstolerr.InvalidPredicate, "unknown operator %q", op)
	}
}

func equal(v resolved, s Scalar) bool {
	if v.kind == resolvedNumeric {
		rhs, ok := s.asFloat()
		if !ok {
			return false
		}
		return v.num == rhs
	}
	return v.str == s.asText()
}
