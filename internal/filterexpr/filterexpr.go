// Package filterexpr evaluates attribute-based predicates over the variant
// calls attached to each Variant, with per-sample-set quantifiers.
// Attribute resolution is table-driven: a fixed name vocabulary maps to
// per-call accessors, and unknown names are rejected up front.
package filterexpr

// Quantifier is the fixed vocabulary of per-sample-set reductions.
type Quantifier string

const (
	QuantifierAll     Quantifier = "all"
	QuantifierAny     Quantifier = "any"
	QuantifierMin     Quantifier = "min"
	QuantifierMax     Quantifier = "max"
	QuantifierMedian  Quantifier = "median"
	QuantifierAverage Quantifier = "average"
)

// Operator is the fixed vocabulary of predicate comparisons.
type Operator string

const (
	OpLessThan           Operator = "<"
	OpLessThanOrEqual    Operator = "<="
	OpGreaterThan        Operator = ">"
	OpGreaterThanOrEqual Operator = ">="
	OpEquals             Operator = "=="
	OpNotEquals          Operator = "!="
	OpIn                 Operator = "in"
)

// Filtering-outcome tags recorded on each call.
const (
	TagPassed                = "passed"
	TagFailedFilter          = "failed_filter"
	TagHomopolymerRegion     = "homopolymer_region"
	TagNearbyExcludedVariant = "nearby_excluded_variant"
	TagNearbyExcludedRegion  = "nearby_excluded_region"
)

// SampleType distinguishes a CLI-level case/control sample-id set; the
// corresponding sample ID sets are folded into Filter.SampleIDs before
// evaluation.
type SampleType string

const (
	SampleTypeCase    SampleType = "case"
	SampleTypeControl SampleType = "control"
)

// Filter is one predicate: (quantifier, attribute, operator, value,
// sample_ids).
type Filter struct {
	Quantifier Quantifier
	Attribute  string
	Operator   Operator
	Value      Literal
	SampleIDs  []string
}
