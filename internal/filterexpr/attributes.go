package filterexpr

import "github.com/pirl-unc/vstol-go/internal/variantmodel"

type resolvedKind int

const (
	resolvedNumeric resolvedKind = iota
	resolvedText
)

// resolved is one call's extracted value for a given attribute name.
type resolved struct {
	kind resolvedKind
	num  float64
	str  string
}

func numericValue(v float64) resolved { return resolved{kind: resolvedNumeric, num: v} }
func textValue(v string) resolved     { return resolved{kind: resolvedText, str: v} }

// boolValue renders precise as the yes|no|"" vocabulary used at the TSV
// boundary, so a --filter value of "yes"/"no" matches what a user would
// see in the file.
func boolValue(v *bool) resolved {
	switch {
	case v == nil:
		return textValue("")
	case *v:
		return textValue("yes")
	default:
		return textValue("no")
	}
}

// attributeResolvers is the fixed field vocabulary a Filter.Attribute may
// name. Unknown names are rejected before lookup, so covering the whole
// VariantCall surface here is harmless.
var attributeResolvers = map[string]func(*variantmodel.VariantCall) resolved{
	"id":                    func(c *variantmodel.VariantCall) resolved { return textValue(c.ID) },
	"sample_id":             func(c *variantmodel.VariantCall) resolved { return textValue(c.SampleID) },
	"chromosome_1":          func(c *variantmodel.VariantCall) resolved { return textValue(c.Chromosome1) },
	"chromosome_2":          func(c *variantmodel.VariantCall) resolved { return textValue(c.Chromosome2) },
	"position_1":            func(c *variantmodel.VariantCall) resolved { return numericValue(float64(c.Position1)) },
	"position_2":            func(c *variantmodel.VariantCall) resolved { return numericValue(float64(c.Position2)) },
	"variant_type":          func(c *variantmodel.VariantCall) resolved { return textValue(string(c.VariantType)) },
	"variant_subtype":       func(c *variantmodel.VariantCall) resolved { return textValue(c.VariantSubtype) },
	"variant_size":          func(c *variantmodel.VariantCall) resolved { return numericValue(float64(c.VariantSize)) },
	"reference_allele":      func(c *variantmodel.VariantCall) resolved { return textValue(c.ReferenceAllele) },
	"alternate_allele":      func(c *variantmodel.VariantCall) resolved { return textValue(c.AlternateAllele) },
	"reference_allele_read_count": func(c *variantmodel.VariantCall) resolved {
		return numericValue(float64(c.ReferenceAlleleReadCount))
	},
	"alternate_allele_read_count": func(c *variantmodel.VariantCall) resolved {
		return numericValue(float64(c.AlternateAlleleReadCount))
	},
	"total_read_count": func(c *variantmodel.VariantCall) resolved { return numericValue(float64(c.TotalReadCount)) },
	"alternate_allele_fraction": func(c *variantmodel.VariantCall) resolved {
		return numericValue(c.AlternateAlleleFraction)
	},
	"quality_score":  func(c *variantmodel.VariantCall) resolved { return numericValue(c.QualityScore) },
	"filter":         func(c *variantmodel.VariantCall) resolved { return textValue(c.Filter) },
	"precise":        func(c *variantmodel.VariantCall) resolved { return boolValue(c.Precise) },
	"source_id":      func(c *variantmodel.VariantCall) resolved { return textValue(c.SourceID) },
	"clone_id":       func(c *variantmodel.VariantCall) resolved { return textValue(c.CloneID) },
	"phase_block_id": func(c *variantmodel.VariantCall) resolved { return textValue(c.PhaseBlockID) },
	"nucleic_acid":   func(c *variantmodel.VariantCall) resolved { return textValue(c.NucleicAcid) },
	"sequencing_platform": func(c *variantmodel.VariantCall) resolved {
		return textValue(c.SequencingPlatform)
	},
	"variant_calling_method": func(c *variantmodel.VariantCall) resolved {
		return textValue(c.VariantCallingMethod)
	},
	"position_1_average_alignment_score": func(c *variantmodel.VariantCall) resolved {
		return numericValue(c.Position1AverageAlignmentScore)
	},
	"position_2_average_alignment_score": func(c *variantmodel.VariantCall) resolved {
		return numericValue(c.Position2AverageAlignmentScore)
	},
}
