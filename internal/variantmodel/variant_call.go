// Package variantmodel provides the canonical in-memory representation of a
// variant call, a variant (a cluster of calls denoting the same event), and
// a genomic range. It supplies value semantics only: construction,
// equality/ordering by locus, and a one-line text rendering of a call. No
// set-algebra or matching logic lives here.
package variantmodel

import (
	"fmt"

	"github.com/pirl-unc/vstol-go/internal/vstolerr"
)

// VariantType is the fixed vocabulary of caller-reported event types.
type VariantType string

const (
	SNV VariantType = "SNV"
	MNV VariantType = "MNV"
	INS VariantType = "INS"
	DEL VariantType = "DEL"
	DUP VariantType = "DUP"
	INV VariantType = "INV"
	TRA VariantType = "TRA"
	BND VariantType = "BND"
)

func validVariantType(t VariantType) bool {
	switch t {
	case SNV, MNV, INS, DEL, DUP, INV, TRA, BND:
		return true
	}
	return false
}

// VariantCallAnnotation is a single gene/region annotation attached to one
// breakpoint of a VariantCall. Construction only: no GTF/gene-annotation
// lookup logic lives in this core.
type VariantCallAnnotation struct {
	Source     string
	GeneID     string
	GeneName   string
	RegionType string
}

// VariantCall is a single caller-reported breakpoint event.
type VariantCall struct {
	// Identity
	ID string

	// Locus
	Chromosome1 string
	Position1   int64
	Chromosome2 string
	Position2   int64

	// Classification
	VariantType    VariantType
	VariantSubtype string
	VariantSize    int64 // -1 = unknown

	// Alleles
	ReferenceAllele string
	AlternateAllele string

	// Evidence
	ReferenceAlleleReadCount int64   // -1 = unset
	AlternateAlleleReadCount int64   // -1 = unset
	TotalReadCount           int64   // -1 = unset
	AlternateAlleleFraction  float64 // -1.0 = missing sentinel
	AlternateAlleleReadIDs   []string
	VariantSequences         []string
	QualityScore             float64 // -1.0 = unset
	Filter                   string
	Precise                  *bool // nil = not reported

	// Provenance
	SampleID             string
	SourceID             string
	CloneID              string
	PhaseBlockID         string
	NucleicAcid          string
	SequencingPlatform   string
	VariantCallingMethod string

	// Free-form attributes
	Attributes Attributes

	// Tags
	Tags map[string]struct{}

	// Annotations
	Position1Annotations []VariantCallAnnotation
	Position2Annotations []VariantCallAnnotation

	// Alignment-score enrichment, populated externally by the
	// alignment-index integration.
	AverageAlignmentScoreWindow    int64
	Position1AverageAlignmentScore float64
	Position2AverageAlignmentScore float64
}

// NewVariantCall constructs a VariantCall with sentinel defaults for every
// optional numeric field, validating the locus and variant type invariants.
func NewVariantCall(id, sampleID, chrom1 string, pos1 int64, chrom2 string, pos2 int64, vtype VariantType, ref, alt string) (*VariantCall, error) {
	if !validVariantType(vtype) {
		return nil, vstolerr.Newf(vstolerr.MalformedInput, "unknown variant_type %q", vtype).WithDetail(id)
	}
	if chrom1 == chrom2 && pos1 > pos2 {
		switch vtype {
		case INS, DEL, DUP, INV:
			return nil, vstolerr.Newf(vstolerr.MalformedInput, "locus inversion: position_1 %d > position_2 %d", pos1, pos2).WithDetail(id)
		}
	}
	// A same-chromosome breakend pair implies its size; cross-chromosome
	// events have none.
	size := int64(-1)
	if (vtype == BND || vtype == TRA) && chrom1 == chrom2 {
		size = pos2 - pos1
		if size < 0 {
			size = -size
		}
	}
	return &VariantCall{
		ID:                       id,
		SampleID:                 sampleID,
		Chromosome1:              chrom1,
		Position1:                pos1,
		Chromosome2:              chrom2,
		Position2:                pos2,
		VariantType:              vtype,
		ReferenceAllele:          ref,
		AlternateAllele:          alt,
		VariantSize:              size,
		ReferenceAlleleReadCount: -1,
		AlternateAlleleReadCount: -1,
		TotalReadCount:           -1,
		AlternateAlleleFraction:  -1.0,
		QualityScore:             -1.0,
		Attributes:               NewAttributes(),
		Tags:                     make(map[string]struct{}),

		AverageAlignmentScoreWindow:    -1,
		Position1AverageAlignmentScore: -1.0,
		Position2AverageAlignmentScore: -1.0,
	}, nil
}

// AddTag records a filtering outcome tag.
func (v *VariantCall) AddTag(tag string) {
	if v.Tags == nil {
		v.Tags = make(map[string]struct{})
	}
	v.Tags[tag] = struct{}{}
}

// HasTag reports whether the call carries the given tag.
func (v *VariantCall) HasTag(tag string) bool {
	_, ok := v.Tags[tag]
	return ok
}

// WithTag returns a shallow copy of v with tag added, leaving v untouched.
// Set-algebra and filtering never mutate a VariantCall in place.
func (v *VariantCall) WithTag(tag string) *VariantCall {
	cp := *v
	cp.Tags = make(map[string]struct{}, len(v.Tags)+1)
	for t := range v.Tags {
		cp.Tags[t] = struct{}{}
	}
	cp.Tags[tag] = struct{}{}
	return &cp
}

// ChromosomePair returns the unordered breakpoint-chromosome pair used by
// the match oracle's chromosome constraint.
func (v *VariantCall) ChromosomePair() [2]string {
	if v.Chromosome1 <= v.Chromosome2 {
		return [2]string{v.Chromosome1, v.Chromosome2}
	}
	return [2]string{v.Chromosome2, v.Chromosome1}
}

// locusKey returns the tuple used for locus ordering across the engine.
func (v *VariantCall) locusKey() (string, int64, string, int64) {
	return v.Chromosome1, v.Position1, v.Chromosome2, v.Position2
}

// LessByLocus orders two VariantCall records by (chromosome_1, position_1,
// chromosome_2, position_2), lexicographic chromosome order.
func LessByLocus(a, b *VariantCall) bool {
	ac1, ap1, ac2, ap2 := a.locusKey()
	bc1, bp1, bc2, bp2 := b.locusKey()
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

// Equal compares two calls by locus only.
func Equal(a, b *VariantCall) bool {
	ac1, ap1, ac2, ap2 := a.locusKey()
	bc1, bp1, bc2, bp2 := b.locusKey()
	return ac1 == bc1 && ap1 == bp1 && ac2 == bc2 && ap2 == bp2
}

// String renders a one-line, tab-separated summary of the call: ID, both
// breakpoints, variant type and alleles. Canonical variant TSV rows are
// produced by internal/tsv, not here.
func (v *VariantCall) String() string {
	return fmt.Sprintf("%s\t%s:%d\t%s:%d\t%s\t%s>%s", v.ID, v.Chromosome1, v.Position1, v.Chromosome2, v.Position2, v.VariantType, v.ReferenceAllele, v.AlternateAllele)
}
