package tsv

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pirl-unc/vstol-go/internal/variantmodel"
	"github.com/pirl-unc/vstol-go/internal/vstolerr"
)

// Writer is the inverse of Reader: one row per (variant, call) pair, columns
// in the fixed order of allColumns. The output file is created when the
// Writer is opened, and rows go through a bufio.Writer that writes to the
// file whenever its buffer fills; Flush writes the rest. A write error part
// way through can therefore leave an empty or truncated file behind.
type Writer struct {
	w      *bufio.Writer
	gz     *gzip.Writer
	closer io.Closer
}

// NewWriter opens path for writing (or stdout for "-"), optionally wrapping
// the stream in a gzip writer.
func NewWriter(path string, gzipOutput bool) (*Writer, error) {
	var f io.Writer
	var closer io.Closer

	if path == "-" || path == "" {
		f = os.Stdout
	} else {
		file, err := os.Create(path)
		if err != nil {
			return nil, vstolerr.Newf(vstolerr.IOFailure, "create tsv file: %v", err).WithDetail(path)
		}
		f = file
		closer = file
	}

	out := &Writer{closer: closer}
	if gzipOutput {
		out.gz = gzip.NewWriter(f)
		out.w = bufio.NewWriter(out.gz)
	} else {
		out.w = bufio.NewWriter(f)
	}
	return out, nil
}

// WriteHeader writes the fixed canonical column header.
func (w *Writer) WriteHeader() error {
	_, err := w.w.WriteString(strings.Join(allColumns, "\t") + "\n")
	return err
}

// WriteAll writes one row per VariantCall, in variant-then-within-variant
// order, without flushing.
func (w *Writer) WriteAll(vl *variantmodel.VariantsList) error {
	for _, v := range vl.Variants {
		for _, c := range v.VariantCalls {
			if err := w.writeRow(v.ID, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) writeRow(variantID string, c *variantmodel.VariantCall) error {
	row := make([]string, len(allColumns))
	for i, col := range allColumns {
		row[i] = w.cell(variantID, c, col)
	}
	_, err := w.w.WriteString(strings.Join(row, "\t") + "\n")
	return err
}

func (w *Writer) cell(variantID string, c *variantmodel.VariantCall, col string) string {
	switch col {
	case "variant_id":
		return variantID
	case "variant_call_id":
		return c.ID
	case "sample_id":
		return c.SampleID
	case "chromosome_1":
		return c.Chromosome1
	case "position_1":
		return strconv.FormatInt(c.Position1, 10)
	case "chromosome_2":
		return c.Chromosome2
	case "position_2":
		return strconv.FormatInt(c.Position2, 10)
	case "variant_type":
		return string(c.VariantType)
	case "reference_allele":
		return placeholderIfEmpty(c.ReferenceAllele)
	case "alternate_allele":
		return placeholderIfEmpty(c.AlternateAllele)
	case "variant_subtype":
		return placeholderIfEmpty(c.VariantSubtype)
	case "variant_size":
		return intOrPlaceholder(c.VariantSize)
	case "reference_allele_read_count":
		return intOrPlaceholder(c.ReferenceAlleleReadCount)
	case "alternate_allele_read_count":
		return intOrPlaceholder(c.AlternateAlleleReadCount)
	case "total_read_count":
		return intOrPlaceholder(c.TotalReadCount)
	case "alternate_allele_fraction":
		if c.AlternateAlleleFraction < 0 {
			return placeholder
		}
		return strconv.FormatFloat(c.AlternateAlleleFraction, 'g', -1, 64)
	case "alternate_allele_read_ids":
		return joinMulti(c.AlternateAlleleReadIDs)
	case "variant_sequences":
		return joinMulti(c.VariantSequences)
	case "quality_score":
		if c.QualityScore < 0 {
			return placeholder
		}
		return strconv.FormatFloat(c.QualityScore, 'g', -1, 64)
	case "filter":
		return placeholderIfEmpty(c.Filter)
	case "precise":
		return preciseCell(c.Precise)
	case "source_id":
		return placeholderIfEmpty(c.SourceID)
	case "clone_id":
		return placeholderIfEmpty(c.CloneID)
	case "phase_block_id":
		return placeholderIfEmpty(c.PhaseBlockID)
	case "nucleic_acid":
		return placeholderIfEmpty(c.NucleicAcid)
	case "sequencing_platform":
		return placeholderIfEmpty(c.SequencingPlatform)
	case "variant_calling_method":
		return placeholderIfEmpty(c.VariantCallingMethod)
	case "average_alignment_score_window":
		return intOrPlaceholder(c.AverageAlignmentScoreWindow)
	case "position_1_average_alignment_score":
		if c.Position1AverageAlignmentScore < 0 {
			return placeholder
		}
		return strconv.FormatFloat(c.Position1AverageAlignmentScore, 'g', -1, 64)
	case "position_2_average_alignment_score":
		if c.Position2AverageAlignmentScore < 0 {
			return placeholder
		}
		return strconv.FormatFloat(c.Position2AverageAlignmentScore, 'g', -1, 64)
	case "attributes":
		return joinAttributes(c.Attributes)
	case "tags":
		return joinTags(c.Tags)
	case "position_1_annotation_sources":
		return joinAnnotationField(c.Position1Annotations, func(a variantmodel.VariantCallAnnotation) string { return a.Source })
	case "position_1_annotation_gene_ids":
		return joinAnnotationField(c.Position1Annotations, func(a variantmodel.VariantCallAnnotation) string { return a.GeneID })
	case "position_1_annotation_gene_names":
		return joinAnnotationField(c.Position1Annotations, func(a variantmodel.VariantCallAnnotation) string { return a.GeneName })
	case "position_1_annotation_region_types":
		return joinAnnotationField(c.Position1Annotations, func(a variantmodel.VariantCallAnnotation) string { return a.RegionType })
	case "position_2_annotation_sources":
		return joinAnnotationField(c.Position2Annotations, func(a variantmodel.VariantCallAnnotation) string { return a.Source })
	case "position_2_annotation_gene_ids":
		return joinAnnotationField(c.Position2Annotations, func(a variantmodel.VariantCallAnnotation) string { return a.GeneID })
	case "position_2_annotation_gene_names":
		return joinAnnotationField(c.Position2Annotations, func(a variantmodel.VariantCallAnnotation) string { return a.GeneName })
	case "position_2_annotation_region_types":
		return joinAnnotationField(c.Position2Annotations, func(a variantmodel.VariantCallAnnotation) string { return a.RegionType })
	default:
		return placeholder
	}
}

func placeholderIfEmpty(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func intOrPlaceholder(v int64) string {
	if v < 0 {
		return placeholder
	}
	return strconv.FormatInt(v, 10)
}

func preciseCell(p *bool) string {
	switch {
	case p == nil:
		return ""
	case *p:
		return "yes"
	default:
		return "no"
	}
}

func joinMulti(vals []string) string {
	if len(vals) == 0 {
		return placeholder
	}
	return strings.Join(vals, multiValueSep)
}

// joinTags sorts before joining: tags are held in a set, and output must
// be byte-identical across runs.
func joinTags(tags map[string]struct{}) string {
	if len(tags) == 0 {
		return placeholder
	}
	out := make([]string, 0, len(tags))
	for t := range tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return strings.Join(out, multiValueSep)
}

func joinAttributes(attrs variantmodel.Attributes) string {
	if attrs.Len() == 0 {
		return placeholder
	}
	parts := make([]string, 0, attrs.Len())
	for _, k := range attrs.Keys {
		v, _ := attrs.Get(k)
		parts = append(parts, fmt.Sprintf("%s%s%s", k, kvSep, v.String()))
	}
	return strings.Join(parts, multiValueSep)
}

func joinAnnotationField(anns []variantmodel.VariantCallAnnotation, field func(variantmodel.VariantCallAnnotation) string) string {
	if len(anns) == 0 {
		return placeholder
	}
	parts := make([]string, len(anns))
	for i, a := range anns {
		parts[i] = field(a)
	}
	return strings.Join(parts, multiValueSep)
}

// Flush flushes any buffered output, closes the gzip stream (if any), and
// closes the underlying file. It does not remove a file left behind by an
// earlier write error.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return vstolerr.Newf(vstolerr.IOFailure, "flush tsv writer: %v", err)
	}
	if w.gz != nil {
		if err := w.gz.Close(); err != nil {
			return vstolerr.Newf(vstolerr.IOFailure, "close gzip writer: %v", err)
		}
	}
	if w.closer != nil {
		if err := w.closer.Close(); err != nil {
			return vstolerr.Newf(vstolerr.IOFailure, "close tsv file: %v", err)
		}
	}
	return nil
}

// WriteRegions writes a GenomicRangesList as a 3-column region TSV.
func WriteRegions(path string, gzipOutput bool, g *variantmodel.GenomicRangesList) error {
	var f io.Writer
	var closer io.Closer

	if path == "-" || path == "" {
		f = os.Stdout
	} else {
		file, err := os.Create(path)
		if err != nil {
			return vstolerr.Newf(vstolerr.IOFailure, "create regions tsv file: %v", err).WithDetail(path)
		}
		f = file
		closer = file
	}

	var gz *gzip.Writer
	bw := bufio.NewWriter(f)
	if gzipOutput {
		gz = gzip.NewWriter(f)
		bw = bufio.NewWriter(gz)
	}

	if _, err := bw.WriteString("chromosome\tstart\tend\n"); err != nil {
		return vstolerr.Newf(vstolerr.IOFailure, "write regions header: %v", err)
	}
	for _, r := range g.Ranges {
		line := fmt.Sprintf("%s\t%d\t%d\n", r.Chromosome, r.Start, r.End)
		if _, err := bw.WriteString(line); err != nil {
			return vstolerr.Newf(vstolerr.IOFailure, "write region row: %v", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return vstolerr.Newf(vstolerr.IOFailure, "flush regions writer: %v", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return vstolerr.Newf(vstolerr.IOFailure, "close gzip writer: %v", err)
		}
	}
	if closer != nil {
		if err := closer.Close(); err != nil {
			return vstolerr.Newf(vstolerr.IOFailure, "close regions file: %v", err)
		}
	}
	return nil
}
