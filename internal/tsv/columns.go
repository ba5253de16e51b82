// Package tsv implements the canonical variant TSV and region TSV boundary:
// gzip-transparent reading, header-name column resolution tolerant of
// reordering, ';'-joined multi-valued fields, and 'key=value' attribute
// serialization with types recovered via a per-calling-method schema table.
package tsv

// mandatoryColumns must be present in every canonical variant TSV header,
// in any order.
var mandatoryColumns = []string{
	"variant_id", "variant_call_id", "sample_id",
	"chromosome_1", "position_1", "chromosome_2", "position_2",
	"variant_type", "reference_allele", "alternate_allele",
}

// optionalColumns are recognized if present; any other header name is
// ignored. Order here is also the order the writer emits them in.
var optionalColumns = []string{
	"variant_subtype",
	"variant_size",
	"reference_allele_read_count",
	"alternate_allele_read_count",
	"total_read_count",
	"alternate_allele_fraction",
	"alternate_allele_read_ids",
	"variant_sequences",
	"quality_score",
	"filter",
	"precise",
	"source_id",
	"clone_id",
	"phase_block_id",
	"nucleic_acid",
	"sequencing_platform",
	"variant_calling_method",
	"average_alignment_score_window",
	"position_1_average_alignment_score",
	"position_2_average_alignment_score",
	"attributes",
	"tags",
	"position_1_annotation_sources",
	"position_1_annotation_gene_ids",
	"position_1_annotation_gene_names",
	"position_1_annotation_region_types",
	"position_2_annotation_sources",
	"position_2_annotation_gene_ids",
	"position_2_annotation_gene_names",
	"position_2_annotation_region_types",
}

// allColumns is the writer's fixed emission order.
var allColumns = append(append([]string{}, mandatoryColumns...), optionalColumns...)

const (
	multiValueSep = ";"
	kvSep         = "="
	placeholder   = "-"
)

func isEmptyCell(s string) bool {
	return s == "" || s == placeholder
}
