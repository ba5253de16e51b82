package tsv

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pirl-unc/vstol-go/internal/variantmodel"
	"github.com/pirl-unc/vstol-go/internal/vstolerr"
)

// Reader reads the canonical variant TSV: mandatory columns in any order,
// optional columns recognized by name, unrecognized columns ignored. Gzip
// is detected by magic bytes, not file extension.
type Reader struct {
	r          *bufio.Reader
	closer     io.Closer
	header     []string
	colIndex   map[string]int
	lineNumber int
}

// NewReader opens path (or stdin for "-") and parses its header line.
func NewReader(path string) (*Reader, error) {
	var f io.Reader
	var closer io.Closer

	if path == "-" {
		f = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, vstolerr.Newf(vstolerr.IOFailure, "open tsv file: %v", err).WithDetail(path)
		}
		f = file
		closer = file
	}

	br := bufio.NewReader(f)
	peek, err := br.Peek(2)
	if err == nil && len(peek) == 2 && peek[0] == 0x1f && peek[1] == 0x8b {
		gz, gzErr := gzip.NewReader(br)
		if gzErr != nil {
			if closer != nil {
				closer.Close()
			}
			return nil, vstolerr.Newf(vstolerr.IOFailure, "open gzip stream: %v", gzErr).WithDetail(path)
		}
		br = bufio.NewReader(gz)
	}

	rd := &Reader{r: br, closer: closer}
	if err := rd.parseHeader(); err != nil {
		rd.Close()
		return nil, err
	}
	return rd, nil
}

func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

func (r *Reader) parseHeader() error {
	line, err := r.readLine()
	if err != nil {
		return vstolerr.Newf(vstolerr.IOFailure, "read tsv header: %v", err)
	}
	r.header = strings.Split(line, "\t")
	r.colIndex = make(map[string]int, len(r.header))
	for i, name := range r.header {
		r.colIndex[name] = i
	}

	for _, col := range mandatoryColumns {
		if _, ok := r.colIndex[col]; !ok {
			return vstolerr.Newf(vstolerr.MalformedInput, "missing mandatory column %q", col).WithDetail("header")
		}
	}
	return nil
}

func (r *Reader) readLine() (string, error) {
	line, err := r.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF && line == "" {
		return "", io.EOF
	}
	r.lineNumber++
	return strings.TrimRight(line, "\r\n"), nil
}

// col looks up a raw cell by column name, returning "" if the column was
// absent from the header or the cell is the empty/placeholder value.
func (r *Reader) col(row []string, name string) string {
	i, ok := r.colIndex[name]
	if !ok || i >= len(row) {
		return ""
	}
	if isEmptyCell(row[i]) {
		return ""
	}
	return row[i]
}

// ReadAll consumes every remaining row, grouping VariantCall records into
// Variants by variant_id in order of first appearance, and returns the
// assembled VariantsList. A single malformed row aborts the whole read.
func (r *Reader) ReadAll() (*variantmodel.VariantsList, error) {
	byVariant := make(map[string][]*variantmodel.VariantCall)
	var order []string

	for {
		line, err := r.readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, vstolerr.Newf(vstolerr.IOFailure, "read tsv row: %v", err).WithDetail(strconv.Itoa(r.lineNumber))
		}
		if line == "" {
			continue
		}

		row := strings.Split(line, "\t")
		call, variantID, err := r.parseRow(row)
		if err != nil {
			return nil, err
		}

		if _, ok := byVariant[variantID]; !ok {
			order = append(order, variantID)
		}
		byVariant[variantID] = append(byVariant[variantID], call)
	}

	out := variantmodel.NewVariantsList()
	for _, id := range order {
		v, err := variantmodel.NewVariant(id, byVariant[id])
		if err != nil {
			return nil, err
		}
		out.Add(v)
	}
	return out, nil
}

func (r *Reader) parseRow(row []string) (*variantmodel.VariantCall, string, error) {
	lineDetail := strconv.Itoa(r.lineNumber)

	variantID := r.col(row, "variant_id")
	callID := r.col(row, "variant_call_id")
	sampleID := r.col(row, "sample_id")
	chrom1 := r.col(row, "chromosome_1")
	chrom2 := r.col(row, "chromosome_2")
	ref := r.col(row, "reference_allele")
	alt := r.col(row, "alternate_allele")
	vtypeRaw := r.col(row, "variant_type")

	pos1, err := parseInt(r.col(row, "position_1"))
	if err != nil {
		return nil, "", vstolerr.Newf(vstolerr.MalformedInput, "unparseable position_1: %v", err).WithDetail(lineDetail)
	}
	pos2, err := parseInt(r.col(row, "position_2"))
	if err != nil {
		return nil, "", vstolerr.Newf(vstolerr.MalformedInput, "unparseable position_2: %v", err).WithDetail(lineDetail)
	}

	call, err := variantmodel.NewVariantCall(callID, sampleID, chrom1, pos1, chrom2, pos2, variantmodel.VariantType(vtypeRaw), ref, alt)
	if err != nil {
		return nil, "", err
	}

	call.VariantSubtype = r.col(row, "variant_subtype")
	if v := r.col(row, "variant_size"); v != "" {
		n, err := parseInt(v)
		if err != nil {
			return nil, "", vstolerr.Newf(vstolerr.MalformedInput, "unparseable variant_size: %v", err).WithDetail(lineDetail)
		}
		call.VariantSize = n
	}

	if v := r.col(row, "reference_allele_read_count"); v != "" {
		call.ReferenceAlleleReadCount, err = parseInt(v)
		if err != nil {
			return nil, "", vstolerr.Newf(vstolerr.MalformedInput, "unparseable reference_allele_read_count: %v", err).WithDetail(lineDetail)
		}
	}
	if v := r.col(row, "alternate_allele_read_count"); v != "" {
		call.AlternateAlleleReadCount, err = parseInt(v)
		if err != nil {
			return nil, "", vstolerr.Newf(vstolerr.MalformedInput, "unparseable alternate_allele_read_count: %v", err).WithDetail(lineDetail)
		}
	}
	if v := r.col(row, "total_read_count"); v != "" {
		call.TotalReadCount, err = parseInt(v)
		if err != nil {
			return nil, "", vstolerr.Newf(vstolerr.MalformedInput, "unparseable total_read_count: %v", err).WithDetail(lineDetail)
		}
	}
	if v := r.col(row, "alternate_allele_fraction"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, "", vstolerr.Newf(vstolerr.MalformedInput, "unparseable alternate_allele_fraction: %v", err).WithDetail(lineDetail)
		}
		call.AlternateAlleleFraction = f
	}
	if v := r.col(row, "quality_score"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, "", vstolerr.Newf(vstolerr.MalformedInput, "unparseable quality_score: %v", err).WithDetail(lineDetail)
		}
		call.QualityScore = f
	}

	call.AlternateAlleleReadIDs = splitMulti(r.col(row, "alternate_allele_read_ids"))
	call.VariantSequences = splitMulti(r.col(row, "variant_sequences"))
	call.Filter = r.col(row, "filter")

	if v := r.col(row, "precise"); v != "" {
		b := v == "yes"
		call.Precise = &b
	}

	call.SourceID = r.col(row, "source_id")
	call.CloneID = r.col(row, "clone_id")
	call.PhaseBlockID = r.col(row, "phase_block_id")
	call.NucleicAcid = r.col(row, "nucleic_acid")
	call.SequencingPlatform = r.col(row, "sequencing_platform")
	call.VariantCallingMethod = r.col(row, "variant_calling_method")

	if v := r.col(row, "average_alignment_score_window"); v != "" {
		call.AverageAlignmentScoreWindow, err = parseInt(v)
		if err != nil {
			return nil, "", vstolerr.Newf(vstolerr.MalformedInput, "unparseable average_alignment_score_window: %v", err).WithDetail(lineDetail)
		}
	}
	if v := r.col(row, "position_1_average_alignment_score"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, "", vstolerr.Newf(vstolerr.MalformedInput, "unparseable position_1_average_alignment_score: %v", err).WithDetail(lineDetail)
		}
		call.Position1AverageAlignmentScore = f
	}
	if v := r.col(row, "position_2_average_alignment_score"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, "", vstolerr.Newf(vstolerr.MalformedInput, "unparseable position_2_average_alignment_score: %v", err).WithDetail(lineDetail)
		}
		call.Position2AverageAlignmentScore = f
	}

	if v := r.col(row, "attributes"); v != "" {
		attrs, err := parseAttributes(call.VariantCallingMethod, v)
		if err != nil {
			return nil, "", vstolerr.Newf(vstolerr.MalformedInput, "unparseable attributes: %v", err).WithDetail(lineDetail)
		}
		call.Attributes = attrs
	}

	for _, tag := range splitMulti(r.col(row, "tags")) {
		call.AddTag(tag)
	}

	call.Position1Annotations = parseAnnotations(
		splitMulti(r.col(row, "position_1_annotation_sources")),
		splitMulti(r.col(row, "position_1_annotation_gene_ids")),
		splitMulti(r.col(row, "position_1_annotation_gene_names")),
		splitMulti(r.col(row, "position_1_annotation_region_types")),
	)
	call.Position2Annotations = parseAnnotations(
		splitMulti(r.col(row, "position_2_annotation_sources")),
		splitMulti(r.col(row, "position_2_annotation_gene_ids")),
		splitMulti(r.col(row, "position_2_annotation_gene_names")),
		splitMulti(r.col(row, "position_2_annotation_region_types")),
	)

	return call, variantID, nil
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func splitMulti(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, multiValueSep)
}

func parseAttributes(method, joined string) (variantmodel.Attributes, error) {
	attrs := variantmodel.NewAttributes()
	for _, pair := range strings.Split(joined, multiValueSep) {
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, kvSep, 2)
		if len(kv) != 2 {
			return attrs, vstolerr.Newf(vstolerr.MalformedInput, "malformed attribute pair %q", pair)
		}
		key, raw := kv[0], kv[1]
		kind := resolveAttributeKind(method, key, raw)
		val, err := parseAttributeValue(kind, raw)
		if err != nil {
			return attrs, err
		}
		attrs.Set(key, val)
	}
	return attrs, nil
}

func parseAnnotations(sources, geneIDs, geneNames, regionTypes []string) []variantmodel.VariantCallAnnotation {
	n := len(sources)
	if len(geneIDs) > n {
		n = len(geneIDs)
	}
	if len(geneNames) > n {
		n = len(geneNames)
	}
	if len(regionTypes) > n {
		n = len(regionTypes)
	}
	if n == 0 {
		return nil
	}
	at := func(s []string, i int) string {
		if i < len(s) {
			return s[i]
		}
		return ""
	}
	out := make([]variantmodel.VariantCallAnnotation, n)
	for i := 0; i < n; i++ {
		out[i] = variantmodel.VariantCallAnnotation{
			Source:     at(sources, i),
			GeneID:     at(geneIDs, i),
			GeneName:   at(geneNames, i),
			RegionType: at(regionTypes, i),
		}
	}
	return out
}

// ReadRegions parses a 3-column region TSV (chromosome, start, end),
// applying the same gzip-by-magic-bytes detection as the variant reader.
func ReadRegions(path string) (*variantmodel.GenomicRangesList, error) {
	var f io.Reader
	var closer io.Closer

	if path == "-" {
		f = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, vstolerr.Newf(vstolerr.IOFailure, "open regions tsv file: %v", err).WithDetail(path)
		}
		f = file
		closer = file
		defer closer.Close()
	}

	br := bufio.NewReader(f)
	peek, err := br.Peek(2)
	if err == nil && len(peek) == 2 && peek[0] == 0x1f && peek[1] == 0x8b {
		gz, gzErr := gzip.NewReader(br)
		if gzErr != nil {
			return nil, vstolerr.Newf(vstolerr.IOFailure, "open gzip stream: %v", gzErr).WithDetail(path)
		}
		br = bufio.NewReader(gz)
	}

	out := variantmodel.NewGenomicRangesList()
	lineNumber := 0
	first := true
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, vstolerr.Newf(vstolerr.IOFailure, "read regions tsv: %v", err)
		}
		if err == io.EOF && line == "" {
			break
		}
		lineNumber++
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			cols := strings.Split(line, "\t")
			if !(first && len(cols) >= 1 && cols[0] == "chromosome") {
				if len(cols) < 3 {
					return nil, vstolerr.Newf(vstolerr.MalformedInput, "region row has fewer than 3 columns").WithDetail(strconv.Itoa(lineNumber))
				}
				start, sErr := parseInt(cols[1])
				end, eErr := parseInt(cols[2])
				if sErr != nil || eErr != nil {
					return nil, vstolerr.Newf(vstolerr.MalformedInput, "unparseable region bounds").WithDetail(strconv.Itoa(lineNumber))
				}
				rng, err := variantmodel.NewGenomicRange(cols[0], start, end)
				if err != nil {
					return nil, err
				}
				out.Add(rng)
			}
		}
		first = false
		if err == io.EOF {
			break
		}
	}
	return out, nil
}
