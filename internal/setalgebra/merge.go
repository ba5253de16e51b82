package setalgebra

import (
	"github.com/pirl-unc/vstol-go/internal/matchoracle"
	"github.com/pirl-unc/vstol-go/internal/variantmodel"
	"go.uber.org/zap"
)

// Merge computes the connected components of the match relation across all
// inputs: every input call appears in exactly one output variant, no call
// is duplicated.
func Merge(lists []*variantmodel.VariantsList, params matchoracle.Params, workers int, log *zap.Logger) (*variantmodel.VariantsList, error) {
	if err := requireNonEmpty(lists); err != nil {
		return nil, err
	}

	calls := flattenSources(lists)
	components := computeComponents(calls, params, workers, log)

	out := variantmodel.NewVariantsList()
	for i, c := range components {
		v, err := toVariant(c, i)
		if err != nil {
			return nil, err
		}
		out.Add(v)
	}
	return out, nil
}

// Intersect runs merge and retains only components that touch every input
// list at least once.
func Intersect(lists []*variantmodel.VariantsList, params matchoracle.Params, workers int, log *zap.Logger) (*variantmodel.VariantsList, error) {
	if err := requireNonEmpty(lists); err != nil {
		return nil, err
	}

	calls := flattenSources(lists)
	components := computeComponents(calls, params, workers, log)

	out := variantmodel.NewVariantsList()
	id := 0
	for _, c := range components {
		if !c.touchesAllSources(len(lists)) {
			continue
		}
		v, err := toVariant(c, id)
		if err != nil {
			return nil, err
		}
		out.Add(v)
		id++
	}
	return out, nil
}

// CompareResult is the three-way partition produced by Compare.
type CompareResult struct {
	Shared *variantmodel.VariantsList
	AOnly  *variantmodel.VariantsList
	BOnly  *variantmodel.VariantsList
}

// Compare partitions A and B into (shared, a_only, b_only): shared holds
// components of the merge containing calls from both inputs; a_only/b_only
// retain calls that participate only in single-source components, regrouped
// under their original Variant IDs.
func Compare(a, b *variantmodel.VariantsList, params matchoracle.Params, workers int, log *zap.Logger) (*CompareResult, error) {
	lists := []*variantmodel.VariantsList{a, b}
	calls := flattenSources(lists)
	components := computeComponents(calls, params, workers, log)

	shared := variantmodel.NewVariantsList()
	sharedID := 0

	aOnlyByVariant := make(map[string][]*variantmodel.VariantCall)
	var aOnlyOrder []string
	bOnlyByVariant := make(map[string][]*variantmodel.VariantCall)
	var bOnlyOrder []string

	for _, c := range components {
		if c.touchesAllSources(2) {
			v, err := toVariant(c, sharedID)
			if err != nil {
				return nil, err
			}
			shared.Add(v)
			sharedID++
			continue
		}
		for _, m := range c.members {
			if m.sourceIdx == 0 {
				if _, ok := aOnlyByVariant[m.originVariantID]; !ok {
					aOnlyOrder = append(aOnlyOrder, m.originVariantID)
				}
				aOnlyByVariant[m.originVariantID] = append(aOnlyByVariant[m.originVariantID], m.call)
			} else {
				if _, ok := bOnlyByVariant[m.originVariantID]; !ok {
					bOnlyOrder = append(bOnlyOrder, m.originVariantID)
				}
				bOnlyByVariant[m.originVariantID] = append(bOnlyByVariant[m.originVariantID], m.call)
			}
		}
	}

	aOnly, err := regroup(aOnlyOrder, aOnlyByVariant)
	if err != nil {
		return nil, err
	}
	bOnly, err := regroup(bOnlyOrder, bOnlyByVariant)
	if err != nil {
		return nil, err
	}

	aOnly.SortByLocus()
	bOnly.SortByLocus()

	return &CompareResult{Shared: shared, AOnly: aOnly, BOnly: bOnly}, nil
}

func regroup(order []string, byVariant map[string][]*variantmodel.VariantCall) (*variantmodel.VariantsList, error) {
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
