package variantmodel

import "sort"

// VariantsList is an ordered sequence of Variant records plus an ID->index
// map for O(1) lookup.
type VariantsList struct {
	Variants []*Variant
	index    map[string]int
}

// NewVariantsList builds an empty, ready-to-use VariantsList.
func NewVariantsList() *VariantsList {
	return &VariantsList{index: make(map[string]int)}
}

// Add appends a Variant and records its position in the lookup index.
func (vl *VariantsList) Add(v *Variant) {
	if vl.index == nil {
		vl.index = make(map[string]int)
	}
	vl.index[v.ID] = len(vl.Variants)
	vl.Variants = append(vl.Variants, v)
}

// Size reports the number of variants in the list.
func (vl *VariantsList) Size() int { return len(vl.Variants) }

// Get returns the Variant with the given ID, or nil if absent.
func (vl *VariantsList) Get(id string) *Variant {
	i, ok := vl.index[id]
	if !ok {
		return nil
	}
	return vl.Variants[i]
}

// VariantCallIDs returns the IDs of every call across every variant.
func (vl *VariantsList) VariantCallIDs() []string {
	var ids []string
	for _, v := range vl.Variants {
		for _, c := range v.VariantCalls {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// VariantCalls returns every call across every variant, in variant then
// within-variant order.
func (vl *VariantsList) VariantCalls() []*VariantCall {
	var calls []*VariantCall
	for _, v := range vl.Variants {
		calls = append(calls, v.VariantCalls...)
	}
	return calls
}

// SortByLocus sorts the variants in place by their smallest member's locus
// and rebuilds the ID->index map.
func (vl *VariantsList) SortByLocus() {
	sort.SliceStable(vl.Variants, func(i, j int) bool {
		return LessVariantByLocus(vl.Variants[i], vl.Variants[j])
	})
	vl.reindex()
}

func (vl *VariantsList) reindex() {
	vl.index = make(map[string]int, len(vl.Variants))
	for i, v := range vl.Variants {
		vl.index[v.ID] = i
	}
}
