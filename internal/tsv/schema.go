package tsv

import (
	"strconv"

	"github.com/pirl-unc/vstol-go/internal/variantmodel"
)

// attributeSchema maps a variant_calling_method name to its known
// attribute-name -> AttributeKind table. Entries are added as callers are
// onboarded; an unrecognized method (or an attribute absent from its
// table) falls back to sniffAttributeKind.
var attributeSchema = map[string]map[string]variantmodel.AttributeKind{}

// resolveAttributeKind looks up method's schema entry for key, falling
// back to type-sniffing the raw value when no schema entry exists.
func resolveAttributeKind(method, key, rawValue string) variantmodel.AttributeKind {
	if schema, ok := attributeSchema[method]; ok {
		if kind, ok := schema[key]; ok {
			return kind
		}
	}
	return sniffAttributeKind(rawValue)
}

// sniffAttributeKind classifies a raw attribute value by trying int, then
// float, then yes/no, defaulting to string.
func sniffAttributeKind(raw string) variantmodel.AttributeKind {
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return variantmodel.AttrInt
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		return variantmodel.AttrFloat
	}
	if raw == "yes" || raw == "no" {
		return variantmodel.AttrBool
	}
	return variantmodel.AttrString
}

func parseAttributeValue(kind variantmodel.AttributeKind, raw string) (variantmodel.AttributeValue, error) {
	switch kind {
	case variantmodel.AttrInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return variantmodel.AttributeValue{}, err
		}
		return variantmodel.NewIntAttribute(n), nil
	case variantmodel.AttrFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return variantmodel.AttributeValue{}, err
		}
		return variantmodel.NewFloatAttribute(f), nil
	case variantmodel.AttrBool:
		return variantmodel.NewBoolAttribute(raw == "yes"), nil
	default:
		return variantmodel.NewStringAttribute(raw), nil
	}
}
