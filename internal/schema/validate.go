package schema

import (
	dErrors "attestry/pkg/domain-errors"
)

// Validate checks the schema shape. It fails with:
//   - empty_name when the schema name or any field/variant name is empty,
//   - invalid_variant_set when an Enum field lacks variants, a Struct field
//     lacks a definition, or either is set on a non-matching type,
//   - duplicate_field_name when two sibling fields share a name.
//
// Validation descends into every variant and struct field list.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return dErrors.New(dErrors.CodeEmptyName, "schema name cannot be empty")
	}
	return validateFields(s.Fields)
}

func validateFields(fields []SchemaField) error {
	seen := make(map[string]struct{}, len(fields))
	for i := range fields {
		f := &fields[i]
		if f.Name == "" {
			return dErrors.New(dErrors.CodeEmptyName, "field name cannot be empty")
		}
		if _, dup := seen[f.Name]; dup {
			return dErrors.New(dErrors.CodeDuplicateFieldName, "duplicate field name: "+f.Name)
		}
		seen[f.Name] = struct{}{}

		if !f.Type.Valid() {
			return dErrors.New(dErrors.CodeValidation, "unknown field type for "+f.Name)
		}
		if err := validateVariantSet(f); err != nil {
			return err
		}
		for v := range f.Variants {
			if f.Variants[v].Name == "" {
				return dErrors.New(dErrors.CodeEmptyName, "variant name cannot be empty in field "+f.Name)
			}
			if err := validateFields(f.Variants[v].Fields); err != nil {
				return err
			}
		}
		if f.Struct != nil {
			if err := validateFields(f.Struct.Fields); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateVariantSet enforces the pairing invariant: Variants is present iff
// the field is an Enum, Struct iff the field is a Struct, never both.
func validateVariantSet(f *SchemaField) error {
	switch f.Type {
	case TypeEnum:
		if len(f.Variants) == 0 {
			return dErrors.New(dErrors.CodeInvalidVariantSet, "enum field "+f.Name+" has no variants")
		}
		if f.Struct != nil {
			return dErrors.New(dErrors.CodeInvalidVariantSet, "enum field "+f.Name+" carries a struct definition")
		}
	case TypeStruct:
		if f.Struct == nil {
			return dErrors.New(dErrors.CodeInvalidVariantSet, "struct field "+f.Name+" has no definition")
		}
		if len(f.Variants) > 0 {
			return dErrors.New(dErrors.CodeInvalidVariantSet, "struct field "+f.Name+" carries variants")
		}
	default:
		if len(f.Variants) > 0 || f.Struct != nil {
			return dErrors.New(dErrors.CodeInvalidVariantSet, "field "+f.Name+" carries nested definitions for a leaf type")
		}
	}
	return nil
}
