// Package schema defines the typed shape description for attestation payloads:
// a closed field type system plus named, versioned, recursively validated
// schemas. Field order is serialization order and is never reordered.
package schema

// SchemaField describes one field of a payload shape.
// Variants is set exactly when Type is Enum; Struct exactly when Type is Struct.
type SchemaField struct {
	Name        string
	Type        FieldType
	Required    bool
	SizeBytes   uint32
	Description string
	Variants    []EnumVariant
	Struct      *StructDefinition
}

// EnumVariant is one tagged-union arm. Fields is the arm's payload shape;
// an empty list makes it a unit variant.
type EnumVariant struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// StructDefinition is a nested record shape.
type StructDefinition struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// Schema is a named, versioned payload shape. Version is an opaque
// monotonically non-decreasing tag; the model preserves it exactly and does
// not interpret it.
type Schema struct {
	Name        string
	Description string
	Version     uint32
	Fields      []SchemaField
}

// New builds and validates a schema. Construction errors are fatal to
// registration and surface to the caller.
func New(name, description string, version uint32, fields ...SchemaField) (*Schema, error) {
	s := &Schema{Name: name, Description: description, Version: version, Fields: fields}
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Normalize fills in SizeBytes from the field type size table, recursively.
// Sizes are derived, never trusted from input documents.
func (s *Schema) Normalize() {
	normalizeFields(s.Fields)
}

func normalizeFields(fields []SchemaField) {
	for i := range fields {
		fields[i].SizeBytes = fields[i].Type.SizeBytes()
		for v := range fields[i].Variants {
			normalizeFields(fields[i].Variants[v].Fields)
		}
		if fields[i].Struct != nil {
			normalizeFields(fields[i].Struct.Fields)
		}
	}
}

// Field builders keep schema literals compact in wiring and tests.

// Field returns a leaf field of the given type with its derived size.
func Field(name string, t FieldType) SchemaField {
	return SchemaField{Name: name, Type: t, Required: true, SizeBytes: t.SizeBytes()}
}

// OptionalField returns a non-required leaf field.
func OptionalField(name string, t FieldType) SchemaField {
	f := Field(name, t)
	f.Required = false
	return f
}

// EnumField returns a tagged-union field with the given arms.
func EnumField(name string, variants ...EnumVariant) SchemaField {
	return SchemaField{Name: name, Type: TypeEnum, Required: true, Variants: variants}
}

// StructField returns a nested record field.
func StructField(name string, def StructDefinition) SchemaField {
	return SchemaField{Name: name, Type: TypeStruct, Required: true, Struct: &def}
}

// Variant returns one enum arm.
func Variant(name string, fields ...SchemaField) EnumVariant {
	return EnumVariant{Name: name, Fields: fields}
}
