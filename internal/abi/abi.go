package abi

import "attestry/internal/schema"

// ABIField is the flattened description of one top-level schema field.
// SizeBytes is 0 for variable-width fields, including Enum and Struct whose
// nested shape is only available on the schema itself.
type ABIField struct {
	Name      string `json:"name"`
	TypeName  string `json:"type"`
	SizeBytes uint32 `json:"size"`
}

// StructABI is a lossy, lookup-oriented projection of a schema: top-level
// fields with their sizes plus the total fixed-width size. It does not
// round-trip back to a schema.
type StructABI struct {
	Name      string     `json:"name"`
	Fields    []ABIField `json:"fields"`
	TotalSize uint32     `json:"total_size"`
}

// ToABI flattens the schema's top-level fields. TotalSize is recomputed from
// the current field list on every call, never cached.
func ToABI(s *schema.Schema) StructABI {
	out := StructABI{Name: s.Name, Fields: make([]ABIField, len(s.Fields))}
	for i, f := range s.Fields {
		size := f.Type.SizeBytes()
		out.Fields[i] = ABIField{Name: f.Name, TypeName: string(f.Type), SizeBytes: size}
		out.TotalSize += size
	}
	return out
}

// GetField returns the first field with the given name. The schema model
// rejects duplicate names, so first-match is total on valid schemas.
func (a StructABI) GetField(name string) (ABIField, bool) {
	for _, f := range a.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return ABIField{}, false
}

// FieldCount returns the number of top-level fields.
func (a StructABI) FieldCount() int {
	return len(a.Fields)
}
