package schema

import (
	"encoding/json"

	dErrors "attestry/pkg/domain-errors"
)

// Document is the JSON projection of a schema. The same shape is used both
// ways: ToText renders it, and ParseDocument accepts it for registration.
type Document struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Version     uint32          `json:"version"`
	Fields      []FieldDocument `json:"fields"`
}

// FieldDocument mirrors SchemaField. "variants" appears only for Enum fields
// and "struct" only for Struct fields, recursively.
type FieldDocument struct {
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Required    bool              `json:"required"`
	Size        uint32            `json:"size"`
	Description string            `json:"description"`
	Variants    []VariantDocument `json:"variants,omitempty"`
	Struct      *StructDocument   `json:"struct,omitempty"`
}

type VariantDocument struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Fields      []FieldDocument `json:"fields"`
}

type StructDocument struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Fields      []FieldDocument `json:"fields"`
}

// ToDocument projects the schema into its JSON document form.
func (s *Schema) ToDocument() Document {
	return Document{
		Name:        s.Name,
		Description: s.Description,
		Version:     s.Version,
		Fields:      fieldsToDocuments(s.Fields),
	}
}

// ToText renders the schema as an indented JSON document, nested variants and
// structs inline with no depth limit beyond the schema's own recursion.
func (s *Schema) ToText() (string, error) {
	out, err := json.MarshalIndent(s.ToDocument(), "", "  ")
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to render schema document")
	}
	return string(out), nil
}

// ParseDocument decodes and validates a schema document. The version tag is
// preserved exactly; field order follows document order.
func ParseDocument(data []byte) (*Schema, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed schema document")
	}
	return FromDocument(doc)
}

// FromDocument converts a document into a validated schema.
func FromDocument(doc Document) (*Schema, error) {
	s := &Schema{
		Name:        doc.Name,
		Description: doc.Description,
		Version:     doc.Version,
		Fields:      documentsToFields(doc.Fields),
	}
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func fieldsToDocuments(fields []SchemaField) []FieldDocument {
	out := make([]FieldDocument, len(fields))
	for i, f := range fields {
		fd := FieldDocument{
			Name:        f.Name,
			Type:        string(f.Type),
			Required:    f.Required,
			Size:        f.SizeBytes,
			Description: f.Description,
		}
		for _, v := range f.Variants {
			fd.Variants = append(fd.Variants, VariantDocument{
				Name:        v.Name,
				Description: v.Description,
				Fields:      fieldsToDocuments(v.Fields),
			})
		}
		if f.Struct != nil {
			fd.Struct = &StructDocument{
				Name:        f.Struct.Name,
				Description: f.Struct.Description,
				Fields:      fieldsToDocuments(f.Struct.Fields),
			}
		}
		out[i] = fd
	}
	return out
}

func documentsToFields(docs []FieldDocument) []SchemaField {
	out := make([]SchemaField, len(docs))
	for i, fd := range docs {
		f := SchemaField{
			Name:        fd.Name,
			Type:        FieldType(fd.Type),
			Required:    fd.Required,
			Description: fd.Description,
		}
		for _, v := range fd.Variants {
			f.Variants = append(f.Variants, EnumVariant{
				Name:        v.Name,
				Description: v.Description,
				Fields:      documentsToFields(v.Fields),
			})
		}
		if fd.Struct != nil {
			f.Struct = &StructDefinition{
				Name:        fd.Struct.Name,
				Description: fd.Struct.Description,
				Fields:      documentsToFields(fd.Struct.Fields),
			}
		}
		out[i] = f
	}
	return out
}
