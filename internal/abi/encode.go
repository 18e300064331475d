package abi

import (
	"strings"

	"attestry/internal/schema"
	dErrors "attestry/pkg/domain-errors"
)

// maxShortString is the byte capacity of a short string: one word minus a
// byte, so the numeric encoding can never collide with a longer value.
const maxShortString = WordSize - 1

// Serialize encodes the payload against the schema in declaration order.
// Fixed-width fields produce one word each. Variable-length text and byte
// fields produce a byte-count word followed by packed data words. Struct
// fields encode their nested fields inline; Enum fields encode the
// discriminant word followed by the chosen arm's fields only.
func Serialize(s *schema.Schema, payload []Value) ([]Word, error) {
	return appendFields(nil, s.Fields, payload)
}

func appendFields(out []Word, fields []schema.SchemaField, values []Value) ([]Word, error) {
	if len(values) != len(fields) {
		return nil, dErrors.New(dErrors.CodeTypeMismatch, "payload has wrong field count")
	}
	var err error
	for i := range fields {
		out, err = appendField(out, &fields[i], &values[i])
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func appendField(out []Word, f *schema.SchemaField, v *Value) ([]Word, error) {
	if v.Type != f.Type {
		return nil, dErrors.New(dErrors.CodeTypeMismatch,
			"field "+f.Name+" expects "+string(f.Type)+", got "+string(v.Type))
	}

	switch f.Type {
	case schema.TypeShortString:
		if len(v.Str) > maxShortString {
			return nil, dErrors.New(dErrors.CodeTypeMismatch, "short string too long in field "+f.Name)
		}
		if strings.ContainsRune(v.Str, 0) {
			return nil, dErrors.New(dErrors.CodeTypeMismatch, "short string contains NUL in field "+f.Name)
		}
		var w Word
		copy(w[WordSize-len(v.Str):], v.Str)
		return append(out, w), nil

	case schema.TypeString:
		return appendVariable(out, []byte(v.Str)), nil

	case schema.TypeBytes:
		return appendVariable(out, v.Bytes), nil

	case schema.TypeUint64:
		return append(out, WordFromUint64(v.Uint)), nil

	case schema.TypeUint128:
		w, err := WordFromUnsigned(v.Big, 128)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeTypeMismatch, "field "+f.Name)
		}
		return append(out, w), nil

	case schema.TypeUint256:
		w, err := WordFromUnsigned(v.Big, 256)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeTypeMismatch, "field "+f.Name)
		}
		return append(out, w), nil

	case schema.TypeInt64:
		return append(out, WordFromInt64(v.Int)), nil

	case schema.TypeInt128:
		w, err := WordFromSigned(v.Big, 128)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeTypeMismatch, "field "+f.Name)
		}
		return append(out, w), nil

	case schema.TypeInt256:
		w, err := WordFromSigned(v.Big, 256)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeTypeMismatch, "field "+f.Name)
		}
		return append(out, w), nil

	case schema.TypeAddress:
		return append(out, Word(v.Addr)), nil

	case schema.TypeBool:
		return append(out, WordFromBool(v.Bool)), nil

	case schema.TypeEnum:
		if v.Enum == nil {
			return nil, dErrors.New(dErrors.CodeTypeMismatch, "enum field "+f.Name+" has no chosen arm")
		}
		if v.Enum.Variant >= uint64(len(f.Variants)) {
			return nil, dErrors.New(dErrors.CodeDiscriminantOutOfRange,
				"enum field "+f.Name+" selects an unknown variant")
		}
		out = append(out, WordFromUint64(v.Enum.Variant))
		return appendFields(out, f.Variants[v.Enum.Variant].Fields, v.Enum.Fields)

	case schema.TypeStruct:
		// Shape is statically known, so nested fields encode inline
		// without a length prefix.
		return appendFields(out, f.Struct.Fields, v.Struct)

	default:
		return nil, dErrors.New(dErrors.CodeInternal, "unhandled field type "+string(f.Type))
	}
}

// appendVariable emits the byte-count word followed by packed data words.
func appendVariable(out []Word, data []byte) []Word {
	out = append(out, WordFromUint64(uint64(len(data))))
	return append(out, PackBytes(data)...)
}
