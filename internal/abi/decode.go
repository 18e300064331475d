package abi

import (
	"bytes"
	"math/big"

	"attestry/internal/schema"
	"attestry/pkg/domain"
	dErrors "attestry/pkg/domain-errors"
)

// Deserialize is the strict inverse of Serialize. It fails with
// truncated_input when elements run out mid-field, discriminant_out_of_range
// when an enum discriminant does not index a known variant, and type_mismatch
// on malformed elements or trailing data. A failed decode never yields a
// partial payload.
func Deserialize(s *schema.Schema, words []Word) ([]Value, error) {
	d := &decoder{words: words}
	values, err := d.fields(s.Fields)
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.words) {
		return nil, dErrors.New(dErrors.CodeTypeMismatch, "trailing elements after payload")
	}
	return values, nil
}

type decoder struct {
	words []Word
	pos   int
}

func (d *decoder) next() (Word, error) {
	if d.pos >= len(d.words) {
		return Word{}, dErrors.New(dErrors.CodeTruncatedInput, "element sequence ended mid-field")
	}
	w := d.words[d.pos]
	d.pos++
	return w, nil
}

func (d *decoder) take(n int) ([]Word, error) {
	if d.pos+n > len(d.words) {
		return nil, dErrors.New(dErrors.CodeTruncatedInput, "element sequence ended mid-field")
	}
	ws := d.words[d.pos : d.pos+n]
	d.pos += n
	return ws, nil
}

func (d *decoder) fields(fields []schema.SchemaField) ([]Value, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	out := make([]Value, len(fields))
	for i := range fields {
		v, err := d.field(&fields[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (d *decoder) field(f *schema.SchemaField) (Value, error) {
	switch f.Type {
	case schema.TypeShortString:
		w, err := d.next()
		if err != nil {
			return Value{}, err
		}
		trimmed := bytes.TrimLeft(w[:], "\x00")
		return ShortStringValue(string(trimmed)), nil

	case schema.TypeString:
		data, err := d.variable(f)
		if err != nil {
			return Value{}, err
		}
		return StringValue(string(data)), nil

	case schema.TypeBytes:
		data, err := d.variable(f)
		if err != nil {
			return Value{}, err
		}
		return BytesValue(data), nil

	case schema.TypeUint64:
		w, err := d.next()
		if err != nil {
			return Value{}, err
		}
		v, err := w.Uint64()
		if err != nil {
			return Value{}, dErrors.Wrap(err, dErrors.CodeTypeMismatch, "field "+f.Name)
		}
		return Uint64Value(v), nil

	case schema.TypeUint128:
		v, err := d.unsigned(f, 128)
		if err != nil {
			return Value{}, err
		}
		return Uint128Value(v), nil

	case schema.TypeUint256:
		v, err := d.unsigned(f, 256)
		if err != nil {
			return Value{}, err
		}
		return Uint256Value(v), nil

	case schema.TypeInt64:
		v, err := d.signed(f, 64)
		if err != nil {
			return Value{}, err
		}
		return Int64Value(v.Int64()), nil

	case schema.TypeInt128:
		v, err := d.signed(f, 128)
		if err != nil {
			return Value{}, err
		}
		return Int128Value(v), nil

	case schema.TypeInt256:
		v, err := d.signed(f, 256)
		if err != nil {
			return Value{}, err
		}
		return Int256Value(v), nil

	case schema.TypeAddress:
		w, err := d.next()
		if err != nil {
			return Value{}, err
		}
		return AddressValue(domain.Address(w)), nil

	case schema.TypeBool:
		w, err := d.next()
		if err != nil {
			return Value{}, err
		}
		v, err := w.Uint64()
		if err != nil || v > 1 {
			return Value{}, dErrors.New(dErrors.CodeTypeMismatch, "boolean field "+f.Name+" is not 0 or 1")
		}
		return BoolValue(v == 1), nil

	case schema.TypeEnum:
		w, err := d.next()
		if err != nil {
			return Value{}, err
		}
		disc, err := w.Uint64()
		if err != nil || disc >= uint64(len(f.Variants)) {
			return Value{}, dErrors.New(dErrors.CodeDiscriminantOutOfRange,
				"enum field "+f.Name+" has discriminant outside its variant set")
		}
		armFields, err := d.fields(f.Variants[disc].Fields)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: schema.TypeEnum, Enum: &EnumValue{Variant: disc, Fields: armFields}}, nil

	case schema.TypeStruct:
		nested, err := d.fields(f.Struct.Fields)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: schema.TypeStruct, Struct: nested}, nil

	default:
		return Value{}, dErrors.New(dErrors.CodeInternal, "unhandled field type "+string(f.Type))
	}
}

// variable reads a byte-count word and the packed words that follow.
// The explicit byte count is authoritative for recovering the data.
func (d *decoder) variable(f *schema.SchemaField) ([]byte, error) {
	w, err := d.next()
	if err != nil {
		return nil, err
	}
	n, err := w.Uint64()
	if err != nil {
		return nil, dErrors.New(dErrors.CodeTypeMismatch, "length element of field "+f.Name+" is not numeric")
	}
	if n > uint64(len(d.words)-d.pos)*WordSize {
		return nil, dErrors.New(dErrors.CodeTruncatedInput, "declared length of field "+f.Name+" exceeds remaining elements")
	}
	packed, err := d.take(int((n + WordSize - 1) / WordSize))
	if err != nil {
		return nil, err
	}
	return UnpackBytes(packed, int(n))
}

func (d *decoder) unsigned(f *schema.SchemaField, bits int) (*big.Int, error) {
	w, err := d.next()
	if err != nil {
		return nil, err
	}
	v := w.Big()
	if v.BitLen() > bits {
		return nil, dErrors.New(dErrors.CodeTypeMismatch, "field "+f.Name+" exceeds its bit width")
	}
	return v, nil
}

func (d *decoder) signed(f *schema.SchemaField, bits uint) (*big.Int, error) {
	w, err := d.next()
	if err != nil {
		return nil, err
	}
	v := w.SignedBig()
	bound := new(big.Int).Lsh(big.NewInt(1), bits-1)
	if v.Cmp(new(big.Int).Neg(bound)) < 0 || v.Cmp(bound) >= 0 {
		return nil, dErrors.New(dErrors.CodeTypeMismatch, "field "+f.Name+" exceeds its bit width")
	}
	return v, nil
}
