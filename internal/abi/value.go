package abi

import (
	"math/big"

	"attestry/internal/schema"
	"attestry/pkg/domain"
)

// Value is one typed payload field. Type selects which member is meaningful;
// the serializer rejects values whose Type does not match the schema field.
type Value struct {
	Type   schema.FieldType
	Str    string
	Uint   uint64
	Int    int64
	Big    *big.Int
	Addr   domain.Address
	Bool   bool
	Bytes  []byte
	Enum   *EnumValue
	Struct []Value
}

// EnumValue is a chosen tagged-union arm: the zero-based discriminant and the
// arm's field values. Only the chosen arm is represented.
type EnumValue struct {
	Variant uint64
	Fields  []Value
}

// Constructors keep payload literals compact and make the Type member
// impossible to forget.

func ShortStringValue(s string) Value { return Value{Type: schema.TypeShortString, Str: s} }
func StringValue(s string) Value      { return Value{Type: schema.TypeString, Str: s} }
func Uint64Value(v uint64) Value      { return Value{Type: schema.TypeUint64, Uint: v} }
func Int64Value(v int64) Value        { return Value{Type: schema.TypeInt64, Int: v} }
func BoolValue(b bool) Value          { return Value{Type: schema.TypeBool, Bool: b} }
func BytesValue(b []byte) Value       { return Value{Type: schema.TypeBytes, Bytes: b} }

func Uint128Value(v *big.Int) Value { return Value{Type: schema.TypeUint128, Big: v} }
func Uint256Value(v *big.Int) Value { return Value{Type: schema.TypeUint256, Big: v} }
func Int128Value(v *big.Int) Value  { return Value{Type: schema.TypeInt128, Big: v} }
func Int256Value(v *big.Int) Value  { return Value{Type: schema.TypeInt256, Big: v} }

func AddressValue(a domain.Address) Value { return Value{Type: schema.TypeAddress, Addr: a} }

// EnumChoice selects the variant-th arm with the given field values.
func EnumChoice(variant uint64, fields ...Value) Value {
	return Value{Type: schema.TypeEnum, Enum: &EnumValue{Variant: variant, Fields: fields}}
}

// StructValue nests a record's field values in declaration order.
func StructValue(fields ...Value) Value {
	return Value{Type: schema.TypeStruct, Struct: fields}
}
