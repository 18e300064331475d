package schema

// FieldType identifies the kind of a schema field. The set is closed: every
// consumer (serializer, document renderer, size table) switches over all of
// these and treats an unknown value as a hard error, so adding a kind means
// revisiting each switch.
type FieldType string

const (
	TypeShortString FieldType = "ShortString"
	TypeString      FieldType = "String"
	TypeUint64      FieldType = "Uint64"
	TypeUint128     FieldType = "Uint128"
	TypeUint256     FieldType = "Uint256"
	TypeInt64       FieldType = "Int64"
	TypeInt128      FieldType = "Int128"
	TypeInt256      FieldType = "Int256"
	TypeAddress     FieldType = "Address"
	TypeBool        FieldType = "Bool"
	TypeBytes       FieldType = "Bytes"
	TypeEnum        FieldType = "Enum"
	TypeStruct      FieldType = "Struct"
)

// Valid reports whether t is one of the closed set of field types.
func (t FieldType) Valid() bool {
	switch t {
	case TypeShortString, TypeString, TypeUint64, TypeUint128, TypeUint256,
		TypeInt64, TypeInt128, TypeInt256, TypeAddress, TypeBool, TypeBytes,
		TypeEnum, TypeStruct:
		return true
	default:
		return false
	}
}

// FixedSize returns the byte width of a fixed-width field type.
// Variable-width types (String, Bytes, Enum, Struct) report 0 and false.
func (t FieldType) FixedSize() (uint32, bool) {
	switch t {
	case TypeShortString:
		return 32, true
	case TypeUint64, TypeInt64:
		return 8, true
	case TypeUint128, TypeInt128:
		return 16, true
	case TypeUint256, TypeInt256, TypeAddress:
		return 32, true
	case TypeBool:
		return 1, true
	case TypeString, TypeBytes, TypeEnum, TypeStruct:
		return 0, false
	default:
		return 0, false
	}
}

// SizeBytes returns the size recorded in ABI projections: the fixed width,
// or 0 for variable-width types.
func (t FieldType) SizeBytes() uint32 {
	size, _ := t.FixedSize()
	return size
}

// Recursive reports whether the type carries nested field lists.
func (t FieldType) Recursive() bool {
	return t == TypeEnum || t == TypeStruct
}
