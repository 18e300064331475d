package abi

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attestry/internal/schema"
	"attestry/pkg/domain"
	dErrors "attestry/pkg/domain-errors"
)

func mustAddress(t *testing.T, s string) domain.Address {
	t.Helper()
	a, err := domain.ParseAddress(s)
	require.NoError(t, err)
	return a
}

func TestSerializeSubjectAndNote(t *testing.T) {
	sch, err := schema.New("verification", "", 1,
		schema.Field("subject", schema.TypeAddress),
		schema.Field("note", schema.TypeString),
	)
	require.NoError(t, err)

	subject := mustAddress(t, "0xab")
	words, err := Serialize(sch, []Value{AddressValue(subject), StringValue("hi")})
	require.NoError(t, err)

	require.Len(t, words, 3)
	assert.Equal(t, Word(subject), words[0])
	assert.Equal(t, WordFromUint64(2), words[1], "length element carries the byte count")

	var packed Word
	packed[0], packed[1] = 'h', 'i'
	assert.Equal(t, packed, words[2], "data packs left-aligned with zero padding")
}

func TestSerializePublicEnumArm(t *testing.T) {
	sch, err := schema.New("verification", "", 1,
		schema.EnumField("visibility",
			schema.Variant("Private", schema.Field("hash", schema.TypeUint256)),
			schema.Variant("Public", schema.Field("name", schema.TypeString)),
		),
	)
	require.NoError(t, err)

	words, err := Serialize(sch, []Value{EnumChoice(1, StringValue("alice"))})
	require.NoError(t, err)

	require.Len(t, words, 3)
	assert.Equal(t, WordFromUint64(1), words[0], "zero-based discriminant for Public")
	assert.Equal(t, WordFromUint64(5), words[1])

	var packed Word
	copy(packed[:], "alice")
	assert.Equal(t, packed, words[2])

	// The unchosen arm contributes nothing: Private would have been
	// exactly two words (discriminant + hash).
	private, err := Serialize(sch, []Value{EnumChoice(0, Uint256Value(big.NewInt(7)))})
	require.NoError(t, err)
	assert.Len(t, private, 2)
}

func TestRoundTripAllKinds(t *testing.T) {
	sch, err := schema.New("kitchen_sink", "", 1,
		schema.Field("short", schema.TypeShortString),
		schema.Field("long", schema.TypeString),
		schema.Field("u64", schema.TypeUint64),
		schema.Field("u128", schema.TypeUint128),
		schema.Field("u256", schema.TypeUint256),
		schema.Field("i64", schema.TypeInt64),
		schema.Field("i128", schema.TypeInt128),
		schema.Field("i256", schema.TypeInt256),
		schema.Field("addr", schema.TypeAddress),
		schema.Field("flag", schema.TypeBool),
		schema.Field("blob", schema.TypeBytes),
		schema.EnumField("evidence",
			schema.Variant("None"),
			schema.Variant("Hash", schema.Field("digest", schema.TypeUint256)),
		),
		schema.StructField("window", schema.StructDefinition{
			Name: "window",
			Fields: []schema.SchemaField{
				schema.Field("from", schema.TypeUint64),
				schema.Field("until", schema.TypeUint64),
			},
		}),
	)
	require.NoError(t, err)

	u128 := new(big.Int).Lsh(big.NewInt(1), 127)
	i128 := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	i256 := new(big.Int).Neg(big.NewInt(123456789))

	payload := []Value{
		ShortStringValue("gm"),
		StringValue("a note long enough to span more than one packed element of the sequence"),
		Uint64Value(42),
		Uint128Value(u128),
		Uint256Value(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))),
		Int64Value(-7),
		Int128Value(i128),
		Int256Value(i256),
		AddressValue(mustAddress(t, "0xdeadbeef")),
		BoolValue(true),
		BytesValue([]byte{0x00, 0x01, 0x02}),
		EnumChoice(1, Uint256Value(big.NewInt(99))),
		StructValue(Uint64Value(10), Uint64Value(20)),
	}

	words, err := Serialize(sch, payload)
	require.NoError(t, err)

	decoded, err := Deserialize(sch, words)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestRoundTripUnitVariantAndEmptyData(t *testing.T) {
	sch, err := schema.New("edges", "", 1,
		schema.Field("note", schema.TypeString),
		schema.Field("blob", schema.TypeBytes),
		schema.EnumField("evidence", schema.Variant("None"), schema.Variant("Some", schema.Field("v", schema.TypeUint64))),
	)
	require.NoError(t, err)

	payload := []Value{StringValue(""), BytesValue(nil), EnumChoice(0)}
	words, err := Serialize(sch, payload)
	require.NoError(t, err)

	// Empty variable data is one zero-length element, unit variants are the
	// discriminant alone.
	assert.Len(t, words, 3)

	decoded, err := Deserialize(sch, words)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestDeserializeTruncated(t *testing.T) {
	sch, err := schema.New("verification", "", 1,
		schema.Field("subject", schema.TypeAddress),
		schema.Field("note", schema.TypeString),
	)
	require.NoError(t, err)

	words, err := Serialize(sch, []Value{AddressValue(mustAddress(t, "0xab")), StringValue("hello world")})
	require.NoError(t, err)

	for n := 0; n < len(words); n++ {
		_, err := Deserialize(sch, words[:n])
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTruncatedInput), "prefix of %d elements", n)
	}
}

func TestDeserializeDiscriminantOutOfRange(t *testing.T) {
	sch, err := schema.New("verification", "", 1,
		schema.EnumField("visibility", schema.Variant("Private"), schema.Variant("Public")),
	)
	require.NoError(t, err)

	_, err = Deserialize(sch, []Word{WordFromUint64(2)})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDiscriminantOutOfRange))

	// A discriminant that does not even fit in 64 bits is equally out of range.
	var huge Word
	huge[0] = 0x01
	_, err = Deserialize(sch, []Word{huge})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDiscriminantOutOfRange))
}

func TestDeserializeMalformed(t *testing.T) {
	boolSchema, err := schema.New("flags", "", 1, schema.Field("flag", schema.TypeBool))
	require.NoError(t, err)
	_, err = Deserialize(boolSchema, []Word{WordFromUint64(2)})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTypeMismatch), "boolean must be 0 or 1")

	u64Schema, err := schema.New("counts", "", 1, schema.Field("n", schema.TypeUint64))
	require.NoError(t, err)

	_, err = Deserialize(u64Schema, []Word{WordFromUint64(1), WordFromUint64(2)})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTypeMismatch), "trailing elements rejected")

	var wide Word
	wide[10] = 0xff
	_, err = Deserialize(u64Schema, []Word{wide})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTypeMismatch), "value wider than 64 bits")
}

func TestSerializeTypeChecks(t *testing.T) {
	sch, err := schema.New("verification", "", 1, schema.Field("subject", schema.TypeAddress))
	require.NoError(t, err)

	_, err = Serialize(sch, []Value{Uint64Value(1)})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTypeMismatch))

	_, err = Serialize(sch, nil)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTypeMismatch), "wrong field count")

	shortSchema, err := schema.New("names", "", 1, schema.Field("name", schema.TypeShortString))
	require.NoError(t, err)
	_, err = Serialize(shortSchema, []Value{ShortStringValue("this name is far too long for a single element")})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTypeMismatch))

	enumSchema, err := schema.New("vis", "", 1, schema.EnumField("visibility", schema.Variant("Public")))
	require.NoError(t, err)
	_, err = Serialize(enumSchema, []Value{EnumChoice(3)})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDiscriminantOutOfRange))

	rangeSchema, err := schema.New("nums", "", 1, schema.Field("n", schema.TypeUint128))
	require.NoError(t, err)
	_, err = Serialize(rangeSchema, []Value{Uint128Value(new(big.Int).Lsh(big.NewInt(1), 128))})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTypeMismatch))
}

func TestPayloadHashDeterministic(t *testing.T) {
	words := []Word{WordFromUint64(1), WordFromUint64(2)}
	h1 := PayloadHash(words)
	h2 := PayloadHash([]Word{WordFromUint64(1), WordFromUint64(2)})
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, PayloadHash([]Word{WordFromUint64(2), WordFromUint64(1)}))
	assert.Len(t, h1, 2+64)
}
