// Package abi is the serialization engine for attestation payloads: it maps
// typed payloads to flat word sequences and back, and projects schemas into
// flattened, lookup-oriented ABI descriptions.
package abi

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"

	dErrors "attestry/pkg/domain-errors"
)

// WordSize is the byte width of one serialized element. Every payload encodes
// to a sequence of these fixed-width words; variable-length data packs
// WordSize raw bytes per word.
const WordSize = 32

// Word is one primitive element of the wire format, big-endian.
type Word [WordSize]byte

// wordModulus is 2^256, used for two's complement signed encoding.
var wordModulus = new(big.Int).Lsh(big.NewInt(1), WordSize*8)

// WordFromUint64 encodes v into the low bytes of a word.
func WordFromUint64(v uint64) Word {
	var w Word
	binary.BigEndian.PutUint64(w[WordSize-8:], v)
	return w
}

// WordFromBool encodes booleans as 0/1.
func WordFromBool(b bool) Word {
	if b {
		return WordFromUint64(1)
	}
	return Word{}
}

// WordFromUnsigned encodes a non-negative integer that must fit in bits.
func WordFromUnsigned(v *big.Int, bits uint) (Word, error) {
	var w Word
	if v == nil || v.Sign() < 0 {
		return w, dErrors.New(dErrors.CodeTypeMismatch, "unsigned value is nil or negative")
	}
	if v.BitLen() > int(bits) {
		return w, dErrors.New(dErrors.CodeTypeMismatch, "unsigned value out of range")
	}
	v.FillBytes(w[:])
	return w, nil
}

// WordFromSigned encodes v as two's complement over the full word.
// The value must lie in [-2^(bits-1), 2^(bits-1)).
func WordFromSigned(v *big.Int, bits uint) (Word, error) {
	var w Word
	if v == nil {
		return w, dErrors.New(dErrors.CodeTypeMismatch, "signed value is nil")
	}
	bound := new(big.Int).Lsh(big.NewInt(1), bits-1)
	if v.Cmp(new(big.Int).Neg(bound)) < 0 || v.Cmp(bound) >= 0 {
		return w, dErrors.New(dErrors.CodeTypeMismatch, "signed value out of range")
	}
	enc := v
	if v.Sign() < 0 {
		enc = new(big.Int).Add(wordModulus, v)
	}
	enc.FillBytes(w[:])
	return w, nil
}

// WordFromInt64 encodes v as two's complement over the full word.
func WordFromInt64(v int64) Word {
	w, _ := WordFromSigned(big.NewInt(v), 64)
	return w
}

// Uint64 decodes the word as a uint64, rejecting values that do not fit.
func (w Word) Uint64() (uint64, error) {
	for _, b := range w[:WordSize-8] {
		if b != 0 {
			return 0, dErrors.New(dErrors.CodeTypeMismatch, "element does not fit in 64 bits")
		}
	}
	return binary.BigEndian.Uint64(w[WordSize-8:]), nil
}

// Big decodes the word as an unsigned integer.
func (w Word) Big() *big.Int {
	return new(big.Int).SetBytes(w[:])
}

// SignedBig decodes the word as a two's complement signed integer.
func (w Word) SignedBig() *big.Int {
	v := w.Big()
	if w[0]&0x80 != 0 {
		v.Sub(v, wordModulus)
	}
	return v
}

// String renders the word as 0x-prefixed hex for logging and test failures.
func (w Word) String() string {
	return "0x" + hex.EncodeToString(w[:])
}

// ParseWord parses the 0x-hex form produced by String. The input must spell
// out the full word.
func ParseWord(s string) (Word, error) {
	var w Word
	if len(s) != 2+WordSize*2 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return w, dErrors.New(dErrors.CodeInvalidInput, "element must be a 0x-prefixed 64-digit hex string")
	}
	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return w, dErrors.New(dErrors.CodeInvalidInput, "element is not valid hex")
	}
	copy(w[:], b)
	return w, nil
}

// PackBytes packs raw bytes into the minimum number of words, WordSize bytes
// per word, left-aligned with the final word zero-padded on the right.
func PackBytes(b []byte) []Word {
	if len(b) == 0 {
		return nil
	}
	words := make([]Word, (len(b)+WordSize-1)/WordSize)
	for i := range words {
		copy(words[i][:], b[i*WordSize:])
	}
	return words
}

// UnpackBytes recovers exactly n bytes from packed words. The explicit byte
// count is authoritative; padding in the final word is ignored.
func UnpackBytes(words []Word, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	need := (n + WordSize - 1) / WordSize
	if need > len(words) {
		return nil, dErrors.New(dErrors.CodeTruncatedInput, "packed data shorter than declared length")
	}
	out := make([]byte, 0, n)
	for i := 0; i < need; i++ {
		take := n - i*WordSize
		if take > WordSize {
			take = WordSize
		}
		out = append(out, words[i][:take]...)
	}
	return out, nil
}
