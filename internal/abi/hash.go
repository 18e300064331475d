package abi

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// PayloadHash returns the 0x-prefixed Keccak-256 digest of the serialized
// element sequence. Recorded on attestation records for content addressing.
func PayloadHash(words []Word) string {
	h := sha3.NewLegacyKeccak256()
	for _, w := range words {
		h.Write(w[:])
	}
	return "0x" + hex.EncodeToString(h.Sum(nil))
}
