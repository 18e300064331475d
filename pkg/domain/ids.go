// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/google/uuid"

	dErrors "attestry/pkg/domain-errors"
)

// AttestationID identifies one attestation within a schema instance.
// IDs are assigned by the instance's store: strictly increasing, starting at 1.
// Zero is the invalid sentinel and never refers to a record.
type AttestationID uint64

// InstanceID identifies a registered schema instance.
type InstanceID uuid.UUID

// AddressLen is the byte width of a principal address.
const AddressLen = 32

// Address is a 32-byte principal (attester or subject).
type Address [AddressLen]byte

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseAttestationID(s string) (AttestationID, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "attestation ID cannot be empty")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid attestation ID format")
	}
	return AttestationID(v), nil
}

func ParseInstanceID(s string) (InstanceID, error) {
	if s == "" {
		return InstanceID(uuid.Nil), dErrors.New(dErrors.CodeInvalidInput, "instance ID cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return InstanceID(uuid.Nil), dErrors.New(dErrors.CodeInvalidInput, "invalid instance ID format")
	}
	return InstanceID(id), nil
}

// ParseAddress parses a 0x-prefixed hex principal of at most 32 bytes.
// Shorter inputs are left-padded, matching the numeric reading of addresses.
func ParseAddress(s string) (Address, error) {
	var a Address
	if s == "" {
		return a, dErrors.New(dErrors.CodeInvalidInput, "address cannot be empty")
	}
	h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if h == "" || len(h) > AddressLen*2 {
		return a, dErrors.New(dErrors.CodeInvalidInput, "invalid address format")
	}
	if len(h)%2 == 1 {
		h = "0" + h
	}
	raw, err := hex.DecodeString(h)
	if err != nil {
		return a, dErrors.New(dErrors.CodeInvalidInput, "invalid address format")
	}
	copy(a[AddressLen-len(raw):], raw)
	return a, nil
}

// String methods - for logging and debugging.

func (id AttestationID) String() string { return strconv.FormatUint(uint64(id), 10) }
func (id InstanceID) String() string    { return uuid.UUID(id).String() }

// String renders the address as 0x-prefixed hex with leading zeros trimmed,
// keeping at least one digit. The zero address renders as "0x0".
func (a Address) String() string {
	h := strings.TrimLeft(hex.EncodeToString(a[:]), "0")
	if h == "" {
		h = "0"
	}
	return "0x" + h
}

// IsNil checks - used for service-layer validation.

func (id AttestationID) IsNil() bool { return id == 0 }
func (id InstanceID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (a Address) IsZero() bool       { return a == Address{} }
