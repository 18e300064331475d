package service

import (
	"time"

	contracts "attestry/contracts/attestation"
	"attestry/internal/abi"
	"attestry/pkg/domain"
)

// CreateCommand carries everything needed to issue one attestation.
// Exactly one of Payload (typed values, serialized by the engine) or Elements
// (a pre-serialized sequence, validated by decoding) must be set.
type CreateCommand struct {
	Attester     domain.Address
	Subject      domain.Address
	Payload      []abi.Value
	Elements     []abi.Word
	ExpiresAt    time.Time
	Dependencies []contracts.Dependency
}
