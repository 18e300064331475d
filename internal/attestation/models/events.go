package models

import (
	"time"

	"attestry/pkg/domain"
)

// Domain events capture what happened in the attestation domain.
// These are pure data structures with no behavior - the application layer
// is responsible for publishing them through the configured emitter.

// Event is implemented by all attestation domain events.
type Event interface {
	EventName() string
}

// AttestationCreated is emitted on every successful creation.
type AttestationCreated struct {
	ID        domain.AttestationID
	Subject   domain.Address
	CreatedAt time.Time
}

func (AttestationCreated) EventName() string { return "attestation_created" }

// AttestationRevoked is emitted when a record is revoked.
type AttestationRevoked struct {
	ID        domain.AttestationID
	RevokedAt time.Time
}

func (AttestationRevoked) EventName() string { return "attestation_revoked" }
