package models

import (
	"time"

	contracts "attestry/contracts/attestation"
	"attestry/internal/abi"
	"attestry/pkg/domain"
	dErrors "attestry/pkg/domain-errors"
)

// AttestationRecord is one issued claim. Payload and metadata are immutable
// after creation; the only sanctioned mutation is the one-way Revoke
// transition. Records are never deleted and never un-revoked.
type AttestationRecord struct {
	ID            domain.AttestationID   `json:"id"`
	Attester      domain.Address         `json:"attester"`
	Subject       domain.Address         `json:"subject"`
	SchemaName    string                 `json:"schema_name"`
	SchemaVersion uint32                 `json:"schema_version"`
	Payload       []abi.Word             `json:"payload"`
	PayloadHash   string                 `json:"payload_hash"`
	Dependencies  []contracts.Dependency `json:"dependencies,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	ExpiresAt     time.Time              `json:"expires_at,omitzero"`
	Revoked       bool                   `json:"revoked"`
	RevokedAt     time.Time              `json:"revoked_at,omitzero"`
}

// Revoke flips the record to revoked and stamps the time. Returns an error if
// the record is already revoked; there is no inverse transition.
func (r *AttestationRecord) Revoke(now time.Time) error {
	if r.Revoked {
		return dErrors.New(dErrors.CodeAlreadyRevoked, "attestation is already revoked")
	}
	r.Revoked = true
	r.RevokedAt = now
	return nil
}

// Expired reports whether the record has passed its expiry. The boundary is
// exclusive: a record with ExpiresAt == now is already expired. A zero
// ExpiresAt means the record never expires. Expiry is computed, never stored.
func (r *AttestationRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}

// Composite reports whether validity depends on other attestations.
func (r *AttestationRecord) Composite() bool {
	return len(r.Dependencies) > 0
}
