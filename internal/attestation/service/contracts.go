package service

import (
	"context"

	contracts "attestry/contracts/attestation"
	"attestry/internal/attestation/models"
	"attestry/pkg/domain"
)

// RecordStore is the storage port for attestation records. Create assigns the
// id; Update exists solely for the revocation transition.
type RecordStore interface {
	Create(ctx context.Context, r *models.AttestationRecord) (domain.AttestationID, error)
	FindByID(ctx context.Context, id domain.AttestationID) (*models.AttestationRecord, error)
	Update(ctx context.Context, r *models.AttestationRecord) error
	ListBySubject(ctx context.Context, subject domain.Address) ([]domain.AttestationID, error)
	ListByAttester(ctx context.Context, attester domain.Address) ([]domain.AttestationID, error)
}

// DependencyResolver maps a dependency's instance name to its Verifier
// capability. Composite verification goes through this, never through another
// instance's storage.
type DependencyResolver interface {
	Resolve(name string) (contracts.Verifier, bool)
}

// Authorizer is the access-control hook point. Policy itself lives outside
// the engine; denial surfaces as an unauthorized error on create and revoke.
type Authorizer interface {
	CanAttest(ctx context.Context, attester domain.Address) bool
	CanRevoke(ctx context.Context, attester domain.Address, r *models.AttestationRecord) bool
}

// EventEmitter receives domain events after successful state transitions.
type EventEmitter interface {
	Emit(ctx context.Context, event models.Event) error
}

// allowAll is the default authorizer when none is configured.
type allowAll struct{}

func (allowAll) CanAttest(context.Context, domain.Address) bool { return true }
func (allowAll) CanRevoke(context.Context, domain.Address, *models.AttestationRecord) bool {
	return true
}
