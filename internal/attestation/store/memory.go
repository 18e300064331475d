// Package store holds attestation record storage implementations. The
// in-memory store backs single-process deployments and tests; persistent
// engines are external collaborators behind the same port.
package store

import (
	"context"
	"sync"

	"attestry/internal/attestation/models"
	"attestry/pkg/domain"
	"attestry/pkg/sentinel"
)

// ErrNotFound is returned when an attestation is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory stores attestation records in memory. IDs are assigned from a
// monotonic counter starting at 1; zero never refers to a record. The only
// mutation paths are Create and Update, mirroring the two sanctioned state
// transitions.
type InMemory struct {
	mu         sync.RWMutex
	nextID     domain.AttestationID
	records    map[domain.AttestationID]*models.AttestationRecord
	bySubject  map[domain.Address][]domain.AttestationID
	byAttester map[domain.Address][]domain.AttestationID
}

// NewInMemory creates an in-memory attestation store.
func NewInMemory() *InMemory {
	return &InMemory{
		nextID:     1,
		records:    make(map[domain.AttestationID]*models.AttestationRecord),
		bySubject:  make(map[domain.Address][]domain.AttestationID),
		byAttester: make(map[domain.Address][]domain.AttestationID),
	}
}

// Create assigns the next id, stores the record, and indexes it. The assigned
// id is written back onto the record and returned.
func (s *InMemory) Create(_ context.Context, r *models.AttestationRecord) (domain.AttestationID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID
	s.nextID++
	s.records[r.ID] = r
	s.bySubject[r.Subject] = append(s.bySubject[r.Subject], r.ID)
	s.byAttester[r.Attester] = append(s.byAttester[r.Attester], r.ID)
	return r.ID, nil
}

// FindByID retrieves a record by id.
func (s *InMemory) FindByID(_ context.Context, id domain.AttestationID) (*models.AttestationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.records[id]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

// Update persists a mutated record. Only the revocation transition mutates
// records, so a missing id here is a programming error surfaced as not found.
func (s *InMemory) Update(_ context.Context, r *models.AttestationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[r.ID]; !ok {
		return ErrNotFound
	}
	s.records[r.ID] = r
	return nil
}

// ListBySubject returns ids attesting the subject, in creation order.
func (s *InMemory) ListBySubject(_ context.Context, subject domain.Address) ([]domain.AttestationID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.bySubject[subject]
	out := make([]domain.AttestationID, len(ids))
	copy(out, ids)
	return out, nil
}

// ListByAttester returns ids issued by the attester, in creation order.
func (s *InMemory) ListByAttester(_ context.Context, attester domain.Address) ([]domain.AttestationID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byAttester[attester]
	out := make([]domain.AttestationID, len(ids))
	copy(out, ids)
	return out, nil
}

// Count returns the total number of records.
func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
