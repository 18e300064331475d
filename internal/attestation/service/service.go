// Package service hosts the verification engine: one Instance per registered
// schema, owning the attestation records it creates and exposing the verify
// capability other instances compose against.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"attestry/internal/abi"
	attmetrics "attestry/internal/attestation/metrics"
	"attestry/internal/attestation/models"
	"attestry/internal/schema"
	"attestry/pkg/domain"
	dErrors "attestry/pkg/domain-errors"
	"attestry/pkg/requestcontext"
	"attestry/pkg/sentinel"
)

// DefaultMaxVerifyDepth bounds composite traversals when no override is set.
const DefaultMaxVerifyDepth = 8

// Instance is one schema instance: its schema, its ABI projection, and the
// records it exclusively owns. All mutations funnel through CreateAttestation
// and Revoke.
type Instance struct {
	id         domain.InstanceID
	name       string
	schema     *schema.Schema
	records    RecordStore
	deps       DependencyResolver
	authz      Authorizer
	emitter    EventEmitter
	logger     *slog.Logger
	metrics    *attmetrics.Metrics
	tracer     trace.Tracer
	clock      func() time.Time
	maxDepth   int
	defaultTTL time.Duration
}

// New validates the schema and builds an instance around it. The instance
// name doubles as the visited-set key in composite traversals, so it must be
// unique across the registry.
func New(name string, sch *schema.Schema, records RecordStore, opts ...Option) (*Instance, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeEmptyName, "instance name cannot be empty")
	}
	if sch == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "schema is required")
	}
	if err := sch.Validate(); err != nil {
		return nil, err
	}
	i := &Instance{
		id:       domain.InstanceID(uuid.New()),
		name:     name,
		schema:   sch,
		records:  records,
		authz:    allowAll{},
		tracer:   otel.Tracer("attestry/attestation"),
		clock:    time.Now,
		maxDepth: DefaultMaxVerifyDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// ID returns the registration identity of this instance.
func (i *Instance) ID() domain.InstanceID { return i.id }

// InstanceName implements the Verifier capability's identity.
func (i *Instance) InstanceName() string { return i.name }

// Schema returns the instance's schema.
func (i *Instance) Schema() *schema.Schema { return i.schema }

// SchemaText renders the schema document.
func (i *Instance) SchemaText() (string, error) { return i.schema.ToText() }

// ABI returns the flattened projection, recomputed from the current schema.
func (i *Instance) ABI() abi.StructABI { return abi.ToABI(i.schema) }

// CreateAttestation issues a new record for the subject. The payload is
// serialized (or, for pre-serialized elements, decoded) against the schema,
// so every stored sequence conforms to it. Returns the stored record with its
// assigned non-zero id.
func (i *Instance) CreateAttestation(ctx context.Context, cmd *CreateCommand) (*models.AttestationRecord, error) {
	if !i.authz.CanAttest(ctx, cmd.Attester) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "attester is not allowed to create attestations")
	}
	if cmd.Subject.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "subject is required")
	}

	elements, err := i.conformingElements(cmd)
	if err != nil {
		return nil, err
	}

	for _, dep := range cmd.Dependencies {
		if dep.ID.IsNil() {
			return nil, dErrors.New(dErrors.CodeValidation, "dependency id cannot be zero")
		}
		if i.deps == nil {
			return nil, dErrors.New(dErrors.CodeValidation, "instance has no dependency resolver")
		}
		if _, ok := i.deps.Resolve(dep.Instance); !ok {
			return nil, dErrors.New(dErrors.CodeValidation, "unknown dependency instance "+dep.Instance)
		}
	}

	now := i.clock()
	expires := cmd.ExpiresAt
	if expires.IsZero() && i.defaultTTL > 0 {
		expires = now.Add(i.defaultTTL)
	}

	record := &models.AttestationRecord{
		Attester:      cmd.Attester,
		Subject:       cmd.Subject,
		SchemaName:    i.schema.Name,
		SchemaVersion: i.schema.Version,
		Payload:       elements,
		PayloadHash:   abi.PayloadHash(elements),
		Dependencies:  cmd.Dependencies,
		CreatedAt:     now,
		ExpiresAt:     expires,
	}

	if _, err := i.records.Create(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store attestation")
	}

	i.logAudit(ctx, "attestation_created",
		"attestation_id", record.ID,
		"subject", record.Subject,
		"attester", record.Attester,
	)
	i.emitEvent(ctx, models.AttestationCreated{
		ID:        record.ID,
		Subject:   record.Subject,
		CreatedAt: record.CreatedAt,
	})
	if i.metrics != nil {
		i.metrics.IncrementCreated()
	}
	return record, nil
}

// conformingElements produces the stored element sequence from the command,
// rejecting payloads that do not conform to the schema.
func (i *Instance) conformingElements(cmd *CreateCommand) ([]abi.Word, error) {
	switch {
	case cmd.Payload != nil && cmd.Elements != nil:
		return nil, dErrors.New(dErrors.CodeValidation, "payload and elements are mutually exclusive")
	case cmd.Payload != nil:
		return abi.Serialize(i.schema, cmd.Payload)
	case cmd.Elements != nil:
		if _, err := abi.Deserialize(i.schema, cmd.Elements); err != nil {
			return nil, err
		}
		return cmd.Elements, nil
	default:
		return nil, dErrors.New(dErrors.CodeValidation, "payload is required")
	}
}

// Revoke flips the record to revoked. Fails with already_revoked on a second
// call; there is no unrevoke.
func (i *Instance) Revoke(ctx context.Context, attester domain.Address, id domain.AttestationID) (*models.AttestationRecord, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "attestation ID required")
	}
	record, err := i.records.FindByID(ctx, id)
	if err != nil {
		return nil, wrapRecordErr(err, "failed to load attestation")
	}
	if !i.authz.CanRevoke(ctx, attester, record) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "attester is not allowed to revoke this attestation")
	}

	if err := record.Revoke(i.clock()); err != nil {
		return nil, err
	}
	if err := i.records.Update(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update attestation")
	}

	i.logAudit(ctx, "attestation_revoked",
		"attestation_id", record.ID,
		"attester", attester,
	)
	i.emitEvent(ctx, models.AttestationRevoked{ID: record.ID, RevokedAt: record.RevokedAt})
	if i.metrics != nil {
		i.metrics.IncrementRevoked()
	}
	return record, nil
}

// GetAttestation returns a record by id.
func (i *Instance) GetAttestation(ctx context.Context, id domain.AttestationID) (*models.AttestationRecord, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "attestation ID required")
	}
	record, err := i.records.FindByID(ctx, id)
	if err != nil {
		return nil, wrapRecordErr(err, "failed to load attestation")
	}
	return record, nil
}

// AttestationsFor returns the subject's attestation ids in creation order.
func (i *Instance) AttestationsFor(ctx context.Context, subject domain.Address) ([]domain.AttestationID, error) {
	ids, err := i.records.ListBySubject(ctx, subject)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list attestations")
	}
	return ids, nil
}

// AttestationsBy returns the attester's issued ids in creation order.
func (i *Instance) AttestationsBy(ctx context.Context, attester domain.Address) ([]domain.AttestationID, error) {
	ids, err := i.records.ListByAttester(ctx, attester)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list attestations")
	}
	return ids, nil
}

func (i *Instance) logAudit(ctx context.Context, event string, attributes ...any) {
	if i.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "instance", i.name, "log_type", "audit")
	i.logger.InfoContext(ctx, event, args...)
}

func (i *Instance) emitEvent(ctx context.Context, event models.Event) {
	if i.emitter == nil {
		return
	}
	if err := i.emitter.Emit(ctx, event); err != nil && i.logger != nil {
		i.logger.WarnContext(ctx, "failed to emit event",
			"event", event.EventName(),
			"instance", i.name,
			"error", err,
		)
	}
}

func wrapRecordErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "attestation not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}
