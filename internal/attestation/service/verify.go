package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	contracts "attestry/contracts/attestation"
	"attestry/pkg/domain"
)

// Verify reports whether the attestation is currently valid. It fails closed:
// unknown ids, the zero sentinel, revoked records, passed expiries, missing
// dependency instances, and rejected traversals all read as false. Composite
// attestations are valid only when every declared dependency verifies
// (logical AND), evaluated through the dependencies' own Verifier
// capabilities within one shared bounded traversal.
func (i *Instance) Verify(ctx context.Context, id domain.AttestationID) bool {
	start := i.clock()
	ctx, span := i.tracer.Start(ctx, "attestation.verify", trace.WithAttributes(
		attribute.String("instance", i.name),
		attribute.Int64("attestation_id", int64(id)),
	))
	defer span.End()

	valid := i.VerifyWithin(ctx, id, contracts.NewTraversal(i.maxDepth))

	span.SetAttributes(attribute.Bool("valid", valid))
	if i.metrics != nil {
		i.metrics.ObserveVerify(start, valid)
	}
	return valid
}

// VerifyWithin participates in an ongoing composite traversal. Reentrancy is
// handled by the traversal itself: a cycle back into this instance or an
// exhausted depth budget rejects the branch as false.
func (i *Instance) VerifyWithin(ctx context.Context, id domain.AttestationID, t *contracts.Traversal) bool {
	ok, done, verdict := t.Begin(i.name, id)
	if done {
		return verdict
	}
	if !ok {
		if i.metrics != nil {
			i.metrics.IncrementVerifyRejected()
		}
		if i.logger != nil {
			i.logger.WarnContext(ctx, "verify traversal rejected",
				"instance", i.name,
				"attestation_id", id,
			)
		}
		return false
	}
	verdict = i.verifyRecord(ctx, id, t)
	t.End(i.name, id, verdict)
	return verdict
}

func (i *Instance) verifyRecord(ctx context.Context, id domain.AttestationID, t *contracts.Traversal) bool {
	if id.IsNil() {
		return false
	}
	record, err := i.records.FindByID(ctx, id)
	if err != nil {
		return false
	}
	if record.Revoked {
		return false
	}
	if record.Expired(i.clock()) {
		return false
	}
	for _, dep := range record.Dependencies {
		if i.deps == nil {
			return false
		}
		verifier, ok := i.deps.Resolve(dep.Instance)
		if !ok {
			return false
		}
		if !verifier.VerifyWithin(ctx, dep.ID, t) {
			return false
		}
	}
	return true
}
