// Package attestation hosts the stable, minimal contract shared across schema
// instances for composable verification. A composite attestation never reads
// another instance's storage; it only consumes this capability.
package attestation

import (
	"context"

	"attestry/pkg/domain"
)

// ContractVersion identifies the contract schema version for compatibility checks.
// Bump on breaking changes to the shapes below; consumers can pin or roll forward.
const ContractVersion = "v0.1.0"

// Verifier is the capability a schema instance exposes to others:
// anything answering "is this attestation currently valid". Implementations
// are fail-closed; every error condition reads as false.
type Verifier interface {
	// InstanceName identifies the instance for visited-set keying.
	InstanceName() string

	// Verify reports whether the attestation is currently valid.
	Verify(ctx context.Context, id domain.AttestationID) bool

	// VerifyWithin is Verify participating in an ongoing composite
	// traversal, sharing its depth budget and visited set.
	VerifyWithin(ctx context.Context, id domain.AttestationID, t *Traversal) bool
}

// Dependency names one attestation, in a possibly different instance, whose
// validity a composite attestation is conditioned on.
type Dependency struct {
	Instance string               `json:"instance"`
	ID       domain.AttestationID `json:"id"`
}

// Visit keys the traversal's visited set by (schema instance, attestation id).
type Visit struct {
	Instance string
	ID       domain.AttestationID
}

// Traversal bounds one recursive verification: a maximum call-stack depth and
// a visited set that rejects cycles while memoizing verdicts so shared
// dependencies are evaluated once. One Traversal spans the whole call tree,
// giving it a consistent view for the duration of the verification.
type Traversal struct {
	maxDepth int
	depth    int
	visiting map[Visit]bool
	verdicts map[Visit]bool
}

// NewTraversal starts a traversal with the given depth budget.
func NewTraversal(maxDepth int) *Traversal {
	return &Traversal{
		maxDepth: maxDepth,
		visiting: make(map[Visit]bool),
		verdicts: make(map[Visit]bool),
	}
}

// Begin enters a visit. ok is false when the depth budget is exhausted or the
// pair is already on the call stack (a dependency cycle); both reject the
// traversal rather than letting it diverge. done reports a verdict already
// reached for this pair earlier in the traversal.
func (t *Traversal) Begin(instance string, id domain.AttestationID) (ok, done, verdict bool) {
	v := Visit{Instance: instance, ID: id}
	if verdict, done = t.verdicts[v]; done {
		return true, true, verdict
	}
	if t.depth >= t.maxDepth || t.visiting[v] {
		return false, false, false
	}
	t.depth++
	t.visiting[v] = true
	return true, false, false
}

// End leaves a visit begun with Begin, recording its verdict.
func (t *Traversal) End(instance string, id domain.AttestationID, verdict bool) {
	v := Visit{Instance: instance, ID: id}
	delete(t.visiting, v)
	t.verdicts[v] = verdict
	t.depth--
}
