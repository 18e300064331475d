package attestation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"attestry/pkg/domain"
)

func TestTraversalDepthBudget(t *testing.T) {
	tr := NewTraversal(2)

	ok, done, _ := tr.Begin("a", 1)
	assert.True(t, ok)
	assert.False(t, done)

	ok, _, _ = tr.Begin("b", 1)
	assert.True(t, ok)

	ok, _, _ = tr.Begin("c", 1)
	assert.False(t, ok, "third level exceeds a budget of 2")

	// Unwinding frees the budget again.
	tr.End("b", 1, true)
	ok, _, _ = tr.Begin("c", 1)
	assert.True(t, ok)
}

func TestTraversalCycleRejection(t *testing.T) {
	tr := NewTraversal(10)

	ok, _, _ := tr.Begin("a", 1)
	assert.True(t, ok)
	ok, _, _ = tr.Begin("b", 2)
	assert.True(t, ok)

	ok, _, _ = tr.Begin("a", 1)
	assert.False(t, ok, "revisiting a pair on the stack is a cycle")

	// The same id in a different instance is a different visit.
	ok, _, _ = tr.Begin("c", 1)
	assert.True(t, ok)
}

func TestTraversalMemoizesVerdicts(t *testing.T) {
	tr := NewTraversal(10)

	ok, done, _ := tr.Begin("a", domain.AttestationID(7))
	assert.True(t, ok)
	assert.False(t, done)
	tr.End("a", 7, true)

	ok, done, verdict := tr.Begin("a", 7)
	assert.True(t, ok)
	assert.True(t, done, "completed visits return their verdict")
	assert.True(t, verdict)

	tr2 := NewTraversal(10)
	okf, _, _ := tr2.Begin("a", 7)
	assert.True(t, okf)
	tr2.End("a", 7, false)
	_, done, verdict = tr2.Begin("a", 7)
	assert.True(t, done)
	assert.False(t, verdict)
}
