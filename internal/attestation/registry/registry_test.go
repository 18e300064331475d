package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attestry/internal/attestation/registry"
	"attestry/internal/attestation/service"
	"attestry/internal/attestation/store"
	"attestry/internal/schema"
	dErrors "attestry/pkg/domain-errors"
)

func newTestInstance(t *testing.T, name string) *service.Instance {
	t.Helper()
	sch, err := schema.New(name, "", 1, schema.Field("subject", schema.TypeAddress))
	require.NoError(t, err)
	inst, err := service.New(name, sch, store.NewInMemory())
	require.NoError(t, err)
	return inst
}

func TestRegisterAndGet(t *testing.T) {
	reg := registry.New()

	kyc := newTestInstance(t, "kyc")
	require.NoError(t, reg.Register(kyc))

	got, ok := reg.Get("kyc")
	require.True(t, ok)
	assert.Same(t, kyc, got)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegisterConflict(t *testing.T) {
	reg := registry.New()

	require.NoError(t, reg.Register(newTestInstance(t, "kyc")))
	err := reg.Register(newTestInstance(t, "kyc"))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestResolve(t *testing.T) {
	reg := registry.New()
	kyc := newTestInstance(t, "kyc")
	require.NoError(t, reg.Register(kyc))

	verifier, ok := reg.Resolve("kyc")
	require.True(t, ok)
	assert.Equal(t, "kyc", verifier.InstanceName())

	_, ok = reg.Resolve("missing")
	assert.False(t, ok)
}

func TestNamesSorted(t *testing.T) {
	reg := registry.New()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, reg.Register(newTestInstance(t, name)))
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Names())
}
