package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	dErrors "attestry/pkg/domain-errors"
)

func TestRevokeIsOneWay(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	r := &AttestationRecord{ID: 1}

	assert.NoError(t, r.Revoke(now))
	assert.True(t, r.Revoked)
	assert.Equal(t, now, r.RevokedAt)

	err := r.Revoke(now.Add(time.Hour))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeAlreadyRevoked))
	assert.True(t, r.Revoked, "state is unchanged by the failed second call")
	assert.Equal(t, now, r.RevokedAt)
}

func TestExpiredBoundaryIsExclusive(t *testing.T) {
	expires := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	r := &AttestationRecord{ID: 1, ExpiresAt: expires}

	assert.False(t, r.Expired(expires.Add(-time.Second)))
	assert.True(t, r.Expired(expires), "expired at exactly ExpiresAt")
	assert.True(t, r.Expired(expires.Add(time.Second)))

	never := &AttestationRecord{ID: 2}
	assert.False(t, never.Expired(expires.Add(1000*time.Hour)))
}
