package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "attestry/pkg/domain"
	dErrors "attestry/pkg/domain-errors"
)

type stubValidator struct {
	claims *Claims
	err    error
}

func (s stubValidator) ValidateToken(string) (*Claims, error) { return s.claims, s.err }

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func runMiddleware(t *testing.T, validator TokenValidator, header string) (*httptest.ResponseRecorder, id.Address) {
	t.Helper()
	var seen id.Address
	handler := RequireAuth(validator, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetAttester(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seen
}

func TestRequireAuthSuccess(t *testing.T) {
	addr, err := id.ParseAddress("0xab")
	require.NoError(t, err)

	rec, seen := runMiddleware(t, stubValidator{claims: &Claims{Attester: addr.String()}}, "Bearer token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, addr, seen)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	rec, _ := runMiddleware(t, stubValidator{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestRequireAuthNonBearerHeader(t *testing.T) {
	rec, _ := runMiddleware(t, stubValidator{}, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	validator := stubValidator{err: dErrors.New(dErrors.CodeInvalidInput, "invalid token")}
	rec, _ := runMiddleware(t, validator, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthMalformedClaims(t *testing.T) {
	rec, _ := runMiddleware(t, stubValidator{claims: &Claims{Attester: "not-an-address"}}, "Bearer token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthZeroAddressClaims(t *testing.T) {
	rec, _ := runMiddleware(t, stubValidator{claims: &Claims{Attester: "0x0"}}, "Bearer token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetAttesterWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, GetAttester(req.Context()).IsZero())
}
