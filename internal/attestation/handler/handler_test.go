package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attestry/internal/abi"
	"attestry/internal/attestation/handler"
	"attestry/internal/attestation/registry"
	"attestry/internal/attestation/service"
	"attestry/internal/attestation/store"
	"attestry/internal/schema"
	id "attestry/pkg/domain"
	"attestry/pkg/requestcontext"
)

const testAttester = "0x09"

// fakeAuth stands in for the JWT middleware: it stamps a fixed attester into
// the request context.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attester, _ := id.ParseAddress(testAttester)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithAttester(r.Context(), attester)))
	})
}

func newTestRouter(t *testing.T) (*chi.Mux, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	factory := func(name string, sch *schema.Schema) (*service.Instance, error) {
		return service.New(name, sch, store.NewInMemory(), service.WithDependencyResolver(reg))
	}
	h := handler.New(reg, factory, slog.New(slog.DiscardHandler))

	r := chi.NewRouter()
	h.Register(r, fakeAuth)
	return r, reg
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerNoteSchema(t *testing.T, router http.Handler) {
	t.Helper()
	doc := schema.Document{
		Name:    "verification",
		Version: 1,
		Fields: []schema.FieldDocument{
			{Name: "subject", Type: string(schema.TypeAddress), Required: true},
			{Name: "note", Type: string(schema.TypeString), Required: true},
		},
	}
	rec := doJSON(t, router, http.MethodPost, "/schemas", doc)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func noteElements(t *testing.T, subject id.Address, note string) []string {
	t.Helper()
	sch, err := schema.New("verification", "", 1,
		schema.Field("subject", schema.TypeAddress),
		schema.Field("note", schema.TypeString),
	)
	require.NoError(t, err)
	words, err := abi.Serialize(sch, []abi.Value{abi.AddressValue(subject), abi.StringValue(note)})
	require.NoError(t, err)
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.String()
	}
	return out
}

func createAttestation(t *testing.T, router http.Handler) uint64 {
	t.Helper()
	subject, err := id.ParseAddress("0x01")
	require.NoError(t, err)
	rec := doJSON(t, router, http.MethodPost, "/schemas/verification/attestations", map[string]any{
		"subject":  "0x01",
		"elements": noteElements(t, subject, "hi"),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)
	return resp.ID
}

func TestRegisterSchema(t *testing.T) {
	router, reg := newTestRouter(t)
	registerNoteSchema(t, router)

	_, ok := reg.Get("verification")
	assert.True(t, ok)

	// Duplicate registration conflicts.
	doc := schema.Document{Name: "verification", Version: 1, Fields: []schema.FieldDocument{
		{Name: "subject", Type: string(schema.TypeAddress), Required: true},
	}}
	rec := doJSON(t, router, http.MethodPost, "/schemas", doc)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterSchemaRejectsInvalidDocument(t *testing.T) {
	router, _ := newTestRouter(t)

	doc := schema.Document{Name: "", Version: 1}
	rec := doJSON(t, router, http.MethodPost, "/schemas", doc)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty_name")
}

func TestSchemaIntrospectionRoutes(t *testing.T) {
	router, _ := newTestRouter(t)
	registerNoteSchema(t, router)

	rec := doJSON(t, router, http.MethodGet, "/schemas", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "verification")

	rec = doJSON(t, router, http.MethodGet, "/schemas/verification", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var doc schema.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "verification", doc.Name)
	require.Len(t, doc.Fields, 2)

	rec = doJSON(t, router, http.MethodGet, "/schemas/verification/text", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name": "verification"`)

	rec = doJSON(t, router, http.MethodGet, "/schemas/verification/abi", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var abiResp abi.StructABI
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &abiResp))
	assert.Equal(t, 2, abiResp.FieldCount())

	rec = doJSON(t, router, http.MethodGet, "/schemas/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAndFetchAttestation(t *testing.T) {
	router, _ := newTestRouter(t)
	registerNoteSchema(t, router)
	attID := createAttestation(t, router)

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/schemas/verification/attestations/%d", attID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.AttestationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, attID, resp.ID)
	assert.Equal(t, testAttester, resp.Attester)
	assert.Equal(t, "0x1", resp.Subject)
	assert.NotEmpty(t, resp.PayloadHash)
	assert.False(t, resp.Revoked)
}

func TestCreateAttestationValidation(t *testing.T) {
	router, _ := newTestRouter(t)
	registerNoteSchema(t, router)

	// Missing subject.
	rec := doJSON(t, router, http.MethodPost, "/schemas/verification/attestations", map[string]any{
		"elements": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Elements that do not conform to the schema.
	rec = doJSON(t, router, http.MethodPost, "/schemas/verification/attestations", map[string]any{
		"subject":  "0x01",
		"elements": []string{abi.WordFromUint64(1).String()},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "truncated_input")

	// Malformed hex element.
	rec = doJSON(t, router, http.MethodPost, "/schemas/verification/attestations", map[string]any{
		"subject":  "0x01",
		"elements": []string{"0xzz"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyAndRevoke(t *testing.T) {
	router, _ := newTestRouter(t)
	registerNoteSchema(t, router)
	attID := createAttestation(t, router)

	verifyPath := fmt.Sprintf("/schemas/verification/attestations/%d/verify", attID)
	rec := doJSON(t, router, http.MethodGet, verifyPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid": true}`, rec.Body.String())

	revokePath := fmt.Sprintf("/schemas/verification/attestations/%d/revoke", attID)
	rec = doJSON(t, router, http.MethodPost, revokePath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.AttestationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Revoked)
	assert.NotNil(t, resp.RevokedAt)

	rec = doJSON(t, router, http.MethodGet, verifyPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid": false}`, rec.Body.String())

	// Second revoke conflicts.
	rec = doJSON(t, router, http.MethodPost, revokePath, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already_revoked")
}

func TestVerifyUnknownID(t *testing.T) {
	router, _ := newTestRouter(t)
	registerNoteSchema(t, router)

	rec := doJSON(t, router, http.MethodGet, "/schemas/verification/attestations/999/verify", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid": false}`, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/schemas/verification/attestations/0/verify", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListings(t *testing.T) {
	router, _ := newTestRouter(t)
	registerNoteSchema(t, router)
	attID := createAttestation(t, router)

	rec := doJSON(t, router, http.MethodGet, "/schemas/verification/subjects/0x01/attestations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list handler.IDListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, []uint64{attID}, list.AttestationIDs)

	rec = doJSON(t, router, http.MethodGet, "/schemas/verification/attesters/"+testAttester+"/attestations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list = handler.IDListResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, []uint64{attID}, list.AttestationIDs)

	// A subject with no attestations lists empty.
	rec = doJSON(t, router, http.MethodGet, "/schemas/verification/subjects/0x77/attestations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list = handler.IDListResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.AttestationIDs)
}
