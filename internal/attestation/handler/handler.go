package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"attestry/internal/attestation/service"
	"attestry/internal/schema"
	id "attestry/pkg/domain"
	dErrors "attestry/pkg/domain-errors"
	"attestry/pkg/platform/httputil"
	request "attestry/pkg/platform/middleware/request"
)

// maxSchemaDocumentBytes bounds the body of schema registration requests.
const maxSchemaDocumentBytes = 1 << 20

// Registry is the instance lookup the handler routes requests through.
type Registry interface {
	Register(inst *service.Instance) error
	Get(name string) (*service.Instance, bool)
	Names() []string
}

// InstanceFactory builds a new schema instance during registration. Wiring
// (store, resolver, metrics) is the caller's concern.
type InstanceFactory func(name string, sch *schema.Schema) (*service.Instance, error)

type Handler struct {
	registry    Registry
	newInstance InstanceFactory
	logger      *slog.Logger
}

func New(registry Registry, newInstance InstanceFactory, logger *slog.Logger) *Handler {
	return &Handler{registry: registry, newInstance: newInstance, logger: logger}
}

// Register mounts the routes. Mutating routes go through requireAuth; reads
// are public.
func (h *Handler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/schemas", h.HandleListSchemas)
	r.Get("/schemas/{instance}", h.HandleGetSchema)
	r.Get("/schemas/{instance}/text", h.HandleGetSchemaText)
	r.Get("/schemas/{instance}/abi", h.HandleGetSchemaABI)
	r.Get("/schemas/{instance}/attestations/{id}", h.HandleGetAttestation)
	r.Get("/schemas/{instance}/attestations/{id}/verify", h.HandleVerify)
	r.Get("/schemas/{instance}/subjects/{subject}/attestations", h.HandleListBySubject)
	r.Get("/schemas/{instance}/attesters/{attester}/attestations", h.HandleListByAttester)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/schemas", h.HandleRegisterSchema)
		r.Post("/schemas/{instance}/attestations", h.HandleCreateAttestation)
		r.Post("/schemas/{instance}/attestations/{id}/revoke", h.HandleRevoke)
	})
}

// HandleRegisterSchema registers a new schema instance from its JSON document.
func (h *Handler) HandleRegisterSchema(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSchemaDocumentBytes))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "failed to read request body"))
		return
	}

	sch, err := schema.ParseDocument(body)
	if err != nil {
		h.logger.WarnContext(ctx, "schema document rejected", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	inst, err := h.newInstance(sch.Name, sch)
	if err != nil {
		h.logger.ErrorContext(ctx, "schema instance construction failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	if err := h.registry.Register(inst); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "schema registered",
		"instance", inst.InstanceName(),
		"version", sch.Version,
		"request_id", requestID,
	)
	httputil.WriteJSON(w, http.StatusCreated, toRegisterSchemaResponse(inst))
}

// HandleListSchemas returns the registered instance names.
func (h *Handler) HandleListSchemas(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, &SchemaListResponse{Instances: h.registry.Names()})
}

// HandleGetSchema returns the instance's schema document.
func (h *Handler) HandleGetSchema(w http.ResponseWriter, r *http.Request) {
	inst, ok := h.instance(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, inst.Schema().ToDocument())
}

// HandleGetSchemaText returns the schema's text rendering verbatim.
func (h *Handler) HandleGetSchemaText(w http.ResponseWriter, r *http.Request) {
	inst, ok := h.instance(w, r)
	if !ok {
		return
	}
	text, err := inst.SchemaText()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// HandleGetSchemaABI returns the flattened ABI projection.
func (h *Handler) HandleGetSchemaABI(w http.ResponseWriter, r *http.Request) {
	inst, ok := h.instance(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, inst.ABI())
}

// HandleCreateAttestation issues an attestation on the instance. The attester
// is the authenticated caller.
func (h *Handler) HandleCreateAttestation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	inst, ok := h.instance(w, r)
	if !ok {
		return
	}
	attester, err := httputil.RequireAttester(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[CreateAttestationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	cmd, err := req.ToCommand(attester)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := inst.CreateAttestation(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "create attestation failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toAttestationResponse(record))
}

// HandleGetAttestation returns one attestation record.
func (h *Handler) HandleGetAttestation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	inst, ok := h.instance(w, r)
	if !ok {
		return
	}
	attID, ok := h.attestationID(w, r)
	if !ok {
		return
	}

	record, err := inst.GetAttestation(ctx, attID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get attestation failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAttestationResponse(record))
}

// HandleVerify reports current validity. The verdict is a plain boolean; every
// failure mode reads as false rather than an error status.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	inst, ok := h.instance(w, r)
	if !ok {
		return
	}
	attID, ok := h.attestationID(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &VerifyResponse{Valid: inst.Verify(r.Context(), attID)})
}

// HandleRevoke revokes an attestation on behalf of the authenticated attester.
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	inst, ok := h.instance(w, r)
	if !ok {
		return
	}
	attID, ok := h.attestationID(w, r)
	if !ok {
		return
	}
	attester, err := httputil.RequireAttester(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := inst.Revoke(ctx, attester, attID)
	if err != nil {
		h.logger.ErrorContext(ctx, "revoke attestation failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAttestationResponse(record))
}

// HandleListBySubject returns the subject's attestation ids in creation order.
func (h *Handler) HandleListBySubject(w http.ResponseWriter, r *http.Request) {
	inst, ok := h.instance(w, r)
	if !ok {
		return
	}
	subject, err := id.ParseAddress(chi.URLParam(r, "subject"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid subject address"))
		return
	}

	ids, err := inst.AttestationsFor(r.Context(), subject)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toIDListResponse(ids))
}

// HandleListByAttester returns the attester's issued ids in creation order.
func (h *Handler) HandleListByAttester(w http.ResponseWriter, r *http.Request) {
	inst, ok := h.instance(w, r)
	if !ok {
		return
	}
	attester, err := id.ParseAddress(chi.URLParam(r, "attester"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid attester address"))
		return
	}

	ids, err := inst.AttestationsBy(r.Context(), attester)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toIDListResponse(ids))
}

func (h *Handler) instance(w http.ResponseWriter, r *http.Request) (*service.Instance, bool) {
	name := chi.URLParam(r, "instance")
	inst, ok := h.registry.Get(name)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown schema instance"))
		return nil, false
	}
	return inst, true
}

func (h *Handler) attestationID(w http.ResponseWriter, r *http.Request) (id.AttestationID, bool) {
	raw := chi.URLParam(r, "id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid attestation id"))
		return 0, false
	}
	return id.AttestationID(parsed), true
}
