// Package httptransport assembles the public HTTP surface: middleware stack,
// health probes, and the attestation routes.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"attestry/internal/attestation/handler"
	"attestry/internal/platform/health"
	"attestry/pkg/platform/middleware/auth"
	request "attestry/pkg/platform/middleware/request"
)

// NewRouter wires all public endpoints with middleware.
// Uses chi router for better middleware support and routing.
func NewRouter(h *handler.Handler, healthHandler *health.Handler, validator auth.TokenValidator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(logger))
	r.Use(request.Timeout(30 * time.Second))
	r.Use(request.ContentTypeJSON)

	healthHandler.Register(r)
	h.Register(r, auth.RequireAuth(validator, logger))

	return r
}
