package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	id "attestry/pkg/domain"
	dErrors "attestry/pkg/domain-errors"
	"attestry/pkg/platform/middleware/auth"
)

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	// The response body may be incomplete, but headers are already sent.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteError centralizes domain error translation to HTTP responses.
// It translates transport-agnostic domain errors into HTTP status codes and error responses.
func WriteError(w http.ResponseWriter, err error) {
	// Try domain error first
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		status := DomainCodeToHTTPStatus(domainErr.Code)
		response := map[string]string{
			"error": string(domainErr.Code),
		}
		if domainErr.Message != "" {
			response["error_description"] = domainErr.Message
		}
		WriteJSON(w, status, response)
		return
	}

	// Fallback for unexpected errors
	WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error": string(dErrors.CodeInternal),
	})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput, dErrors.CodeInvariantViolation:
		return http.StatusBadRequest
	// Schema construction and payload decode failures are caller mistakes.
	case dErrors.CodeEmptyName, dErrors.CodeInvalidVariantSet, dErrors.CodeDuplicateFieldName,
		dErrors.CodeTruncatedInput, dErrors.CodeDiscriminantOutOfRange, dErrors.CodeTypeMismatch:
		return http.StatusBadRequest
	case dErrors.CodeConflict, dErrors.CodeAlreadyRevoked:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeDependencyCycleOrTooDeep:
		return http.StatusUnprocessableEntity
	case dErrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// RequireAttester extracts the authenticated attester address from context.
// Returns a domain error suitable for HTTP response on failure.
// This centralizes auth context extraction for handlers.
func RequireAttester(ctx context.Context, logger *slog.Logger, requestID string) (id.Address, error) {
	attester := auth.GetAttester(ctx)
	if attester.IsZero() {
		if logger != nil {
			logger.ErrorContext(ctx, "attester missing from context despite auth middleware",
				"request_id", requestID)
		}
		return id.Address{}, dErrors.New(dErrors.CodeInternal, "authentication context error")
	}
	return attester, nil
}
