// Package requestcontext carries per-request metadata through context.Context.
package requestcontext

import (
	"context"

	"attestry/pkg/domain"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	attesterKey  contextKey = "attester"
)

// WithRequestID returns a context carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request ID from the context, or "" if absent.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithAttester returns a context carrying the authenticated attester address.
func WithAttester(ctx context.Context, attester domain.Address) context.Context {
	return context.WithValue(ctx, attesterKey, attester)
}

// Attester returns the authenticated attester address, or the zero address if absent.
func Attester(ctx context.Context) domain.Address {
	if v, ok := ctx.Value(attesterKey).(domain.Address); ok {
		return v
	}
	return domain.Address{}
}
