package request

import (
	"context"

	"attestry/pkg/requestcontext"
)

// GetRequestID returns the request ID set by the RequestID middleware, or ""
// when the request did not pass through it.
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}
