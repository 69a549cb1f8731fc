// Package requestid carries a per-request correlation id through contexts
// so log lines and backend calls of one page view can be matched up.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header used to propagate the id.
const Header = "X-Request-ID"

type contextKey string

const idKey contextKey = "requestID"

// With returns a copy of ctx carrying id.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey, id)
}

// FromContext returns the id stored in ctx, if any.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(idKey).(string)
	return id, ok && id != ""
}

// Ensure returns the id in ctx, generating and attaching a new one if missing.
func Ensure(ctx context.Context) (context.Context, string) {
	if id, ok := FromContext(ctx); ok {
		return ctx, id
	}
	id := uuid.NewString()
	return With(ctx, id), id
}
