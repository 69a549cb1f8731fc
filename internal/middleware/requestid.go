package middleware

import (
	"net/http"

	"github.com/passgen/passgen-frontend/internal/requestid"
)

// RequestID attaches a correlation id to the request context and response.
// An incoming X-Request-ID header is reused.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := r.Header.Get(requestid.Header); id != "" {
			ctx = requestid.With(ctx, id)
		}
		ctx, id := requestid.Ensure(ctx)

		w.Header().Set(requestid.Header, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
