// Package requesttime provides middleware for request-scoped time. All
// operations within a single HTTP request observe the same "now", so profile
// timestamps and audit events within one submission never disagree.
package requesttime

import (
	"net/http"
	"time"

	"dermis/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request and stores
// it in the context for consistent time references throughout the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
