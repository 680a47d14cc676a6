// Package requestid provides correlation ID middleware. Every request gets a
// request ID, honoring X-Request-ID from upstream proxies when present.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"dermis/pkg/requestcontext"
)

// Header is the inbound/outbound correlation header.
const Header = "X-Request-ID"

// Middleware stores the request's correlation ID in the context and echoes it
// back on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
