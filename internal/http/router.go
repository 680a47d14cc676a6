// Package httpapi assembles the service router. Transport stays thin: the
// middleware stack sets request-scoped context, handlers delegate to the
// pipeline service, and operational endpoints live beside the API.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dermis/internal/pipeline/handler"
	"dermis/pkg/platform/httputil"
	"dermis/pkg/platform/middleware/metadata"
	"dermis/pkg/platform/middleware/requestid"
	"dermis/pkg/platform/middleware/requesttime"
)

// HealthChecker reports readiness of one backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// NewRouter wires all endpoints with the standard middleware stack.
func NewRouter(pipelineHandler *handler.Handler, health ...HealthChecker) http.Handler {
	r := chi.NewRouter()

	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)

	pipelineHandler.Register(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		for _, h := range health {
			if h == nil {
				continue
			}
			if err := h.Health(req.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
