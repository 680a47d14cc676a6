// Package handler exposes the decision pipeline over HTTP. Handlers stay
// thin: decode and validate, call the service, map the result. Transport
// carries no decision logic.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dermis/internal/pipeline"
	"dermis/pkg/platform/httputil"
	"dermis/pkg/platform/middleware/metadata"
	"dermis/pkg/requestcontext"
)

// Service defines the pipeline operations the handler needs.
type Service interface {
	Evaluate(ctx context.Context, req pipeline.EvaluateRequest) (*pipeline.EvaluateResult, error)
}

// Handler wires pipeline endpoints to the pipeline service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a pipeline handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts pipeline endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/profile/evaluate", h.HandleEvaluate)
	r.Post("/v1/profile/retake", h.HandleRetake)
}

// HandleEvaluate handles POST /v1/profile/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Evaluate(ctx, pipeline.EvaluateRequest{
		UserID:  req.parsedUserID,
		Answers: req.parsedAnswers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "profile evaluation failed",
			"request_id", requestID,
			"user_id", req.UserID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "profile evaluated",
		"request_id", requestID,
		"user_id", req.UserID,
		"client_ip", metadata.GetClientIP(ctx),
		"profile_version", int(result.Profile.Version),
		"rule_id", result.Rule.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleRetake handles POST /v1/profile/retake requests.
func (h *Handler) HandleRetake(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[RetakeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Evaluate(ctx, pipeline.EvaluateRequest{
		UserID:       req.parsedUserID,
		Answers:      req.parsedAnswers,
		Topic:        req.Topic,
		ChangedCodes: req.ChangedCodes,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "profile retake failed",
			"request_id", requestID,
			"user_id", req.UserID,
			"topic", req.Topic,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "profile retaken",
		"request_id", requestID,
		"user_id", req.UserID,
		"client_ip", metadata.GetClientIP(ctx),
		"topic", req.Topic,
		"profile_version", int(result.Profile.Version),
		"rebuild_reason", result.Rebuild.Reason,
		"safety_lock", result.SafetyLock,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}
