// Package pipeline orchestrates the decision core: it gathers pipeline inputs,
// assembles the domain context, runs the matcher, selector, validator, and
// retake resolution, and persists the resulting profile version.
//
// The core itself is pure; this package owns every side effect around it.
// Cache writes are best-effort and never fail an evaluation.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"dermis/internal/answers"
	"dermis/internal/careplan"
	"dermis/internal/catalog"
	"dermis/internal/domainctx"
	"dermis/internal/pipeline/metrics"
	"dermis/internal/pipeline/ports"
	"dermis/internal/profile"
	"dermis/internal/recommend"
	"dermis/internal/retake"
	id "dermis/pkg/domain"
	dErrors "dermis/pkg/domain-errors"
	"dermis/pkg/platform/sentinel"
	"dermis/pkg/requestcontext"
)

const gatherTimeout = 3 * time.Second

// Service runs the decision pipeline end to end.
type Service struct {
	profiles  ports.ProfileStore
	rules     ports.RuleSource
	templates ports.TemplateSource
	catalog   CatalogSource

	logger  *slog.Logger
	metrics *metrics.Metrics
	cache   ports.PlanCache
	audit   ports.AuditPublisher
	tracer  trace.Tracer
}

// CatalogSource supplies the catalog reference a decision is made against.
type CatalogSource interface {
	Ref(ctx context.Context) (catalog.Ref, error)
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithCache(cache ports.PlanCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithAudit(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.audit = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service. Logger, metrics, cache, and audit are optional;
// the pipeline is fully usable with none of them wired.
func New(profiles ports.ProfileStore, rules ports.RuleSource, templates ports.TemplateSource, catalog CatalogSource, opts ...Option) *Service {
	s := &Service{
		profiles:  profiles,
		rules:     rules,
		templates: templates,
		catalog:   catalog,
		logger:    slog.Default(),
		tracer:    otel.Tracer("dermis/pipeline"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EvaluateRequest is one questionnaire submission, full or topic-scoped.
type EvaluateRequest struct {
	UserID       id.UserID
	Answers      answers.Map
	Topic        string
	ChangedCodes []string
}

// EvaluateResult is the full pipeline outcome for one submission.
type EvaluateResult struct {
	Context         domainctx.Context
	Profile         profile.SkinProfile
	Rule            recommend.Rule
	UsedDefaultRule bool
	Plan            careplan.Template
	Validation      profile.ValidationResult
	Rebuild         retake.RebuildDecision
	SafetyLock      bool
}

// Evaluate runs the full pipeline for a submission: gather inputs, build the
// domain context, match a rule, select a plan template, validate, resolve the
// rebuild/safety-lock decision, persist the new profile version, and cache the
// outputs best-effort.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResult, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveEvaluateLatency(time.Since(start)) }()

	ctx, span := s.tracer.Start(ctx, "pipeline.Evaluate")
	defer span.End()
	span.SetAttributes(
		attribute.String("user_id", req.UserID.String()),
		attribute.String("topic", req.Topic),
	)

	if req.UserID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	if len(req.Answers) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "answers are required")
	}

	in, err := s.gather(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	version := id.ProfileVersion(0).Next()
	if in.prior != nil {
		version = in.prior.Version.Next()
	}

	meta := domainctx.Meta{
		RequestID:      requestcontext.RequestID(ctx),
		UserID:         req.UserID,
		ProfileVersion: version,
		Topic:          req.Topic,
		GeneratedAt:    requestcontext.Now(ctx),
	}
	dctx := domainctx.Build(meta, req.Answers, in.prior, in.catalogRef)

	// Topic-scoped retakes inherit every axis the topic does not declare.
	if req.Topic != "" && in.prior != nil && !retake.ShouldRecreateProfileForTopic(req.Topic, req.ChangedCodes) {
		scoped := retake.RecalculateAxesScoped(req.Topic, domainctx.ToRecord(dctx.RawAnswers), in.prior.Axes)
		dctx.Axes = scoped
		dctx.Profile.Axes = scoped
	}

	result := &EvaluateResult{Context: dctx, Profile: dctx.Profile}

	rule, matched := recommend.Match(domainctx.Flatten(dctx), in.rules.Rules)
	if !matched {
		rule = in.rules.Default
		result.UsedDefaultRule = true
	}
	result.Rule = rule

	plan, ok := careplan.Select(careplan.Input{
		SkinType:          dctx.Profile.SkinType,
		Goals:             dctx.Profile.MainGoals,
		Sensitivity:       dctx.Profile.Sensitivity,
		RoutineComplexity: dctx.Profile.RoutineComplexity,
		DryBias:           domainctx.DryBias(dctx),
		OilyBias:          domainctx.OilyBias(dctx),
	}, in.templates)
	if !ok {
		// Unreachable with a template set that carries its catch-all.
		return nil, dErrors.New(dErrors.CodeInternal, "no care plan template matched")
	}
	result.Plan = plan

	result.Validation = profile.Validate(dctx.Profile)
	result.Rebuild = retake.RequiresPlanRebuild(req.Topic, in.prior, dctx.Profile)
	result.SafetyLock = retake.RequiresSafetyLock(in.prior, dctx.Profile)

	if err := s.profiles.Save(ctx, dctx.Profile); err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) || errors.Is(err, sentinel.ErrVersionConflict) {
			// A concurrent submission won the version race. Both computed the
			// same decision from the same inputs; surface the conflict so the
			// caller retries against the new snapshot.
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "profile version conflict")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist profile")
	}

	s.writeCaches(ctx, result, version)
	s.observe(ctx, req, result, version)

	return result, nil
}

// writeCaches performs the best-effort cache writes. Failures are logged and
// swallowed; the decision already happened and must not be retried for a
// cache's sake.
func (s *Service) writeCaches(ctx context.Context, res *EvaluateResult, version id.ProfileVersion) {
	if s.cache == nil {
		return
	}

	if res.SafetyLock || res.Rebuild.Requires {
		if err := s.cache.InvalidateUser(ctx, res.Profile.UserID, version); err != nil {
			s.logger.WarnContext(ctx, "cache invalidation failed",
				"user_id", res.Profile.UserID,
				"error", err,
			)
		}
	}

	if payload, err := json.Marshal(res.Plan); err == nil {
		if err := s.cache.SetPlan(ctx, res.Profile.UserID, version, payload); err != nil {
			s.metrics.IncrementCacheWriteFailure("plan")
			s.logger.WarnContext(ctx, "plan cache write failed",
				"user_id", res.Profile.UserID,
				"profile_version", int(version),
				"error", err,
			)
		}
	}
	if payload, err := json.Marshal(res.Rule); err == nil {
		if err := s.cache.SetRecommendations(ctx, res.Profile.UserID, version, payload); err != nil {
			s.metrics.IncrementCacheWriteFailure("recommendations")
			s.logger.WarnContext(ctx, "recommendations cache write failed",
				"user_id", res.Profile.UserID,
				"profile_version", int(version),
				"error", err,
			)
		}
	}
}

func (s *Service) observe(ctx context.Context, req EvaluateRequest, res *EvaluateResult, version id.ProfileVersion) {
	s.metrics.IncrementOutcome(string(res.Rebuild.Reason), res.SafetyLock)
	for _, sc := range res.Context.Axes {
		s.metrics.ObserveAxisSeverity(string(sc.Axis), string(sc.Level))
	}

	if s.audit != nil {
		s.audit.Publish(ctx, ports.DecisionEvent{
			RequestID:      res.Context.Meta.RequestID,
			UserID:         req.UserID.String(),
			ProfileVersion: int(version),
			Topic:          req.Topic,
			RuleID:         res.Rule.ID,
			TemplateID:     res.Plan.ID,
			RebuildReason:  string(res.Rebuild.Reason),
			SafetyLock:     res.SafetyLock,
			OccurredAt:     res.Context.Meta.GeneratedAt,
		})
	}

	s.logger.InfoContext(ctx, "pipeline evaluated",
		"request_id", res.Context.Meta.RequestID,
		"user_id", req.UserID,
		"profile_version", int(version),
		"topic", req.Topic,
		"rule_id", res.Rule.ID,
		"template_id", res.Plan.ID,
		"rebuild_reason", res.Rebuild.Reason,
		"safety_lock", res.SafetyLock,
		"valid", res.Validation.IsValid,
	)
}
