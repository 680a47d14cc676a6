// Package ports defines the boundary interfaces the decision pipeline depends
// on. The pipeline never sees a concrete store, cache, or broker; adapters
// live next to their infrastructure and are injected at wiring time.
package ports

import (
	"context"
	"time"

	"dermis/internal/careplan"
	"dermis/internal/profile"
	"dermis/internal/recommend"
	id "dermis/pkg/domain"
)

// ProfileStore persists versioned profile snapshots.
type ProfileStore interface {
	// Latest returns the most recent snapshot for the user.
	// Returns sentinel.ErrNotFound when the user has no profile yet.
	Latest(ctx context.Context, userID id.UserID) (*profile.SkinProfile, error)

	// Save appends a new snapshot. Returns sentinel.ErrVersionConflict when a
	// snapshot with the same version already exists.
	Save(ctx context.Context, snap profile.SkinProfile) error
}

// RuleSource supplies the validated recommendation rule set.
type RuleSource interface {
	Rules(ctx context.Context) (*recommend.RuleSet, error)
}

// TemplateSource supplies care plan templates in precedence order.
type TemplateSource interface {
	Templates(ctx context.Context) ([]careplan.Template, error)
}

// PlanCache stores computed plans and recommendations keyed by user and
// profile version. Implementations are best-effort: the pipeline treats every
// returned error as a log line, never a failure.
type PlanCache interface {
	GetPlan(ctx context.Context, userID id.UserID, version id.ProfileVersion) ([]byte, error)
	SetPlan(ctx context.Context, userID id.UserID, version id.ProfileVersion, payload []byte) error
	GetRecommendations(ctx context.Context, userID id.UserID, version id.ProfileVersion) ([]byte, error)
	SetRecommendations(ctx context.Context, userID id.UserID, version id.ProfileVersion, payload []byte) error

	// InvalidateUser drops every cached entry for versions 1 through latest.
	InvalidateUser(ctx context.Context, userID id.UserID, latest id.ProfileVersion) error
}

// AuditPublisher emits decision events to an external log. Best-effort and
// non-blocking; the pipeline never waits on delivery.
type AuditPublisher interface {
	Publish(ctx context.Context, event DecisionEvent)
}

// DecisionEvent is one audit record of a pipeline decision.
type DecisionEvent struct {
	RequestID      string    `json:"request_id"`
	UserID         string    `json:"user_id"`
	ProfileVersion int       `json:"profile_version"`
	Topic          string    `json:"topic,omitempty"`
	RuleID         string    `json:"rule_id"`
	TemplateID     string    `json:"template_id"`
	RebuildReason  string    `json:"rebuild_reason"`
	SafetyLock     bool      `json:"safety_lock"`
	OccurredAt     time.Time `json:"occurred_at"`
}
