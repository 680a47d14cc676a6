package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"dermis/internal/answers"
	"dermis/internal/axis"
	"dermis/internal/careplan"
	"dermis/internal/catalog"
	"dermis/internal/pipeline/ports"
	"dermis/internal/profile/store"
	"dermis/internal/recommend"
	"dermis/internal/retake"
	id "dermis/pkg/domain"
	dErrors "dermis/pkg/domain-errors"
	"dermis/pkg/requestcontext"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeRuleSource struct {
	set *recommend.RuleSet
	err error
}

func (f *fakeRuleSource) Rules(context.Context) (*recommend.RuleSet, error) {
	return f.set, f.err
}

type fakeTemplateSource struct {
	templates []careplan.Template
	err       error
}

func (f *fakeTemplateSource) Templates(context.Context) ([]careplan.Template, error) {
	return f.templates, f.err
}

type fakeCatalogSource struct{}

func (fakeCatalogSource) Ref(context.Context) (catalog.Ref, error) {
	return catalog.Ref{ID: "cat", Version: "v1", Size: 3}, nil
}

type cacheCall struct {
	kind    string
	version id.ProfileVersion
}

type fakeCache struct {
	calls       []cacheCall
	invalidated []id.ProfileVersion
	failWrites  bool
}

func (f *fakeCache) GetPlan(context.Context, id.UserID, id.ProfileVersion) ([]byte, error) {
	return nil, dErrors.New(dErrors.CodeNotFound, "miss")
}

func (f *fakeCache) SetPlan(_ context.Context, _ id.UserID, v id.ProfileVersion, _ []byte) error {
	f.calls = append(f.calls, cacheCall{kind: "plan", version: v})
	if f.failWrites {
		return dErrors.New(dErrors.CodeUnavailable, "cache down")
	}
	return nil
}

func (f *fakeCache) GetRecommendations(context.Context, id.UserID, id.ProfileVersion) ([]byte, error) {
	return nil, dErrors.New(dErrors.CodeNotFound, "miss")
}

func (f *fakeCache) SetRecommendations(_ context.Context, _ id.UserID, v id.ProfileVersion, _ []byte) error {
	f.calls = append(f.calls, cacheCall{kind: "recommendations", version: v})
	if f.failWrites {
		return dErrors.New(dErrors.CodeUnavailable, "cache down")
	}
	return nil
}

func (f *fakeCache) InvalidateUser(_ context.Context, _ id.UserID, latest id.ProfileVersion) error {
	f.invalidated = append(f.invalidated, latest)
	return nil
}

type fakeAudit struct {
	events []ports.DecisionEvent
}

func (f *fakeAudit) Publish(_ context.Context, e ports.DecisionEvent) {
	f.events = append(f.events, e)
}

// ---------------------------------------------------------------------------
// Suite
// ---------------------------------------------------------------------------

type ServiceSuite struct {
	suite.Suite
	profiles *store.Memory
	cache    *fakeCache
	audit    *fakeAudit
	service  *Service
	userID   id.UserID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	set, err := recommend.ParseRulesJSON([]byte(`{
		"rules": [
			{
				"id": "acne_oily_high",
				"priority": 100,
				"conditions": {
					"skin_type": ["oily", "combination_oily"],
					"inflammation": {"gte": 55},
					"main_goals": {"hasSome": ["acne"]}
				},
				"steps": [{"category": "cleanser"}, {"category": "treatment"}]
			},
			{
				"id": "default_general",
				"priority": 0,
				"steps": [{"category": "cleanser"}, {"category": "moisturizer"}]
			}
		],
		"default_rule_id": "default_general"
	}`))
	s.Require().NoError(err)

	s.profiles = store.NewMemory()
	s.cache = &fakeCache{}
	s.audit = &fakeAudit{}
	s.userID = id.UserID(uuid.New())

	s.service = New(
		s.profiles,
		&fakeRuleSource{set: set},
		&fakeTemplateSource{templates: careplan.Builtin()},
		fakeCatalogSource{},
		WithCache(s.cache),
		WithAudit(s.audit),
	)
}

func (s *ServiceSuite) ctx() context.Context {
	ctx := requestcontext.WithRequestID(context.Background(), "req-1")
	return requestcontext.WithTime(ctx, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func oilyAcneAnswers() answers.Map {
	return answers.FromAnyMap(map[string]any{
		"skin_type":   "oily",
		"concerns":    []any{"Акне"},
		"diagnoses":   []any{"акне"},
		"acne_level":  4,
		"goals":       []any{"acne"},
		"sensitivity": "medium",
	})
}

// =============================================================================
// Evaluate: full submissions
// =============================================================================

func (s *ServiceSuite) TestFirstSubmissionCreatesVersionOne() {
	res, err := s.service.Evaluate(s.ctx(), EvaluateRequest{UserID: s.userID, Answers: oilyAcneAnswers()})
	s.Require().NoError(err)

	s.Equal(id.ProfileVersion(1), res.Profile.Version)
	s.Equal(retake.ReasonProfileCreated, res.Rebuild.Reason)
	s.True(res.Rebuild.Requires)
	s.True(res.SafetyLock, "no prior profile locks conservatively")

	stored, err := s.profiles.Latest(context.Background(), s.userID)
	s.Require().NoError(err)
	s.Equal(id.ProfileVersion(1), stored.Version)
}

func (s *ServiceSuite) TestMatchesSpecificRuleAndTemplate() {
	res, err := s.service.Evaluate(s.ctx(), EvaluateRequest{UserID: s.userID, Answers: oilyAcneAnswers()})
	s.Require().NoError(err)

	s.Equal("acne_oily_high", res.Rule.ID)
	s.False(res.UsedDefaultRule)
	s.Equal("acne_oily_basic", res.Plan.ID)

	// The inflammation axis drives the rule: oily skin, acne concern,
	// diagnosis, and level 4 stack past the threshold.
	inflammation := axis.ByName(res.Context.Axes)[axis.Inflammation]
	s.GreaterOrEqual(inflammation.Value, 90)
	s.Equal(axis.LevelCritical, inflammation.Level)
}

func (s *ServiceSuite) TestFallsBackToDefaultRule() {
	calm := answers.FromAnyMap(map[string]any{
		"skin_type": "normal",
		"goals":     []any{"general_care"},
	})
	res, err := s.service.Evaluate(s.ctx(), EvaluateRequest{UserID: s.userID, Answers: calm})
	s.Require().NoError(err)

	s.Equal("default_general", res.Rule.ID)
	s.True(res.UsedDefaultRule)
	s.Equal("default_balanced", res.Plan.ID)
}

func (s *ServiceSuite) TestResubmissionIncrementsVersion() {
	ctx := s.ctx()
	_, err := s.service.Evaluate(ctx, EvaluateRequest{UserID: s.userID, Answers: oilyAcneAnswers()})
	s.Require().NoError(err)

	res, err := s.service.Evaluate(ctx, EvaluateRequest{UserID: s.userID, Answers: oilyAcneAnswers()})
	s.Require().NoError(err)
	s.Equal(id.ProfileVersion(2), res.Profile.Version)
	s.Equal(retake.ReasonNone, res.Rebuild.Reason, "identical resubmission changes nothing")
	s.False(res.SafetyLock)
}

func (s *ServiceSuite) TestCriticalChangeOnResubmission() {
	ctx := s.ctx()
	_, err := s.service.Evaluate(ctx, EvaluateRequest{UserID: s.userID, Answers: oilyAcneAnswers()})
	s.Require().NoError(err)

	changed := oilyAcneAnswers()
	changed["pregnancy_status"] = answers.FromAny("pregnant")
	res, err := s.service.Evaluate(ctx, EvaluateRequest{UserID: s.userID, Answers: changed})
	s.Require().NoError(err)

	s.Equal(retake.ReasonCriticalChange, res.Rebuild.Reason)
	s.True(res.SafetyLock)
	s.Contains(s.cache.invalidated, id.ProfileVersion(2))
}

func (s *ServiceSuite) TestInputValidation() {
	_, err := s.service.Evaluate(s.ctx(), EvaluateRequest{Answers: oilyAcneAnswers()})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = s.service.Evaluate(s.ctx(), EvaluateRequest{UserID: s.userID})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestGatherFailurePropagates() {
	svc := New(
		s.profiles,
		&fakeRuleSource{err: dErrors.New(dErrors.CodeUnavailable, "rules store down")},
		&fakeTemplateSource{templates: careplan.Builtin()},
		fakeCatalogSource{},
	)
	_, err := svc.Evaluate(s.ctx(), EvaluateRequest{UserID: s.userID, Answers: oilyAcneAnswers()})
	s.Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

// =============================================================================
// Cache behavior
// =============================================================================

func (s *ServiceSuite) TestCacheWritesAreVersionScoped() {
	_, err := s.service.Evaluate(s.ctx(), EvaluateRequest{UserID: s.userID, Answers: oilyAcneAnswers()})
	s.Require().NoError(err)

	s.Require().Len(s.cache.calls, 2)
	for _, call := range s.cache.calls {
		s.Equal(id.ProfileVersion(1), call.version)
	}
}

func (s *ServiceSuite) TestCacheFailureNeverFailsEvaluation() {
	s.cache.failWrites = true
	res, err := s.service.Evaluate(s.ctx(), EvaluateRequest{UserID: s.userID, Answers: oilyAcneAnswers()})
	s.Require().NoError(err)
	s.NotNil(res)

	// The profile was still persisted.
	_, err = s.profiles.Latest(context.Background(), s.userID)
	s.NoError(err)
}

func (s *ServiceSuite) TestRunsWithNoCacheAtAll() {
	svc := New(
		store.NewMemory(),
		&fakeRuleSource{set: mustRules(s.T())},
		&fakeTemplateSource{templates: careplan.Builtin()},
		fakeCatalogSource{},
	)
	res, err := svc.Evaluate(s.ctx(), EvaluateRequest{UserID: s.userID, Answers: oilyAcneAnswers()})
	s.Require().NoError(err)
	s.NotNil(res)
}

// =============================================================================
// Topic-scoped retakes
// =============================================================================

func (s *ServiceSuite) TestScopedRetakeInheritsUndeclaredAxes() {
	ctx := s.ctx()
	first, err := s.service.Evaluate(ctx, EvaluateRequest{UserID: s.userID, Answers: oilyAcneAnswers()})
	s.Require().NoError(err)

	// Retake only sun protection with answers that would, on a full submit,
	// move every axis.
	sun := answers.FromAnyMap(map[string]any{
		"skin_type":    "dry",
		"spf_usage":    "never",
		"sun_exposure": "high",
	})
	res, err := s.service.Evaluate(ctx, EvaluateRequest{
		UserID:       s.userID,
		Answers:      sun,
		Topic:        retake.TopicSunProtection,
		ChangedCodes: []string{"spf_usage", "sun_exposure"},
	})
	s.Require().NoError(err)

	priorBy := axis.ByName(first.Context.Axes)
	for _, sc := range res.Context.Axes {
		switch sc.Axis {
		case axis.Pigmentation, axis.Photoaging:
			// recomputed from the new answers
		default:
			s.Equal(priorBy[sc.Axis], sc, "axis %s must be inherited", sc.Axis)
		}
	}
}

func (s *ServiceSuite) TestScopedRetakeWithCriticalCodeRecreates() {
	ctx := s.ctx()
	first, err := s.service.Evaluate(ctx, EvaluateRequest{UserID: s.userID, Answers: oilyAcneAnswers()})
	s.Require().NoError(err)

	// The changed codes include a critical one, so scoped inheritance is
	// overridden and all axes come from the new answers.
	res, err := s.service.Evaluate(ctx, EvaluateRequest{
		UserID:       s.userID,
		Answers:      answers.FromAnyMap(map[string]any{"skin_type": "dry"}),
		Topic:        retake.TopicSunProtection,
		ChangedCodes: []string{"skin_type"},
	})
	s.Require().NoError(err)

	oiliness := axis.ByName(res.Context.Axes)[axis.Oiliness]
	s.NotEqual(axis.ByName(first.Context.Axes)[axis.Oiliness], oiliness)
	s.Equal(20, oiliness.Value)
}

// =============================================================================
// Observability
// =============================================================================

func (s *ServiceSuite) TestAuditEventCarriesDecision() {
	_, err := s.service.Evaluate(s.ctx(), EvaluateRequest{UserID: s.userID, Answers: oilyAcneAnswers()})
	s.Require().NoError(err)

	s.Require().Len(s.audit.events, 1)
	e := s.audit.events[0]
	s.Equal("req-1", e.RequestID)
	s.Equal(s.userID.String(), e.UserID)
	s.Equal(1, e.ProfileVersion)
	s.Equal("acne_oily_high", e.RuleID)
	s.Equal("acne_oily_basic", e.TemplateID)
	s.Equal(string(retake.ReasonProfileCreated), e.RebuildReason)
	s.True(e.SafetyLock)
}

func mustRules(t *testing.T) *recommend.RuleSet {
	t.Helper()
	set, err := recommend.ParseRulesJSON([]byte(`{
		"rules": [{"id": "default_general", "priority": 0, "steps": [{"category": "cleanser"}]}],
		"default_rule_id": "default_general"
	}`))
	if err != nil {
		t.Fatalf("parse rules: %v", err)
	}
	return set
}
