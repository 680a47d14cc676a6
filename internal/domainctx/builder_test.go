package domainctx

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dermis/internal/answers"
	"dermis/internal/axis"
	"dermis/internal/catalog"
	"dermis/internal/profile"
	"dermis/internal/taxonomy"
	id "dermis/pkg/domain"
)

func testMeta() Meta {
	return Meta{
		RequestID:      "req-1",
		UserID:         id.UserID(uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")),
		ProfileVersion: 2,
		GeneratedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuild_AxesComeFromRawAnswersOnly(t *testing.T) {
	// Snapshot claims dry skin; the current answers say oily. Axes must follow
	// the answers, not the snapshot.
	snapshot := &profile.SkinProfile{SkinType: taxonomy.SkinTypeDry}
	raw := answers.Map{
		"skinType": answers.Scalar("oily"),
	}

	ctx := Build(testMeta(), raw, snapshot, catalog.Ref{ID: "cat", Version: "v1"})

	oiliness := axis.ByName(ctx.Axes)[axis.Oiliness]
	assert.Equal(t, 80, oiliness.Value, "oily answer must drive scoring: 50+30")
}

func TestBuild_AliasResolution(t *testing.T) {
	// All three SPF aliases must land on the same canonical field.
	for _, code := range []string{"spf_usage", "spf_frequency", "spfFrequency"} {
		raw := answers.Map{code: answers.Scalar("never"), "sun_exposure": answers.Scalar("high")}
		ctx := Build(testMeta(), raw, nil, catalog.Ref{})

		photo := axis.ByName(ctx.Axes)[axis.Photoaging]
		// never (+20) + high exposure (+20), no age evidence
		assert.Equal(t, 40, photo.Value, "alias %s", code)
		assert.Equal(t, "never", ctx.Profile.SPFHabit, "alias %s", code)
	}
}

func TestBuild_SnapshotSuppliesUntouchedFields(t *testing.T) {
	snapshot := &profile.SkinProfile{
		SkinType:        taxonomy.SkinTypeDry,
		PregnancyStatus: id.PregnancyPregnant,
		MainGoals:       []taxonomy.GoalKey{taxonomy.GoalHydration},
		Diagnoses:       []string{"розацеа"},
	}
	raw := answers.Map{
		"budget": answers.Scalar("premium"),
	}

	ctx := Build(testMeta(), raw, snapshot, catalog.Ref{})

	assert.Equal(t, id.PregnancyPregnant, ctx.Profile.PregnancyStatus, "untouched pregnancy carries forward")
	assert.Equal(t, taxonomy.SkinTypeDry, ctx.Profile.SkinType)
	assert.Equal(t, []taxonomy.GoalKey{taxonomy.GoalHydration}, ctx.Profile.MainGoals)
	assert.Equal(t, profile.BudgetSegment("premium"), ctx.Profile.BudgetSegment)
	assert.True(t, ctx.Medical.RosaceaRisk)
}

func TestBuild_NoUndefinedReachesConsumers(t *testing.T) {
	ctx := Build(testMeta(), answers.Map{}, nil, catalog.Ref{})

	p := ctx.Profile
	assert.Equal(t, taxonomy.SkinTypeAny, p.SkinType)
	assert.Equal(t, taxonomy.SensitivityAny, p.Sensitivity)
	assert.Equal(t, id.PregnancyNone, p.PregnancyStatus)
	assert.NotNil(t, p.MainGoals)
	assert.NotNil(t, p.Contraindications)
	assert.NotNil(t, ctx.Medical.Allergies)
	assert.NotNil(t, ctx.Preferences.DislikedIngredients)
	require.Len(t, ctx.Axes, 6)
}

func TestBuild_PrimaryFocusDerivedFromConcerns(t *testing.T) {
	raw := answers.Map{
		"concerns": answers.List("Пигментация", "акне"),
	}
	ctx := Build(testMeta(), raw, nil, catalog.Ref{})
	assert.Equal(t, taxonomy.FocusBrightening, ctx.Profile.PrimaryFocus)
}

func TestFlatten(t *testing.T) {
	raw := answers.Map{
		"skin_type": answers.Scalar("oily"),
		"goals":     answers.List("акне"),
	}
	ctx := Build(testMeta(), raw, nil, catalog.Ref{})
	flat := Flatten(ctx)

	assert.Equal(t, "oily", flat["skin_type"])
	assert.Equal(t, []string{"acne"}, flat["main_goals"])

	// Axis numeric values merge in under their axis names.
	v, ok := flat["oiliness"].(float64)
	require.True(t, ok)
	assert.InDelta(t, 80, v, 0.001)
	assert.Equal(t, "critical", flat["oiliness_level"])
}

func TestBuild_SubKeyedAnswersFlatten(t *testing.T) {
	raw := answers.Map{
		"habits": answers.SubKeyed(map[string]string{"q1": "курение", "q2": "алкоголь"}),
	}
	ctx := Build(testMeta(), raw, nil, catalog.Ref{})
	photo := axis.ByName(ctx.Axes)[axis.Photoaging]
	assert.Equal(t, 10, photo.Value, "smoking habit contributes regardless of sub-key")
}
