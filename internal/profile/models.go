// Package profile defines the normalized skin profile entity and its
// consistency checks.
//
// Invariant: every field with a canonical enumeration holds only values from
// that enumeration or a neutral default ("any", "none", empty slice), never a
// raw or legacy string. Normalization happens upstream in internal/taxonomy;
// this package assumes it.
package profile

import (
	"time"

	"dermis/internal/axis"
	"dermis/internal/taxonomy"
	id "dermis/pkg/domain"
)

// RoutineComplexity captures how elaborate a routine the user accepts.
type RoutineComplexity string

const (
	RoutineAny      RoutineComplexity = "any"
	RoutineMinimal  RoutineComplexity = "minimal"
	RoutineStandard RoutineComplexity = "standard"
	RoutineExtended RoutineComplexity = "extended"
)

// BudgetSegment captures the declared spending band.
type BudgetSegment string

const (
	BudgetAny     BudgetSegment = "any"
	BudgetLow     BudgetSegment = "low"
	BudgetMedium  BudgetSegment = "medium"
	BudgetPremium BudgetSegment = "premium"
)

// SkinProfile is the normalized snapshot derived from questionnaire answers.
// It is a display/persistence artifact: axis scores are always recomputed from
// raw answers, never from these fields.
type SkinProfile struct {
	UserID  id.UserID         `json:"user_id"`
	Version id.ProfileVersion `json:"version"`

	SkinType       taxonomy.SkinTypeKey    `json:"skin_type"`
	Sensitivity    taxonomy.SensitivityKey `json:"sensitivity"`
	MainGoals      []taxonomy.GoalKey      `json:"main_goals"`
	SecondaryGoals []taxonomy.GoalKey      `json:"secondary_goals"`
	PrimaryFocus   taxonomy.PrimaryFocus   `json:"primary_focus"`
	AgeGroup       taxonomy.AgeGroupKey    `json:"age_group"`
	Gender         string                  `json:"gender"`

	Diagnoses         []string           `json:"diagnoses"`
	PregnancyStatus   id.PregnancyStatus `json:"pregnancy_status"`
	Contraindications []string           `json:"contraindications"`
	CurrentTopicals   []string           `json:"current_topicals"`
	CurrentOralMeds   []string           `json:"current_oral_meds"`

	SPFHabit          string            `json:"spf_habit"`
	MakeupHabit       string            `json:"makeup_habit"`
	RoutineComplexity RoutineComplexity `json:"routine_complexity"`
	CarePreference    string            `json:"care_preference"`
	BudgetSegment     BudgetSegment     `json:"budget_segment"`

	Axes []axis.Score `json:"axes"`

	CreatedAt time.Time `json:"created_at"`
}

// MedicalMarkers carries safety-relevant facts not modeled on SkinProfile.
type MedicalMarkers struct {
	Allergies   []string `json:"allergies"`
	RosaceaRisk bool     `json:"rosacea_risk"`
	AtopyRisk   bool     `json:"atopy_risk"`
}

// Preferences carries preference-relevant facts not modeled on SkinProfile.
type Preferences struct {
	BudgetSegment       BudgetSegment            `json:"budget_segment"`
	RoutineComplexity   RoutineComplexity        `json:"routine_complexity"`
	DislikedIngredients []taxonomy.IngredientKey `json:"disliked_ingredients"`
}

// ApplyDefaults fills neutral values so no consumer ever sees an unset field.
func (p *SkinProfile) ApplyDefaults() {
	if p.SkinType == "" {
		p.SkinType = taxonomy.SkinTypeAny
	}
	if p.Sensitivity == "" {
		p.Sensitivity = taxonomy.SensitivityAny
	}
	if p.AgeGroup == "" {
		p.AgeGroup = taxonomy.AgeGroupAny
	}
	if p.PrimaryFocus == "" {
		p.PrimaryFocus = taxonomy.FocusGeneral
	}
	if p.PregnancyStatus == "" {
		p.PregnancyStatus = id.PregnancyNone
	}
	if p.RoutineComplexity == "" {
		p.RoutineComplexity = RoutineAny
	}
	if p.BudgetSegment == "" {
		p.BudgetSegment = BudgetAny
	}
	if p.Gender == "" {
		p.Gender = "any"
	}
	if p.CarePreference == "" {
		p.CarePreference = "any"
	}
	if p.SPFHabit == "" {
		p.SPFHabit = "none"
	}
	if p.MakeupHabit == "" {
		p.MakeupHabit = "none"
	}
	if p.MainGoals == nil {
		p.MainGoals = []taxonomy.GoalKey{}
	}
	if p.SecondaryGoals == nil {
		p.SecondaryGoals = []taxonomy.GoalKey{}
	}
	if p.Diagnoses == nil {
		p.Diagnoses = []string{}
	}
	if p.Contraindications == nil {
		p.Contraindications = []string{}
	}
	if p.CurrentTopicals == nil {
		p.CurrentTopicals = []string{}
	}
	if p.CurrentOralMeds == nil {
		p.CurrentOralMeds = []string{}
	}
}

// ApplyDefaults fills neutral marker values.
func (m *MedicalMarkers) ApplyDefaults() {
	if m.Allergies == nil {
		m.Allergies = []string{}
	}
}

// ApplyDefaults fills neutral preference values.
func (p *Preferences) ApplyDefaults() {
	if p.BudgetSegment == "" {
		p.BudgetSegment = BudgetAny
	}
	if p.RoutineComplexity == "" {
		p.RoutineComplexity = RoutineAny
	}
	if p.DislikedIngredients == nil {
		p.DislikedIngredients = []taxonomy.IngredientKey{}
	}
}
