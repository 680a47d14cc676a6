package retake

import (
	"strings"

	"dermis/internal/answers"
	"dermis/internal/axis"
)

// Topic is one named questionnaire section a user can retake in isolation.
// Each topic declares the axes its answers can move and whether retaking it
// invalidates the existing care plan outright.
type Topic struct {
	Code           string
	AffectsAxes    []axis.Name
	PlanAffecting  bool
	ForcesRecreate bool
}

const (
	TopicSkinType             = "skin_type"
	TopicPregnancyHealth      = "pregnancy_health"
	TopicDiagnosesSensitivity = "diagnoses_sensitivity"
	TopicSunProtection        = "sun_protection"
	TopicLifestyleHabits      = "lifestyle_habits"
	TopicBudgetPreferences    = "budget_preferences"
)

// topics is the registry. A topic declaring zero axes gets the conservative
// recompute-everything path in RecalculateAxesScoped.
var topics = map[string]Topic{
	TopicSkinType: {
		Code:           TopicSkinType,
		AffectsAxes:    []axis.Name{axis.Oiliness, axis.Hydration, axis.Barrier},
		PlanAffecting:  true,
		ForcesRecreate: true,
	},
	TopicPregnancyHealth: {
		Code:           TopicPregnancyHealth,
		AffectsAxes:    []axis.Name{axis.Inflammation, axis.Barrier},
		PlanAffecting:  true,
		ForcesRecreate: true,
	},
	TopicDiagnosesSensitivity: {
		Code:           TopicDiagnosesSensitivity,
		AffectsAxes:    []axis.Name{axis.Inflammation, axis.Barrier, axis.Hydration},
		PlanAffecting:  true,
		ForcesRecreate: true,
	},
	TopicSunProtection: {
		Code:          TopicSunProtection,
		AffectsAxes:   []axis.Name{axis.Pigmentation, axis.Photoaging},
		PlanAffecting: false,
	},
	TopicLifestyleHabits: {
		Code:          TopicLifestyleHabits,
		AffectsAxes:   []axis.Name{axis.Hydration, axis.Barrier},
		PlanAffecting: false,
	},
	TopicBudgetPreferences: {
		Code:          TopicBudgetPreferences,
		AffectsAxes:   nil,
		PlanAffecting: false,
	},
}

// TopicByCode looks up a registered topic. Unknown codes return a zero Topic
// and false; callers treat that as a full-recompute, non-plan-affecting topic.
func TopicByCode(code string) (Topic, bool) {
	t, ok := topics[strings.ToLower(strings.TrimSpace(code))]
	return t, ok
}

// criticalQuestionCodes are canonical answer fields whose change forces a full
// profile recreation regardless of which topic carried them.
var criticalQuestionCodes = map[string]struct{}{
	answers.FieldSkinType:          {},
	answers.FieldSensitivity:       {},
	answers.FieldPregnancyStatus:   {},
	answers.FieldDiagnoses:         {},
	answers.FieldContraindications: {},
	answers.FieldCurrentTopicals:   {},
	answers.FieldCurrentOralMeds:   {},
}

// ShouldRecreateProfileForTopic reports whether a retake of the given topic,
// carrying the given changed question codes, must recreate the profile from
// scratch instead of merging incrementally. Legacy alias codes are resolved
// to their canonical field before the check.
func ShouldRecreateProfileForTopic(code string, changedCodes []string) bool {
	if t, ok := TopicByCode(code); ok && t.ForcesRecreate {
		return true
	}
	for _, qc := range changedCodes {
		field, ok := answers.CanonicalField(qc)
		if !ok {
			continue
		}
		if _, critical := criticalQuestionCodes[field]; critical {
			return true
		}
	}
	return false
}
