// Package careplan selects a morning/evening/weekly step skeleton from a
// small declarative template set. Unlike the recommendation rule matcher
// there are no priorities: the first template in declared precedence order
// whose conditions hold wins, and the default_balanced catch-all guarantees
// total coverage.
package careplan

import (
	"dermis/internal/profile"
	"dermis/internal/taxonomy"
)

// Conditions gate a template. Semantics: OR within a field (the profile value
// must be a member of the allowed set), AND across fields. An empty field is
// unpopulated and matches anything.
type Conditions struct {
	SkinTypes           []taxonomy.SkinTypeKey     `json:"skin_types,omitempty" yaml:"skin_types,omitempty"`
	Goals               []taxonomy.GoalKey         `json:"goals,omitempty" yaml:"goals,omitempty"`
	Sensitivities       []taxonomy.SensitivityKey  `json:"sensitivities,omitempty" yaml:"sensitivities,omitempty"`
	RoutineComplexities []profile.RoutineComplexity `json:"routine_complexities,omitempty" yaml:"routine_complexities,omitempty"`
}

// Template is one care plan skeleton.
type Template struct {
	ID           string     `json:"id" yaml:"id"`
	Conditions   Conditions `json:"conditions" yaml:"conditions"`
	MorningSteps []string   `json:"morning_steps" yaml:"morning_steps"`
	EveningSteps []string   `json:"evening_steps" yaml:"evening_steps"`
	WeeklySteps  []string   `json:"weekly_steps,omitempty" yaml:"weekly_steps,omitempty"`
}

// Input is the profile slice the selector evaluates. DryBias/OilyBias feed
// combination skin type expansion.
type Input struct {
	SkinType          taxonomy.SkinTypeKey
	Goals             []taxonomy.GoalKey
	Sensitivity       taxonomy.SensitivityKey
	RoutineComplexity profile.RoutineComplexity
	DryBias           bool
	OilyBias          bool
}

// Select returns the first template in declared order that matches.
// ok is false only when the template list lacks a catch-all; with the builtin
// set that is impossible by construction (default_balanced has empty
// conditions), so a false return from the builtin set indicates a
// configuration bug, not a runtime case.
func Select(in Input, templates []Template) (Template, bool) {
	variants := taxonomy.ExpandSkinType(in.SkinType, in.DryBias, in.OilyBias)
	for _, tpl := range templates {
		if tpl.matches(in, variants) {
			return tpl, true
		}
	}
	return Template{}, false
}

func (t Template) matches(in Input, skinVariants []taxonomy.SkinTypeKey) bool {
	if len(t.Conditions.SkinTypes) > 0 && !intersectSkinTypes(skinVariants, t.Conditions.SkinTypes) {
		return false
	}
	if len(t.Conditions.Goals) > 0 && !intersectGoals(in.Goals, t.Conditions.Goals) {
		return false
	}
	if len(t.Conditions.Sensitivities) > 0 && !memberSensitivity(in.Sensitivity, t.Conditions.Sensitivities) {
		return false
	}
	if len(t.Conditions.RoutineComplexities) > 0 && !memberRoutine(in.RoutineComplexity, t.Conditions.RoutineComplexities) {
		return false
	}
	return true
}

func intersectSkinTypes(have, allowed []taxonomy.SkinTypeKey) bool {
	for _, h := range have {
		for _, a := range allowed {
			if h == a {
				return true
			}
		}
	}
	return false
}

func intersectGoals(have, allowed []taxonomy.GoalKey) bool {
	for _, h := range have {
		for _, a := range allowed {
			if h == a {
				return true
			}
		}
	}
	return false
}

func memberSensitivity(have taxonomy.SensitivityKey, allowed []taxonomy.SensitivityKey) bool {
	for _, a := range allowed {
		if have == a {
			return true
		}
	}
	return false
}

func memberRoutine(have profile.RoutineComplexity, allowed []profile.RoutineComplexity) bool {
	for _, a := range allowed {
		if have == a {
			return true
		}
	}
	return false
}
