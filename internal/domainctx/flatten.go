package domainctx

import (
	"strings"

	"dermis/internal/axis"
	"dermis/internal/taxonomy"
)

// Flatten projects the context into the flat field→value map the rule matcher
// evaluates. Axis numeric values merge in under their axis names; list fields
// become []string; enums become their string form.
func Flatten(ctx Context) map[string]any {
	p := ctx.Profile
	flat := map[string]any{
		"skin_type":          string(p.SkinType),
		"sensitivity":        string(p.Sensitivity),
		"main_goals":         goalStrings(p.MainGoals),
		"secondary_goals":    goalStrings(p.SecondaryGoals),
		"primary_focus":      string(p.PrimaryFocus),
		"age_group":          string(p.AgeGroup),
		"gender":             p.Gender,
		"diagnoses":          lowerAll(p.Diagnoses),
		"pregnancy_status":   string(p.PregnancyStatus),
		"contraindications":  lowerAll(p.Contraindications),
		"current_topicals":   lowerAll(p.CurrentTopicals),
		"current_oral_meds":  lowerAll(p.CurrentOralMeds),
		"spf_habit":          p.SPFHabit,
		"makeup_habit":       p.MakeupHabit,
		"routine_complexity": string(p.RoutineComplexity),
		"care_preference":    p.CarePreference,
		"budget_segment":     string(p.BudgetSegment),
	}
	for _, s := range ctx.Axes {
		flat[string(s.Axis)] = float64(s.Value)
		flat[string(s.Axis)+"_level"] = string(s.Level)
	}
	return flat
}

// DryBias reports whether the context's axes lean dehydrated; used for
// combination skin type expansion in template selection.
func DryBias(ctx Context) bool {
	s, ok := axis.ByName(ctx.Axes)[axis.Hydration]
	return ok && (s.Level == axis.LevelHigh || s.Level == axis.LevelCritical)
}

// OilyBias reports whether the context's axes lean oily.
func OilyBias(ctx Context) bool {
	s, ok := axis.ByName(ctx.Axes)[axis.Oiliness]
	return ok && (s.Level == axis.LevelHigh || s.Level == axis.LevelCritical)
}

func goalStrings(goals []taxonomy.GoalKey) []string {
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = string(g)
	}
	return out
}

func lowerAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.ToLower(s)
	}
	return out
}

func lower(s string) string {
	return strings.ToLower(s)
}

func contains(low string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(low, sub) {
			return true
		}
	}
	return false
}
