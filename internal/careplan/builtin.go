package careplan

import (
	"dermis/internal/profile"
	"dermis/internal/taxonomy"
)

// Builtin returns the shipped template set in precedence order. The slice is
// freshly allocated on each call so callers may reorder or append without
// affecting others. default_balanced carries no conditions and is last, so
// selection over this set is total.
func Builtin() []Template {
	return []Template{
		{
			ID: "acne_oily_basic",
			Conditions: Conditions{
				SkinTypes:     []taxonomy.SkinTypeKey{taxonomy.SkinTypeOily, taxonomy.SkinTypeCombinationOily},
				Goals:         []taxonomy.GoalKey{taxonomy.GoalAcne},
				Sensitivities: []taxonomy.SensitivityKey{taxonomy.SensitivityLow, taxonomy.SensitivityMedium},
			},
			MorningSteps: []string{"gel_cleanser", "light_moisturizer", "spf"},
			EveningSteps: []string{"gel_cleanser", "acne_treatment", "light_moisturizer"},
			WeeklySteps:  []string{"bha_exfoliation"},
		},
		{
			ID: "acne_sensitive",
			Conditions: Conditions{
				Goals:         []taxonomy.GoalKey{taxonomy.GoalAcne},
				Sensitivities: []taxonomy.SensitivityKey{taxonomy.SensitivityHigh},
			},
			MorningSteps: []string{"cream_cleanser", "soothing_moisturizer", "mineral_spf"},
			EveningSteps: []string{"cream_cleanser", "azelaic_treatment", "soothing_moisturizer"},
		},
		{
			ID: "hydration_dry",
			Conditions: Conditions{
				SkinTypes: []taxonomy.SkinTypeKey{taxonomy.SkinTypeDry, taxonomy.SkinTypeCombinationDry},
				Goals:     []taxonomy.GoalKey{taxonomy.GoalHydration, taxonomy.GoalBarrierRepair},
			},
			MorningSteps: []string{"cream_cleanser", "hydrating_serum", "rich_moisturizer", "spf"},
			EveningSteps: []string{"cream_cleanser", "hydrating_serum", "rich_moisturizer"},
			WeeklySteps:  []string{"hydrating_mask"},
		},
		{
			ID: "anti_aging_full",
			Conditions: Conditions{
				Goals:               []taxonomy.GoalKey{taxonomy.GoalAntiAging},
				Sensitivities:       []taxonomy.SensitivityKey{taxonomy.SensitivityLow, taxonomy.SensitivityMedium},
				RoutineComplexities: []profile.RoutineComplexity{profile.RoutineStandard, profile.RoutineExtended},
			},
			MorningSteps: []string{"cleanser", "antioxidant_serum", "moisturizer", "spf"},
			EveningSteps: []string{"cleanser", "retinoid", "moisturizer"},
			WeeklySteps:  []string{"aha_exfoliation"},
		},
		{
			ID: "brightening",
			Conditions: Conditions{
				Goals: []taxonomy.GoalKey{taxonomy.GoalBrightening},
			},
			MorningSteps: []string{"cleanser", "vitamin_c_serum", "moisturizer", "spf"},
			EveningSteps: []string{"cleanser", "brightening_serum", "moisturizer"},
		},
		{
			ID: "soothing_minimal",
			Conditions: Conditions{
				Goals:               []taxonomy.GoalKey{taxonomy.GoalSoothing, taxonomy.GoalBarrierRepair},
				RoutineComplexities: []profile.RoutineComplexity{profile.RoutineMinimal},
			},
			MorningSteps: []string{"rinse", "barrier_moisturizer", "mineral_spf"},
			EveningSteps: []string{"cream_cleanser", "barrier_moisturizer"},
		},
		{
			ID:           "default_balanced",
			Conditions:   Conditions{},
			MorningSteps: []string{"cleanser", "moisturizer", "spf"},
			EveningSteps: []string{"cleanser", "moisturizer"},
		},
	}
}
