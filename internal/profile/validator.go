package profile

import (
	"strings"

	"dermis/internal/taxonomy"
)

// ValidationResult reports post-hoc consistency checks over a normalized
// profile. Errors make the profile unusable for plan generation; warnings are
// observability signals only.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// pregnancyUnsafeMentions are the ingredient-family substrings a pregnant or
// breastfeeding profile's contraindications are expected to mention. Heuristic,
// not exhaustive: its absence is a warning, not an error.
var pregnancyUnsafeMentions = []string{
	"ретино", "retino", "третиноин", "tretinoin",
	"кислот", "acid", "aha", "bha",
}

// Validate runs structural and consistency checks over a normalized profile.
func Validate(p SkinProfile) ValidationResult {
	res := ValidationResult{Errors: []string{}, Warnings: []string{}}

	if p.SkinType == "" || p.SkinType == taxonomy.SkinTypeAny {
		res.Warnings = append(res.Warnings, "skin type not determined")
	}
	if p.Sensitivity == "" || p.Sensitivity == taxonomy.SensitivityAny {
		res.Warnings = append(res.Warnings, "sensitivity not determined")
	}
	if p.MainGoals == nil {
		res.Warnings = append(res.Warnings, "main goals missing")
	} else if len(p.MainGoals) == 0 {
		res.Errors = append(res.Errors, "main goals empty")
	}

	if p.PregnancyStatus.RequiresSafetyReview() && !mentionsPregnancyUnsafe(p.Contraindications) {
		res.Warnings = append(res.Warnings,
			"pregnancy status set but contraindications do not mention retinoid or acid ingredients")
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

func mentionsPregnancyUnsafe(contraindications []string) bool {
	for _, c := range contraindications {
		low := strings.ToLower(c)
		for _, m := range pregnancyUnsafeMentions {
			if strings.Contains(low, m) {
				return true
			}
		}
	}
	return false
}
