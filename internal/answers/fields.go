package answers

import "sort"

// Canonical field names. Every axis- or profile-relevant question resolves to
// one of these regardless of which questionnaire version submitted it.
const (
	FieldSkinType          = "skin_type"
	FieldAge               = "age"
	FieldConcerns          = "concerns"
	FieldGoals             = "goals"
	FieldSecondaryGoals    = "secondary_goals"
	FieldDiagnoses         = "diagnoses"
	FieldHabits            = "habits"
	FieldAllergies         = "allergies"
	FieldSeason            = "season"
	FieldRetinolReaction   = "retinol_reaction"
	FieldPregnancyStatus   = "pregnancy_status"
	FieldSPFUsage          = "spf_usage"
	FieldSunExposure       = "sun_exposure"
	FieldSensitivity       = "sensitivity"
	FieldAcneLevel         = "acne_level"
	FieldContraindications = "contraindications"
	FieldCurrentTopicals   = "current_topicals"
	FieldCurrentOralMeds   = "current_oral_meds"
	FieldMakeupHabit       = "makeup_habit"
	FieldRoutineComplexity = "routine_complexity"
	FieldBudgetSegment     = "budget_segment"
	FieldCarePreference    = "care_preference"
	FieldGender            = "gender"
	FieldDislikedItems     = "disliked_ingredients"
)

// fieldAliases maps every known question code, legacy or current, to its
// canonical field name. Codes not listed here are ignored by the scoring and
// profile paths (extra questionnaire fields are allowed).
var fieldAliases = map[string]string{
	FieldSkinType: FieldSkinType,
	"skinType":    FieldSkinType,
	"skin":        FieldSkinType,
	"type_of_skin": FieldSkinType,

	FieldAge:    FieldAge,
	"age_group": FieldAge,
	"ageGroup":  FieldAge,

	FieldConcerns:    FieldConcerns,
	"skin_concerns":  FieldConcerns,
	"skinConcerns":   FieldConcerns,
	"problems":       FieldConcerns,
	"skin_problems":  FieldConcerns,

	FieldGoals:   FieldGoals,
	"main_goals": FieldGoals,
	"mainGoals":  FieldGoals,
	"care_goals": FieldGoals,

	FieldSecondaryGoals: FieldSecondaryGoals,
	"secondaryGoals":    FieldSecondaryGoals,

	FieldDiagnoses: FieldDiagnoses,
	"diagnosis":    FieldDiagnoses,
	"diagnosed_conditions": FieldDiagnoses,

	FieldHabits:        FieldHabits,
	"lifestyle_habits": FieldHabits,
	"lifestyle":        FieldHabits,

	FieldAllergies: FieldAllergies,
	"allergy":      FieldAllergies,

	FieldSeason:       FieldSeason,
	"current_season":  FieldSeason,

	FieldRetinolReaction: FieldRetinolReaction,
	"retinolReaction":    FieldRetinolReaction,
	"retinol_response":   FieldRetinolReaction,

	FieldPregnancyStatus: FieldPregnancyStatus,
	"pregnancy":          FieldPregnancyStatus,
	"pregnancyStatus":    FieldPregnancyStatus,

	FieldSPFUsage:      FieldSPFUsage,
	"spf_frequency":    FieldSPFUsage,
	"spfFrequency":     FieldSPFUsage,
	"spf":              FieldSPFUsage,

	FieldSunExposure: FieldSunExposure,
	"sunExposure":    FieldSunExposure,
	"sun":            FieldSunExposure,

	FieldSensitivity:      FieldSensitivity,
	"skin_sensitivity":    FieldSensitivity,
	"sensitivity_level":   FieldSensitivity,
	"sensitivityLevel":    FieldSensitivity,

	FieldAcneLevel: FieldAcneLevel,
	"acneLevel":    FieldAcneLevel,
	"acne_severity": FieldAcneLevel,

	FieldContraindications: FieldContraindications,
	"contraindication":     FieldContraindications,

	FieldCurrentTopicals: FieldCurrentTopicals,
	"currentTopicals":    FieldCurrentTopicals,
	"topicals":           FieldCurrentTopicals,

	FieldCurrentOralMeds: FieldCurrentOralMeds,
	"currentOralMeds":    FieldCurrentOralMeds,
	"oral_medications":   FieldCurrentOralMeds,

	FieldMakeupHabit: FieldMakeupHabit,
	"makeup":         FieldMakeupHabit,

	FieldRoutineComplexity: FieldRoutineComplexity,
	"routineComplexity":    FieldRoutineComplexity,
	"routine":              FieldRoutineComplexity,

	FieldBudgetSegment: FieldBudgetSegment,
	"budget":           FieldBudgetSegment,

	FieldCarePreference: FieldCarePreference,
	"carePreference":    FieldCarePreference,

	FieldGender: FieldGender,
	"sex":       FieldGender,

	FieldDislikedItems:  FieldDislikedItems,
	"dislikedIngredients": FieldDislikedItems,
}

// CanonicalField resolves a question code to its canonical field name.
func CanonicalField(code string) (string, bool) {
	f, ok := fieldAliases[code]
	return f, ok
}

// Map is the raw questionnaire submission keyed by question code.
type Map map[string]Value

// FromAnyMap converts a duck-typed payload into a Map in one pass.
func FromAnyMap(raw map[string]any) Map {
	m := make(Map, len(raw))
	for code, v := range raw {
		m[code] = FromAny(v)
	}
	return m
}

// Resolve canonicalizes question codes. When several aliases of the same field
// are present in one submission, the canonical code wins over legacy aliases;
// among legacy aliases, codes are visited in sorted order so resolution is
// deterministic for identical submissions.
func (m Map) Resolve() Map {
	out := make(Map, len(m))
	// Canonical codes first so legacy duplicates never shadow them.
	for code, v := range m {
		if f, ok := fieldAliases[code]; ok && f == code && !v.IsZero() {
			out[f] = v
		}
	}
	codes := m.Codes()
	sort.Strings(codes)
	for _, code := range codes {
		v := m[code]
		f, ok := fieldAliases[code]
		if !ok || v.IsZero() {
			continue
		}
		if _, exists := out[f]; !exists {
			out[f] = v
		}
	}
	return out
}

// Get returns the value for a canonical field, resolving aliases on miss.
func (m Map) Get(field string) Value {
	if v, ok := m[field]; ok {
		return v
	}
	codes := m.Codes()
	sort.Strings(codes)
	for _, code := range codes {
		if f, ok := fieldAliases[code]; ok && f == field && !m[code].IsZero() {
			return m[code]
		}
	}
	return Value{}
}

// Codes returns the raw question codes present in the submission.
func (m Map) Codes() []string {
	out := make([]string, 0, len(m))
	for code := range m {
		out = append(out, code)
	}
	return out
}
