// Package taxonomy canonicalizes free-text, legacy codes, and Cyrillic
// synonyms into the closed enumerations the rest of the pipeline branches on.
//
// The contract for every normalizer is the same: lower-case, trim, look up a
// fixed synonym table; unknown input yields the zero value and ok=false, never
// a guess. Raw strings must not reach rule or template conditions.
package taxonomy

// ConcernKey identifies a user-stated skin problem.
type ConcernKey string

const (
	ConcernAcne         ConcernKey = "acne"
	ConcernPores        ConcernKey = "pores"
	ConcernOilyShine    ConcernKey = "oily_shine"
	ConcernDryness      ConcernKey = "dryness"
	ConcernRedness      ConcernKey = "redness"
	ConcernSensitivity  ConcernKey = "sensitivity"
	ConcernPigmentation ConcernKey = "pigmentation"
	ConcernPostAcne     ConcernKey = "post_acne"
	ConcernWrinkles     ConcernKey = "wrinkles"
	ConcernDullness     ConcernKey = "dullness"
	ConcernDarkCircles  ConcernKey = "dark_circles"
	ConcernTexture      ConcernKey = "texture"
)

// GoalKey identifies a care objective.
type GoalKey string

const (
	GoalAcne          GoalKey = "acne"
	GoalHydration     GoalKey = "hydration"
	GoalAntiAging     GoalKey = "anti_aging"
	GoalBrightening   GoalKey = "brightening"
	GoalSoothing      GoalKey = "soothing"
	GoalBarrierRepair GoalKey = "barrier_repair"
	GoalGeneralCare   GoalKey = "general_care"
)

// SkinTypeKey identifies the declared skin type. SkinTypeAny is the neutral
// default carried by profiles whose submissions never answered the question.
type SkinTypeKey string

const (
	SkinTypeAny             SkinTypeKey = "any"
	SkinTypeDry             SkinTypeKey = "dry"
	SkinTypeOily            SkinTypeKey = "oily"
	SkinTypeNormal          SkinTypeKey = "normal"
	SkinTypeCombination     SkinTypeKey = "combination"
	SkinTypeCombinationDry  SkinTypeKey = "combination_dry"
	SkinTypeCombinationOily SkinTypeKey = "combination_oily"
)

// SensitivityKey identifies the declared sensitivity level.
type SensitivityKey string

const (
	SensitivityAny    SensitivityKey = "any"
	SensitivityLow    SensitivityKey = "low"
	SensitivityMedium SensitivityKey = "medium"
	SensitivityHigh   SensitivityKey = "high"
)

// AgeGroupKey buckets the subject's age.
type AgeGroupKey string

const (
	AgeGroupAny   AgeGroupKey = "any"
	AgeGroupU18   AgeGroupKey = "u18"
	AgeGroup18_24 AgeGroupKey = "18_24"
	AgeGroup25_34 AgeGroupKey = "25_34"
	AgeGroup35_44 AgeGroupKey = "35_44"
	AgeGroup45Up  AgeGroupKey = "45plus"
)

// IngredientKey identifies an active ingredient family.
type IngredientKey string

const (
	IngredientRetinol        IngredientKey = "retinol"
	IngredientAHA            IngredientKey = "aha_acids"
	IngredientBHA            IngredientKey = "bha_acids"
	IngredientVitaminC       IngredientKey = "vitamin_c"
	IngredientNiacinamide    IngredientKey = "niacinamide"
	IngredientHyaluronic     IngredientKey = "hyaluronic_acid"
	IngredientBenzoylPeroxide IngredientKey = "benzoyl_peroxide"
	IngredientAzelaic        IngredientKey = "azelaic_acid"
	IngredientCeramides      IngredientKey = "ceramides"
)

// PrimaryFocus is the single objective driving template choice.
type PrimaryFocus string

const (
	FocusGeneral     PrimaryFocus = "general"
	FocusAntiAcne    PrimaryFocus = "anti_acne"
	FocusHydration   PrimaryFocus = "hydration"
	FocusAntiAging   PrimaryFocus = "anti_aging"
	FocusBrightening PrimaryFocus = "brightening"
	FocusSoothing    PrimaryFocus = "soothing"
)

// ConcernKeys lists every canonical concern, in stable order.
func ConcernKeys() []ConcernKey {
	return []ConcernKey{
		ConcernAcne, ConcernPores, ConcernOilyShine, ConcernDryness,
		ConcernRedness, ConcernSensitivity, ConcernPigmentation,
		ConcernPostAcne, ConcernWrinkles, ConcernDullness,
		ConcernDarkCircles, ConcernTexture,
	}
}

// PrimaryFocuses lists every focus, general first.
func PrimaryFocuses() []PrimaryFocus {
	return []PrimaryFocus{
		FocusGeneral, FocusAntiAcne, FocusHydration,
		FocusAntiAging, FocusBrightening, FocusSoothing,
	}
}
