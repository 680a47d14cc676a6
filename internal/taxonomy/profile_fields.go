package taxonomy

import (
	"strconv"
	"strings"
)

var skinTypeSynonyms = map[string]SkinTypeKey{
	"dry":    SkinTypeDry,
	"сухая":  SkinTypeDry,
	"сухой":  SkinTypeDry,

	"oily":    SkinTypeOily,
	"жирная":  SkinTypeOily,
	"жирный":  SkinTypeOily,

	"normal":     SkinTypeNormal,
	"нормальная": SkinTypeNormal,

	"combination":     SkinTypeCombination,
	"combo":           SkinTypeCombination,
	"комбинированная": SkinTypeCombination,
	"смешанная":       SkinTypeCombination,

	"combination_dry":  SkinTypeCombinationDry,
	"combination_oily": SkinTypeCombinationOily,
}

// NormalizeSkinType maps free text to a skin type key.
func NormalizeSkinType(raw string) (SkinTypeKey, bool) {
	k, ok := skinTypeSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return k, ok
}

// ExpandSkinType resolves a declared skin type into the variants template
// conditions may list. Plain combination skin expands by bias flags: a high
// dehydration score keeps the dry variant, a high oiliness score keeps the
// oily one; with no evidence either way both variants are kept.
func ExpandSkinType(k SkinTypeKey, dryBias, oilyBias bool) []SkinTypeKey {
	if k != SkinTypeCombination {
		return []SkinTypeKey{k}
	}
	switch {
	case dryBias && !oilyBias:
		return []SkinTypeKey{SkinTypeCombination, SkinTypeCombinationDry}
	case oilyBias && !dryBias:
		return []SkinTypeKey{SkinTypeCombination, SkinTypeCombinationOily}
	default:
		return []SkinTypeKey{SkinTypeCombination, SkinTypeCombinationDry, SkinTypeCombinationOily}
	}
}

var sensitivitySynonyms = map[string]SensitivityKey{
	"low":     SensitivityLow,
	"none":    SensitivityLow,
	"низкая":  SensitivityLow,
	"нет":     SensitivityLow,

	"medium":  SensitivityMedium,
	"средняя": SensitivityMedium,

	"high":    SensitivityHigh,
	"высокая": SensitivityHigh,
}

// NormalizeSensitivity maps free text to a sensitivity key.
func NormalizeSensitivity(raw string) (SensitivityKey, bool) {
	k, ok := sensitivitySynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return k, ok
}

var ageGroupTokens = map[string]AgeGroupKey{
	"u18":     AgeGroupU18,
	"18_24":   AgeGroup18_24,
	"25_34":   AgeGroup25_34,
	"35_44":   AgeGroup35_44,
	"45plus":  AgeGroup45Up,
	"45+":     AgeGroup45Up,
}

// NormalizeAgeGroup accepts canonical tokens and numeric ages. Numeric ages
// bucket by half-open ranges: [0,18) u18, [18,25) 18_24, [25,35) 25_34,
// [35,45) 35_44, [45,∞) 45plus.
func NormalizeAgeGroup(raw string) (AgeGroupKey, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if k, ok := ageGroupTokens[s]; ok {
		return k, ok
	}
	age, err := strconv.Atoi(s)
	if err != nil {
		// Ages occasionally arrive as "34.0" from older clients; keep this
		// coercion in step with the answer value's integer form.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return "", false
		}
		age = int(f)
	}
	return AgeGroupForAge(age), true
}

// AgeGroupForAge buckets a numeric age. Non-positive ages are treated as
// unanswered.
func AgeGroupForAge(age int) AgeGroupKey {
	switch {
	case age <= 0:
		return AgeGroupAny
	case age < 18:
		return AgeGroupU18
	case age < 25:
		return AgeGroup18_24
	case age < 35:
		return AgeGroup25_34
	case age < 45:
		return AgeGroup35_44
	default:
		return AgeGroup45Up
	}
}

var ingredientSynonyms = map[string]IngredientKey{
	"retinol":   IngredientRetinol,
	"ретинол":   IngredientRetinol,
	"ретиноиды": IngredientRetinol,
	"retinoids": IngredientRetinol,
	"третиноин": IngredientRetinol,
	"tretinoin": IngredientRetinol,

	"aha_acids": IngredientAHA,
	"aha":       IngredientAHA,
	"aha кислоты":        IngredientAHA,
	"гликолевая кислота": IngredientAHA,
	"glycolic acid":      IngredientAHA,
	"молочная кислота":   IngredientAHA,

	"bha_acids":           IngredientBHA,
	"bha":                 IngredientBHA,
	"салициловая кислота": IngredientBHA,
	"salicylic acid":      IngredientBHA,

	"vitamin_c":  IngredientVitaminC,
	"vitamin c":  IngredientVitaminC,
	"ascorbic acid": IngredientVitaminC,
	"витамин с": IngredientVitaminC,
	"витамин c": IngredientVitaminC,

	"niacinamide": IngredientNiacinamide,
	"ниацинамид":  IngredientNiacinamide,

	"hyaluronic_acid":      IngredientHyaluronic,
	"hyaluronic acid":      IngredientHyaluronic,
	"гиалуроновая кислота": IngredientHyaluronic,

	"benzoyl_peroxide":  IngredientBenzoylPeroxide,
	"benzoyl peroxide":  IngredientBenzoylPeroxide,
	"бензоилпероксид":   IngredientBenzoylPeroxide,

	"azelaic_acid":       IngredientAzelaic,
	"azelaic acid":       IngredientAzelaic,
	"азелаиновая кислота": IngredientAzelaic,

	"ceramides": IngredientCeramides,
	"церамиды":  IngredientCeramides,
}

// NormalizeIngredient maps free text to an ingredient key.
func NormalizeIngredient(raw string) (IngredientKey, bool) {
	k, ok := ingredientSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return k, ok
}

// NormalizeIngredients is the batch form; same dedupe/drop contract as
// NormalizeConcerns.
func NormalizeIngredients(raw []string) []IngredientKey {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[IngredientKey]struct{}, len(raw))
	out := make([]IngredientKey, 0, len(raw))
	for _, r := range raw {
		k, ok := NormalizeIngredient(r)
		if !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
