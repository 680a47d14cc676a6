package taxonomy

import "strings"

// concernSynonyms collapses Russian and English aliases into concern keys.
// Lookup is exact on the lower-cased, trimmed input. The canonical string of
// each key maps to itself so normalization is stable under repetition.
var concernSynonyms = map[string]ConcernKey{
	"acne":        ConcernAcne,
	"акне":        ConcernAcne,
	"прыщи":       ConcernAcne,
	"высыпания":   ConcernAcne,
	"breakouts":   ConcernAcne,
	"воспаления":  ConcernAcne,

	"pores":             ConcernPores,
	"поры":              ConcernPores,
	"расширенные поры":  ConcernPores,
	"enlarged pores":    ConcernPores,
	"забитые поры":      ConcernPores,

	"oily_shine":    ConcernOilyShine,
	"жирный блеск":  ConcernOilyShine,
	"жирность":      ConcernOilyShine,
	"oily shine":    ConcernOilyShine,
	"shine":         ConcernOilyShine,

	"dryness":     ConcernDryness,
	"сухость":     ConcernDryness,
	"шелушение":   ConcernDryness,
	"dry skin":    ConcernDryness,
	"обезвоженность": ConcernDryness,
	"dehydration":    ConcernDryness,

	"redness":     ConcernRedness,
	"покраснение": ConcernRedness,
	"покраснения": ConcernRedness,
	"краснота":    ConcernRedness,

	"sensitivity":         ConcernSensitivity,
	"чувствительность":    ConcernSensitivity,
	"чувствительная кожа": ConcernSensitivity,
	"sensitive skin":      ConcernSensitivity,

	"pigmentation":      ConcernPigmentation,
	"пигментация":       ConcernPigmentation,
	"пигментные пятна":  ConcernPigmentation,
	"dark spots":        ConcernPigmentation,

	"post_acne":          ConcernPostAcne,
	"постакне":           ConcernPostAcne,
	"post-acne":          ConcernPostAcne,
	"post acne":          ConcernPostAcne,
	"следы от прыщей":    ConcernPostAcne,

	"wrinkles":        ConcernWrinkles,
	"морщины":         ConcernWrinkles,
	"мелкие морщины":  ConcernWrinkles,
	"fine lines":      ConcernWrinkles,

	"dullness":           ConcernDullness,
	"тусклость":          ConcernDullness,
	"тусклый цвет лица":  ConcernDullness,
	"dull skin":          ConcernDullness,

	"dark_circles":       ConcernDarkCircles,
	"темные круги":       ConcernDarkCircles,
	"тёмные круги":       ConcernDarkCircles,
	"синяки под глазами": ConcernDarkCircles,
	"dark circles":       ConcernDarkCircles,

	"texture":           ConcernTexture,
	"неровная текстура": ConcernTexture,
	"неровный рельеф":   ConcernTexture,
	"uneven texture":    ConcernTexture,
}

// NormalizeConcern maps free text to a concern key. Unknown input returns
// ok=false; the caller drops it, it is never guessed.
func NormalizeConcern(raw string) (ConcernKey, bool) {
	k, ok := concernSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return k, ok
}

// NormalizeConcerns maps a batch of raw concern strings to keys: deduplicated,
// order of first occurrence preserved, unmapped entries dropped silently.
func NormalizeConcerns(raw []string) []ConcernKey {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[ConcernKey]struct{}, len(raw))
	out := make([]ConcernKey, 0, len(raw))
	for _, r := range raw {
		k, ok := NormalizeConcern(r)
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

// goalSynonyms collapses aliases into goal keys.
var goalSynonyms = map[string]GoalKey{
	"acne":            GoalAcne,
	"акне":            GoalAcne,
	"лечение акне":    GoalAcne,
	"anti-acne":       GoalAcne,

	"hydration":    GoalHydration,
	"увлажнение":   GoalHydration,
	"moisturizing": GoalHydration,

	"anti_aging":    GoalAntiAging,
	"anti-aging":    GoalAntiAging,
	"антивозрастной уход": GoalAntiAging,
	"омоложение":    GoalAntiAging,

	"brightening":       GoalBrightening,
	"осветление":        GoalBrightening,
	"выравнивание тона": GoalBrightening,

	"soothing":     GoalSoothing,
	"успокоение":   GoalSoothing,
	"снятие раздражения": GoalSoothing,

	"barrier_repair":        GoalBarrierRepair,
	"восстановление барьера": GoalBarrierRepair,

	"general_care": GoalGeneralCare,
	"общий уход":   GoalGeneralCare,
	"базовый уход": GoalGeneralCare,
}

// NormalizeGoal maps free text to a goal key.
func NormalizeGoal(raw string) (GoalKey, bool) {
	k, ok := goalSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return k, ok
}

// NormalizeGoals is the batch form of NormalizeGoal; same dedupe/drop contract
// as NormalizeConcerns.
func NormalizeGoals(raw []string) []GoalKey {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[GoalKey]struct{}, len(raw))
	out := make([]GoalKey, 0, len(raw))
	for _, r := range raw {
		k, ok := NormalizeGoal(r)
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
