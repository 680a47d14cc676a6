package axis

import "strings"

// Contribution matching works on raw answer strings (including Cyrillic
// synonyms) by lower-cased substring, not on taxonomy keys: scoring happens
// before normalization and must tolerate legacy free text.

func anyContains(items []string, subs ...string) bool {
	for _, item := range items {
		low := strings.ToLower(item)
		for _, sub := range subs {
			if strings.Contains(low, sub) {
				return true
			}
		}
	}
	return false
}

func is(s string, opts ...string) bool {
	low := strings.ToLower(strings.TrimSpace(s))
	for _, o := range opts {
		if low == o {
			return true
		}
	}
	return false
}

// rawOiliness starts from a neutral midpoint; skin type dominates.
func rawOiliness(rec Record) int {
	v := 50
	switch {
	case is(rec.SkinType, "oily", "жирная", "жирный"):
		v += 30
	case is(rec.SkinType, "combination", "combo", "комбинированная", "смешанная"):
		v += 15
	case is(rec.SkinType, "dry", "сухая", "сухой"):
		v -= 30
	}
	if anyContains(rec.Concerns, "жирный блеск", "жирность", "oily shine", "shine", "блеск") {
		v += 10
	}
	if anyContains(rec.Concerns, "поры", "pores") {
		v += 5
	}
	if anyContains(rec.Concerns, "акне", "acne", "прыщи") {
		v += 5
	}
	if is(rec.Season, "summer", "лето") {
		v += 5
	}
	return v
}

// rawHydration starts from a full reservoir and subtracts dehydration evidence.
func rawHydration(rec Record) int {
	v := 100
	switch {
	case is(rec.SkinType, "dry", "сухая", "сухой"):
		v -= 30
	case is(rec.SkinType, "combination", "combo", "комбинированная", "смешанная"):
		v -= 10
	}
	if anyContains(rec.Concerns, "сухость", "dryness", "dry skin", "обезвож", "dehydrat") {
		v -= 25
	}
	if anyContains(rec.Concerns, "шелушение", "flak") {
		v -= 15
	}
	if anyContains(rec.Diagnoses, "атопи", "atopic", "экзема", "eczema") {
		v -= 20
	}
	if anyContains(rec.Habits, "алкоголь", "alcohol") {
		v -= 10
	}
	if anyContains(rec.Habits, "курение", "smoking") {
		v -= 5
	}
	if is(rec.Season, "winter", "зима") {
		v -= 10
	}
	return v
}

// rawBarrier starts intact and subtracts irritation and over-treatment evidence.
func rawBarrier(rec Record) int {
	v := 100
	switch {
	case is(rec.Sensitivity, "high", "высокая"):
		v -= 25
	case is(rec.Sensitivity, "medium", "средняя"):
		v -= 10
	}
	if anyContains([]string{rec.RetinolReaction}, "раздражение", "irritation", "жжение", "burning", "покраснение") {
		v -= 20
	}
	if anyContains(rec.Diagnoses, "розацеа", "rosacea") {
		v -= 25
	}
	if anyContains(rec.Diagnoses, "атопи", "atopic", "дерматит", "dermatit", "экзема", "eczema") {
		v -= 25
	}
	if anyContains(rec.Concerns, "покраснение", "краснота", "redness") {
		v -= 15
	}
	if anyContains(rec.Concerns, "чувствительн", "sensitiv") {
		v -= 10
	}
	if anyContains(rec.Habits, "скраб", "scrub", "пилинг", "peel") {
		v -= 15
	}
	return v
}

// rawInflammation accumulates from zero; declared acne severity scales linearly.
func rawInflammation(rec Record) int {
	v := 0
	if anyContains(rec.Concerns, "акне", "acne", "прыщи", "высыпания", "breakout") {
		v += 25
	}
	if anyContains(rec.Concerns, "покраснение", "краснота", "redness") {
		v += 10
	}
	if anyContains(rec.Diagnoses, "акне", "acne") {
		v += 25
	}
	if anyContains(rec.Diagnoses, "розацеа", "rosacea") {
		v += 20
	}
	if anyContains(rec.Diagnoses, "дерматит", "dermatit", "псориаз", "psoriasis") {
		v += 20
	}
	if is(rec.SkinType, "oily", "жирная", "жирный") {
		v += 10
	}
	if rec.AcneLevel > 0 {
		v += rec.AcneLevel * 8
	}
	return v
}

func rawPigmentation(rec Record) int {
	v := 0
	if anyContains(rec.Concerns, "пигмент", "pigment", "dark spot", "пятна") {
		v += 30
	}
	if anyContains(rec.Concerns, "постакне", "post-acne", "post acne", "следы") {
		v += 15
	}
	if anyContains(rec.Diagnoses, "мелазма", "melasma", "хлоазма", "chloasma") {
		v += 30
	}
	switch {
	case is(rec.SunExposure, "high", "высокая", "frequent"):
		v += 15
	case is(rec.SunExposure, "medium", "средняя"):
		v += 5
	}
	switch {
	case is(rec.SPFUsage, "never", "никогда"):
		v += 15
	case is(rec.SPFUsage, "rarely", "редко"):
		v += 10
	}
	if rec.Age >= 35 {
		v += 10
	}
	return v
}

func rawPhotoaging(rec Record) int {
	v := 0
	switch {
	case rec.Age <= 0:
		// unanswered: no evidence
	case rec.Age < 18:
	case rec.Age < 25:
		v += 5
	case rec.Age < 35:
		v += 15
	case rec.Age < 45:
		v += 30
	default:
		v += 45
	}
	switch {
	case is(rec.SunExposure, "high", "высокая", "frequent"):
		v += 20
	case is(rec.SunExposure, "medium", "средняя"):
		v += 10
	}
	switch {
	case is(rec.SPFUsage, "never", "никогда"):
		v += 20
	case is(rec.SPFUsage, "rarely", "редко"):
		v += 10
	}
	if anyContains(rec.Habits, "курение", "smoking") {
		v += 10
	}
	if anyContains(rec.Concerns, "морщин", "wrinkle", "fine lines") {
		v += 15
	}
	return v
}
