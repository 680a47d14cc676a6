package taxonomy

import "strings"

// primaryFocusToConcerns is the forward mapping: which concerns a focus
// addresses. Its inverse concernToPrimaryFocus must stay consistent with it:
// every concern maps to exactly one focus, and every focus here is reachable
// from at least one concern mapping back to it. The taxonomy tests guard both
// directions.
var primaryFocusToConcerns = map[PrimaryFocus][]ConcernKey{
	FocusAntiAcne:    {ConcernAcne, ConcernPores, ConcernOilyShine},
	FocusHydration:   {ConcernDryness},
	FocusAntiAging:   {ConcernWrinkles, ConcernDarkCircles},
	FocusBrightening: {ConcernPigmentation, ConcernPostAcne, ConcernDullness, ConcernTexture},
	FocusSoothing:    {ConcernRedness, ConcernSensitivity},
}

// concernToPrimaryFocus is the inverse of primaryFocusToConcerns.
var concernToPrimaryFocus = map[ConcernKey]PrimaryFocus{
	ConcernAcne:         FocusAntiAcne,
	ConcernPores:        FocusAntiAcne,
	ConcernOilyShine:    FocusAntiAcne,
	ConcernDryness:      FocusHydration,
	ConcernWrinkles:     FocusAntiAging,
	ConcernDarkCircles:  FocusAntiAging,
	ConcernPigmentation: FocusBrightening,
	ConcernPostAcne:     FocusBrightening,
	ConcernDullness:     FocusBrightening,
	ConcernTexture:      FocusBrightening,
	ConcernRedness:      FocusSoothing,
	ConcernSensitivity:  FocusSoothing,
}

// FocusConcerns returns the concerns a focus addresses; nil for FocusGeneral.
func FocusConcerns(f PrimaryFocus) []ConcernKey {
	return primaryFocusToConcerns[f]
}

// FocusForConcern returns the single focus a concern drives.
func FocusForConcern(c ConcernKey) (PrimaryFocus, bool) {
	f, ok := concernToPrimaryFocus[c]
	return f, ok
}

// NormalizePrimaryFocus returns focus as-is when it is already canonical,
// otherwise derives it from the first concern with a known mapping, otherwise
// FocusGeneral.
func NormalizePrimaryFocus(focus string, concerns []ConcernKey) PrimaryFocus {
	f := PrimaryFocus(strings.ToLower(strings.TrimSpace(focus)))
	for _, known := range PrimaryFocuses() {
		if f == known {
			return f
		}
	}
	for _, c := range concerns {
		if derived, ok := concernToPrimaryFocus[c]; ok {
			return derived
		}
	}
	return FocusGeneral
}

// ProductConcernsMatchPrimaryFocus decides whether a product belongs to a
// focus. A product with no concerns matches only FocusGeneral; FocusGeneral
// matches every product; otherwise the product's concerns must intersect the
// focus's concern set.
func ProductConcernsMatchPrimaryFocus(productConcerns []ConcernKey, focus PrimaryFocus) bool {
	if focus == FocusGeneral {
		return true
	}
	if len(productConcerns) == 0 {
		return false
	}
	for _, pc := range productConcerns {
		for _, fc := range primaryFocusToConcerns[focus] {
			if pc == fc {
				return true
			}
		}
	}
	return false
}
