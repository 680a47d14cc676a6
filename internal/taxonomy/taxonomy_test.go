package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Synonym table round-trip stability
// =============================================================================
// The synonym tables are the regression guard against raw strings leaking into
// rule conditions: normalizing a key's own canonical string must return the
// key itself, for every key.

func TestConcernRoundTrip(t *testing.T) {
	for _, k := range ConcernKeys() {
		got, ok := NormalizeConcern(string(k))
		require.True(t, ok, "canonical concern %q must normalize", k)
		assert.Equal(t, k, got)
	}
}

func TestNormalizeConcern(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ConcernKey
		ok    bool
	}{
		{"russian alias with capital", "Расширенные поры", ConcernPores, true},
		{"russian acne", "Акне", ConcernAcne, true},
		{"english with whitespace", "  dark spots  ", ConcernPigmentation, true},
		{"unknown input", "unknown_xyz", "", false},
		{"empty input", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeConcern(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeConcerns(t *testing.T) {
	t.Run("dedupes and preserves first occurrence order", func(t *testing.T) {
		got := NormalizeConcerns([]string{"Акне", "поры", "прыщи", "wrinkles", "акне"})
		assert.Equal(t, []ConcernKey{ConcernAcne, ConcernPores, ConcernWrinkles}, got)
	})

	t.Run("drops unmapped entries silently", func(t *testing.T) {
		got := NormalizeConcerns([]string{"гравитация", "акне", "???"})
		assert.Equal(t, []ConcernKey{ConcernAcne}, got)
	})

	t.Run("nil input yields nil", func(t *testing.T) {
		assert.Nil(t, NormalizeConcerns(nil))
	})
}

// =============================================================================
// Focus / concern mapping consistency
// =============================================================================

func TestFocusConcernConsistency(t *testing.T) {
	t.Run("every concern maps to exactly one focus", func(t *testing.T) {
		for _, c := range ConcernKeys() {
			f, ok := FocusForConcern(c)
			require.True(t, ok, "concern %q has no focus", c)
			assert.NotEqual(t, FocusGeneral, f, "concern %q must not map to general", c)
		}
	})

	t.Run("every non-general focus is reachable from some concern", func(t *testing.T) {
		for _, f := range PrimaryFocuses() {
			if f == FocusGeneral {
				continue
			}
			reachable := false
			for _, c := range FocusConcerns(f) {
				if back, ok := FocusForConcern(c); ok && back == f {
					reachable = true
					break
				}
			}
			assert.True(t, reachable, "focus %q unreachable from its own concern set", f)
		}
	})

	t.Run("forward and inverse tables agree", func(t *testing.T) {
		for _, f := range PrimaryFocuses() {
			for _, c := range FocusConcerns(f) {
				back, ok := FocusForConcern(c)
				require.True(t, ok)
				assert.Equal(t, f, back, "concern %q listed under %q but maps back to %q", c, f, back)
			}
		}
	})
}

func TestNormalizePrimaryFocus(t *testing.T) {
	t.Run("valid canonical focus returned as-is", func(t *testing.T) {
		assert.Equal(t, FocusAntiAcne, NormalizePrimaryFocus("anti_acne", nil))
	})

	t.Run("derived from first mappable concern", func(t *testing.T) {
		got := NormalizePrimaryFocus("whatever", []ConcernKey{ConcernDryness, ConcernAcne})
		assert.Equal(t, FocusHydration, got)
	})

	t.Run("falls back to general", func(t *testing.T) {
		assert.Equal(t, FocusGeneral, NormalizePrimaryFocus("", nil))
	})
}

func TestProductConcernsMatchPrimaryFocus(t *testing.T) {
	t.Run("general focus matches every product", func(t *testing.T) {
		assert.True(t, ProductConcernsMatchPrimaryFocus(nil, FocusGeneral))
		assert.True(t, ProductConcernsMatchPrimaryFocus([]ConcernKey{ConcernAcne}, FocusGeneral))
	})

	t.Run("product with no concerns matches only general", func(t *testing.T) {
		assert.False(t, ProductConcernsMatchPrimaryFocus(nil, FocusAntiAcne))
	})

	t.Run("intersection decides the rest", func(t *testing.T) {
		assert.True(t, ProductConcernsMatchPrimaryFocus([]ConcernKey{ConcernPores}, FocusAntiAcne))
		assert.False(t, ProductConcernsMatchPrimaryFocus([]ConcernKey{ConcernWrinkles}, FocusAntiAcne))
	})
}

// =============================================================================
// Skin type, sensitivity, age group
// =============================================================================

func TestNormalizeSkinType(t *testing.T) {
	tests := []struct {
		input string
		want  SkinTypeKey
		ok    bool
	}{
		{"жирная", SkinTypeOily, true},
		{"Dry", SkinTypeDry, true},
		{"combo", SkinTypeCombination, true},
		{"смешанная", SkinTypeCombination, true},
		{"stone", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeSkinType(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestExpandSkinType(t *testing.T) {
	t.Run("non-combination passes through", func(t *testing.T) {
		assert.Equal(t, []SkinTypeKey{SkinTypeOily}, ExpandSkinType(SkinTypeOily, false, false))
	})

	t.Run("combination expands by bias", func(t *testing.T) {
		assert.Equal(t,
			[]SkinTypeKey{SkinTypeCombination, SkinTypeCombinationDry},
			ExpandSkinType(SkinTypeCombination, true, false))
		assert.Equal(t,
			[]SkinTypeKey{SkinTypeCombination, SkinTypeCombinationOily},
			ExpandSkinType(SkinTypeCombination, false, true))
	})

	t.Run("no evidence keeps both variants", func(t *testing.T) {
		assert.Len(t, ExpandSkinType(SkinTypeCombination, false, false), 3)
		assert.Len(t, ExpandSkinType(SkinTypeCombination, true, true), 3)
	})
}

func TestNormalizeAgeGroup(t *testing.T) {
	tests := []struct {
		input string
		want  AgeGroupKey
		ok    bool
	}{
		{"25_34", AgeGroup25_34, true},
		{"45+", AgeGroup45Up, true},
		{"17", AgeGroupU18, true},
		{"18", AgeGroup18_24, true},
		{"24", AgeGroup18_24, true},
		{"25", AgeGroup25_34, true},
		{"34", AgeGroup25_34, true},
		{"35", AgeGroup35_44, true},
		{"44", AgeGroup35_44, true},
		{"45", AgeGroup45Up, true},
		{"34.0", AgeGroup25_34, true},
		{"17.9", AgeGroupU18, true},
		{"ninety", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeAgeGroup(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestNormalizeIngredients(t *testing.T) {
	got := NormalizeIngredients([]string{"Ретинол", "salicylic acid", "unobtainium", "tretinoin"})
	assert.Equal(t, []IngredientKey{IngredientRetinol, IngredientBHA}, got)
}
