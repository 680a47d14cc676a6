package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodRulesJSON = `{
  "rules": [
    {
      "id": "acne_oily_high",
      "priority": 100,
      "conditions": {
        "skin_type": ["oily", "combination_oily"],
        "inflammation": {"gte": 55},
        "main_goals": {"hasSome": ["acne"]},
        "pregnancy_status": "none"
      },
      "steps": [
        {"category": "cleanser", "ingredients": ["bha_acids"]},
        {"category": "treatment", "ingredients": ["benzoyl_peroxide", "azelaic_acid"]},
        {"category": "moisturizer"},
        {"category": "spf"}
      ]
    },
    {
      "id": "default_general",
      "priority": 0,
      "conditions": {},
      "steps": [
        {"category": "cleanser"},
        {"category": "moisturizer"},
        {"category": "spf"}
      ]
    }
  ],
  "default_rule_id": "default_general"
}`

func TestParseRulesJSON(t *testing.T) {
	set, err := ParseRulesJSON([]byte(goodRulesJSON))
	require.NoError(t, err)
	require.Len(t, set.Rules, 2)
	assert.Equal(t, "default_general", set.Default.ID)

	rule := set.Rules[0]
	assert.Equal(t, CondIn, rule.Conditions["skin_type"].Kind)
	assert.Equal(t, CondRange, rule.Conditions["inflammation"].Kind)
	assert.Equal(t, CondHasSome, rule.Conditions["main_goals"].Kind)
	assert.Equal(t, CondEquals, rule.Conditions["pregnancy_status"].Kind)
}

func TestParseRulesJSON_MatchEndToEnd(t *testing.T) {
	set, err := ParseRulesJSON([]byte(goodRulesJSON))
	require.NoError(t, err)

	flat := map[string]any{
		"skin_type":        "oily",
		"inflammation":     92.0,
		"main_goals":       []string{"acne"},
		"pregnancy_status": "none",
	}
	matched, ok := Match(flat, set.Rules)
	require.True(t, ok)
	assert.Equal(t, "acne_oily_high", matched.ID)

	// Pregnant profile falls past the acne rule to the default.
	flat["pregnancy_status"] = "pregnant"
	matched, ok = Match(flat, set.Rules)
	require.True(t, ok)
	assert.Equal(t, "default_general", matched.ID)
}

func TestParseRulesYAML(t *testing.T) {
	doc := `
rules:
  - id: hydration_dry
    priority: 50
    conditions:
      skin_type: [dry, combination_dry]
      hydration:
        gte: 55
    steps:
      - category: cleanser
      - category: serum
        ingredients: [hyaluronic_acid]
      - category: moisturizer
        ingredients: [ceramides]
  - id: default_general
    priority: 0
    steps:
      - category: cleanser
      - category: moisturizer
default_rule_id: default_general
`
	set, err := ParseRulesYAML([]byte(doc))
	require.NoError(t, err)
	require.Len(t, set.Rules, 2)
	assert.Equal(t, CondRange, set.Rules[0].Conditions["hydration"].Kind)

	matched, ok := Match(map[string]any{"skin_type": "dry", "hydration": 70.0}, set.Rules)
	require.True(t, ok)
	assert.Equal(t, "hydration_dry", matched.ID)
}

func TestParseRules_RejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"no rules", `{"rules": [], "default_rule_id": "x"}`},
		{"missing id", `{"rules":[{"priority":1,"steps":[{"category":"spf"}]}],"default_rule_id":"x"}`},
		{"duplicate id", `{"rules":[
			{"id":"a","steps":[{"category":"spf"}]},
			{"id":"a","steps":[{"category":"spf"}]}
		],"default_rule_id":"a"}`},
		{"no steps", `{"rules":[{"id":"a","steps":[]}],"default_rule_id":"a"}`},
		{"step without category", `{"rules":[{"id":"a","steps":[{"note":"x"}]}],"default_rule_id":"a"}`},
		{"unknown condition object key", `{"rules":[{"id":"a","conditions":{"x":{"gt":5}},"steps":[{"category":"spf"}]}],"default_rule_id":"a"}`},
		{"range with no bounds", `{"rules":[{"id":"a","conditions":{"x":{}},"steps":[{"category":"spf"}]}],"default_rule_id":"a"}`},
		{"inverted range", `{"rules":[{"id":"a","conditions":{"x":{"gte":10,"lte":5}},"steps":[{"category":"spf"}]}],"default_rule_id":"a"}`},
		{"empty membership list", `{"rules":[{"id":"a","conditions":{"x":[]},"steps":[{"category":"spf"}]}],"default_rule_id":"a"}`},
		{"hasSome not a list", `{"rules":[{"id":"a","conditions":{"x":{"hasSome":"acne"}},"steps":[{"category":"spf"}]}],"default_rule_id":"a"}`},
		{"hasSome combined with range", `{"rules":[{"id":"a","conditions":{"x":{"hasSome":["acne"],"gte":1}},"steps":[{"category":"spf"}]}],"default_rule_id":"a"}`},
		{"no default rule id", `{"rules":[{"id":"a","steps":[{"category":"spf"}]}]}`},
		{"default rule missing", `{"rules":[{"id":"a","steps":[{"category":"spf"}]}],"default_rule_id":"b"}`},
		{"default rule has conditions", `{"rules":[{"id":"a","conditions":{"skin_type":"dry"},"steps":[{"category":"spf"}]}],"default_rule_id":"a"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRulesJSON([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}
