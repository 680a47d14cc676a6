package careplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplatesYAML(t *testing.T) {
	doc := `
templates:
  - id: hydration_dry
    conditions:
      skin_types: [dry, combination_dry]
      goals: [hydration]
    morning_steps: [cream_cleanser, hydrating_serum, spf]
    evening_steps: [cream_cleanser, rich_moisturizer]
    weekly_steps: [hydrating_mask]
  - id: default_balanced
    morning_steps: [cleanser, moisturizer, spf]
    evening_steps: [cleanser, moisturizer]
`
	templates, err := ParseTemplatesYAML([]byte(doc))
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "hydration_dry", templates[0].ID)
	assert.Len(t, templates[0].Conditions.SkinTypes, 2)
	assert.Equal(t, []string{"hydrating_mask"}, templates[0].WeeklySteps)
}

func TestParseTemplates_RejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"no templates", `{"templates": []}`},
		{"missing id", `{"templates":[{"morning_steps":["a"]}]}`},
		{"duplicate id", `{"templates":[
			{"id":"a","morning_steps":["x"]},
			{"id":"a","morning_steps":["x"]}
		]}`},
		{"no steps", `{"templates":[{"id":"a"}]}`},
		{"no catch-all last", `{"templates":[
			{"id":"specific","conditions":{"goals":["acne"]},"morning_steps":["x"]}
		]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplatesJSON([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestBuiltinPassesDocumentValidation(t *testing.T) {
	_, err := validateTemplates(Builtin())
	assert.NoError(t, err)
}
