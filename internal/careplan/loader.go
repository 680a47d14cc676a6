package careplan

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	dErrors "dermis/pkg/domain-errors"
)

// templatesDoc is the wire shape of a template set document.
type templatesDoc struct {
	Templates []Template `json:"templates" yaml:"templates"`
}

// ParseTemplatesJSON loads and validates a JSON template document.
func ParseTemplatesJSON(data []byte) ([]Template, error) {
	var doc templatesDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed templates document")
	}
	return validateTemplates(doc.Templates)
}

// ParseTemplatesYAML loads and validates a YAML template document.
func ParseTemplatesYAML(data []byte) ([]Template, error) {
	var doc templatesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed templates document")
	}
	return validateTemplates(doc.Templates)
}

// validateTemplates rejects documents that could fail at selection time.
// Selection must be total, so the last template is required to be an
// unconditional catch-all.
func validateTemplates(templates []Template) ([]Template, error) {
	if len(templates) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "templates document has no templates")
	}

	seen := make(map[string]struct{}, len(templates))
	for i, tpl := range templates {
		if tpl.ID == "" {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput, "template %d has no id", i)
		}
		if _, dup := seen[tpl.ID]; dup {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput, "duplicate template id %q", tpl.ID)
		}
		seen[tpl.ID] = struct{}{}
		if len(tpl.MorningSteps) == 0 && len(tpl.EveningSteps) == 0 {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput, "template %q has no steps", tpl.ID)
		}
	}

	last := templates[len(templates)-1]
	if !unconditional(last.Conditions) {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput,
			"last template %q must be an unconditional catch-all", last.ID)
	}
	return templates, nil
}

func unconditional(c Conditions) bool {
	return len(c.SkinTypes) == 0 && len(c.Goals) == 0 &&
		len(c.Sensitivities) == 0 && len(c.RoutineComplexities) == 0
}
