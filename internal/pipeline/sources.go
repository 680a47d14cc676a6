package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"dermis/internal/careplan"
	"dermis/internal/recommend"
	dErrors "dermis/pkg/domain-errors"
)

// Rule and template documents are loaded once at startup into immutable
// values; the sources below only hand them out.

// StaticRules serves a pre-validated rule set.
type StaticRules struct {
	Set *recommend.RuleSet
}

func (s StaticRules) Rules(context.Context) (*recommend.RuleSet, error) {
	return s.Set, nil
}

// StaticTemplates serves a fixed template list.
type StaticTemplates struct {
	List []careplan.Template
}

func (s StaticTemplates) Templates(context.Context) ([]careplan.Template, error) {
	return s.List, nil
}

// LoadRules reads and validates a rule document, JSON or YAML by extension.
func LoadRules(path string) (StaticRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StaticRules{}, dErrors.Wrap(err, dErrors.CodeInternal, "read rules document")
	}
	var set *recommend.RuleSet
	if isYAML(path) {
		set, err = recommend.ParseRulesYAML(data)
	} else {
		set, err = recommend.ParseRulesJSON(data)
	}
	if err != nil {
		return StaticRules{}, err
	}
	return StaticRules{Set: set}, nil
}

// LoadTemplates reads and validates a template document, JSON or YAML by
// extension. An empty path serves the builtin set.
func LoadTemplates(path string) (StaticTemplates, error) {
	if path == "" {
		return StaticTemplates{List: careplan.Builtin()}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return StaticTemplates{}, dErrors.Wrap(err, dErrors.CodeInternal, "read templates document")
	}
	var list []careplan.Template
	if isYAML(path) {
		list, err = careplan.ParseTemplatesYAML(data)
	} else {
		list, err = careplan.ParseTemplatesJSON(data)
	}
	if err != nil {
		return StaticTemplates{}, err
	}
	return StaticTemplates{List: list}, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
