package recommend

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	dErrors "dermis/pkg/domain-errors"
)

// Rule documents are weakly-typed JSON/YAML. They are rejected here, at load
// time, so a malformed rule can never surface mid-match in production.

// ruleDoc is the wire shape of one rule.
type ruleDoc struct {
	ID         string         `json:"id" yaml:"id"`
	Priority   int            `json:"priority" yaml:"priority"`
	Conditions map[string]any `json:"conditions" yaml:"conditions"`
	Steps      []CareStep     `json:"steps" yaml:"steps"`
}

// rulesDoc is the wire shape of a rule set document.
type rulesDoc struct {
	Rules         []ruleDoc `json:"rules" yaml:"rules"`
	DefaultRuleID string    `json:"default_rule_id" yaml:"default_rule_id"`
}

// RuleSet is the validated, immutable in-memory form of a rule document.
type RuleSet struct {
	Rules   []Rule
	Default Rule
}

// ParseRulesJSON loads and validates a JSON rule document.
func ParseRulesJSON(data []byte) (*RuleSet, error) {
	var doc rulesDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed rules document")
	}
	return buildRuleSet(doc)
}

// ParseRulesYAML loads and validates a YAML rule document.
func ParseRulesYAML(data []byte) (*RuleSet, error) {
	var doc rulesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed rules document")
	}
	return buildRuleSet(doc)
}

func buildRuleSet(doc rulesDoc) (*RuleSet, error) {
	if len(doc.Rules) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "rules document has no rules")
	}

	set := &RuleSet{Rules: make([]Rule, 0, len(doc.Rules))}
	seen := make(map[string]struct{}, len(doc.Rules))

	for i, rd := range doc.Rules {
		if rd.ID == "" {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput, "rule %d has no id", i)
		}
		if _, dup := seen[rd.ID]; dup {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput, "duplicate rule id %q", rd.ID)
		}
		seen[rd.ID] = struct{}{}
		if len(rd.Steps) == 0 {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput, "rule %q has no steps", rd.ID)
		}
		for _, step := range rd.Steps {
			if step.Category == "" {
				return nil, dErrors.Newf(dErrors.CodeInvalidInput, "rule %q has a step without category", rd.ID)
			}
		}

		conds := make(map[string]Condition, len(rd.Conditions))
		for field, raw := range rd.Conditions {
			cond, err := normalizeCondition(raw)
			if err != nil {
				return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput,
					fmt.Sprintf("rule %q condition %q", rd.ID, field))
			}
			conds[field] = cond
		}

		set.Rules = append(set.Rules, Rule{
			ID:         rd.ID,
			Priority:   rd.Priority,
			Conditions: conds,
			Steps:      rd.Steps,
		})
	}

	if doc.DefaultRuleID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "rules document has no default_rule_id")
	}
	found := false
	for _, r := range set.Rules {
		if r.ID == doc.DefaultRuleID {
			set.Default = r
			found = true
			break
		}
	}
	if !found {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "default rule %q not present in document", doc.DefaultRuleID)
	}
	if len(set.Default.Conditions) != 0 {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "default rule %q must have no conditions", doc.DefaultRuleID)
	}

	return set, nil
}

// normalizeCondition resolves a raw condition value into the typed union:
// list → membership, {gte,lte} → range, {hasSome} → intersection,
// scalar → equality. Anything else is a document bug.
func normalizeCondition(raw any) (Condition, error) {
	switch v := raw.(type) {
	case nil:
		return Condition{Kind: CondEquals}, nil

	case string, bool, float64, int:
		return Condition{Kind: CondEquals, Equals: v}, nil

	case []any:
		if len(v) == 0 {
			return Condition{}, fmt.Errorf("membership list is empty")
		}
		for _, item := range v {
			switch item.(type) {
			case string, bool, float64, int:
			default:
				return Condition{}, fmt.Errorf("membership list items must be scalars")
			}
		}
		return Condition{Kind: CondIn, In: v}, nil

	case map[string]any:
		return normalizeObjectCondition(v)

	default:
		return Condition{}, fmt.Errorf("unsupported condition shape %T", raw)
	}
}

func normalizeObjectCondition(obj map[string]any) (Condition, error) {
	if rawSome, ok := obj["hasSome"]; ok {
		if len(obj) != 1 {
			return Condition{}, fmt.Errorf("hasSome cannot combine with other keys")
		}
		list, ok := toStringList(rawSome)
		if !ok || len(list) == 0 {
			return Condition{}, fmt.Errorf("hasSome requires a non-empty string list")
		}
		return Condition{Kind: CondHasSome, HasSome: list}, nil
	}

	cond := Condition{Kind: CondRange}
	for key, raw := range obj {
		switch key {
		case "gte":
			n, ok := toFloat(raw)
			if !ok {
				return Condition{}, fmt.Errorf("gte must be numeric")
			}
			cond.GTE = &n
		case "lte":
			n, ok := toFloat(raw)
			if !ok {
				return Condition{}, fmt.Errorf("lte must be numeric")
			}
			cond.LTE = &n
		default:
			return Condition{}, fmt.Errorf("unknown condition key %q", key)
		}
	}
	if cond.GTE == nil && cond.LTE == nil {
		return Condition{}, fmt.Errorf("range condition needs gte or lte")
	}
	if cond.GTE != nil && cond.LTE != nil && *cond.GTE > *cond.LTE {
		return Condition{}, fmt.Errorf("range bounds are inverted")
	}
	return cond, nil
}
