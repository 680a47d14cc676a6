// Package recommend evaluates the prioritized recommendation rule set against
// a flattened profile to pick a care-step skeleton.
//
// Rule documents are dynamic config; they are validated into the typed
// Condition union at load time (loader.go) so matching never inspects raw
// document shapes.
package recommend

import (
	"sort"
	"strconv"
	"strings"
)

// CondKind discriminates the closed set of condition predicates.
type CondKind int

const (
	CondEquals CondKind = iota
	CondIn
	CondRange
	CondHasSome
)

// Condition is one per-field predicate of a rule.
type Condition struct {
	Kind    CondKind
	Equals  any
	In      []any
	GTE     *float64
	LTE     *float64
	HasSome []string
}

// Matches evaluates the predicate against one flattened profile value.
// A nil profile value fails range, membership, and intersection conditions.
// It fails an equality condition only when the condition carries a value:
// an equality against nothing is vacuously true. That permissive gap is
// long-standing observed behavior that downstream rule sets rely on; do not
// tighten it without a data migration.
func (c Condition) Matches(v any) bool {
	switch c.Kind {
	case CondIn:
		if v == nil {
			return false
		}
		for _, item := range c.In {
			if equalsLoose(v, item) {
				return true
			}
		}
		return false

	case CondRange:
		num, ok := toFloat(v)
		if !ok {
			return false
		}
		if c.GTE != nil && num < *c.GTE {
			return false
		}
		if c.LTE != nil && num > *c.LTE {
			return false
		}
		return true

	case CondHasSome:
		list, ok := toStringList(v)
		if !ok {
			return false
		}
		for _, item := range list {
			for _, want := range c.HasSome {
				if strings.EqualFold(item, want) {
					return true
				}
			}
		}
		return false

	default: // CondEquals
		if c.Equals == nil {
			return true
		}
		if v == nil {
			return false
		}
		return equalsLoose(v, c.Equals)
	}
}

// CareStep is one slot of the recommended skeleton.
type CareStep struct {
	Category        string   `json:"category" yaml:"category"`
	IngredientHints []string `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	Note            string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// Rule is one prioritized recommendation rule.
type Rule struct {
	ID         string
	Priority   int
	Conditions map[string]Condition
	Steps      []CareStep
}

// matches reports whether every condition of the rule is satisfied
// (AND semantics). A condition key absent from the rule is vacuously true.
func (r Rule) matches(flat map[string]any) bool {
	for field, cond := range r.Conditions {
		if !cond.Matches(flat[field]) {
			return false
		}
	}
	return true
}

// Match evaluates rules against a flattened profile: priority descending,
// ties broken by declaration order, first match wins. The second return is
// false when no rule matches; the caller falls back to its designated default
// rule rather than this package guessing one.
//
// Determinism: the input slice is never mutated, and for a fixed profile and
// rule list (including insertion order) the same rule always wins.
func Match(flat map[string]any, rules []Rule) (Rule, bool) {
	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})
	for _, r := range ordered {
		if r.matches(flat) {
			return r, true
		}
	}
	return Rule{}, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toStringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// equalsLoose compares numerically when both sides parse as numbers,
// otherwise by case-insensitive string form. Documents and profiles disagree
// on scalar types (JSON floats vs Go ints vs enum strings); matching must not.
func equalsLoose(a, b any) bool {
	fa, aok := toFloat(a)
	fb, bok := toFloat(b)
	if aok && bok {
		return fa == fb
	}
	return strings.EqualFold(stringForm(a), stringForm(b))
}

func stringForm(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}
