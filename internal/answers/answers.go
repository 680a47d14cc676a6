// Package answers models raw questionnaire submissions.
//
// Question codes are unstable: legacy and camelCase aliases coexist, and values
// arrive as scalars, lists, or keyed sub-answers depending on questionnaire
// version. This package resolves both problems once, at the boundary;
// downstream code only ever sees canonical field names and the closed Value
// sum type.
package answers

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the closed set of answer value shapes.
type Kind int

const (
	KindNone Kind = iota
	KindScalar
	KindList
	KindSubKeyed
)

// Value is a closed sum over the shapes a questionnaire answer can take.
// Construct via Scalar, List, SubKeyed, or FromAny; the zero Value is KindNone.
type Value struct {
	kind   Kind
	scalar string
	list   []string
	sub    map[string]string
}

// Scalar wraps a single free-text or choice answer.
func Scalar(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// List wraps a multi-choice answer.
func List(items ...string) Value {
	return Value{kind: KindList, list: items}
}

// SubKeyed wraps a grouped answer (sub-question code → value).
func SubKeyed(sub map[string]string) Value {
	return Value{kind: KindSubKeyed, sub: sub}
}

// FromAny resolves a duck-typed payload value into the closed sum type.
// This is the only place runtime shape inspection is allowed; unknown shapes
// degrade to KindNone rather than erroring.
func FromAny(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{}
	case string:
		return Scalar(v)
	case bool:
		return Scalar(strconv.FormatBool(v))
	case float64:
		return Scalar(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		return Scalar(strconv.Itoa(v))
	case []string:
		return List(v...)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s := FromAny(item); s.kind == KindScalar {
				items = append(items, s.scalar)
			}
		}
		return List(items...)
	case map[string]any:
		sub := make(map[string]string, len(v))
		for k, item := range v {
			if s := FromAny(item); s.kind == KindScalar {
				sub[k] = s.scalar
			}
		}
		return SubKeyed(sub)
	case map[string]string:
		return SubKeyed(v)
	default:
		return Value{}
	}
}

// Kind returns the shape discriminator.
func (v Value) Kind() Kind {
	return v.kind
}

// IsZero reports whether the value carries no answer.
func (v Value) IsZero() bool {
	return v.kind == KindNone
}

// ScalarOr returns the scalar form, or def when the value is not a scalar.
func (v Value) ScalarOr(def string) string {
	if v.kind == KindScalar {
		return v.scalar
	}
	return def
}

// AsList coerces the value to a list: scalars become one-element lists,
// sub-keyed answers flatten to their values, none yields nil.
func (v Value) AsList() []string {
	switch v.kind {
	case KindScalar:
		if v.scalar == "" {
			return nil
		}
		return []string{v.scalar}
	case KindList:
		return v.list
	case KindSubKeyed:
		out := make([]string, 0, len(v.sub))
		for _, s := range v.sub {
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}

// Sub returns the sub-answer for key, or empty when absent or not sub-keyed.
func (v Value) Sub(key string) string {
	if v.kind != KindSubKeyed {
		return ""
	}
	return v.sub[key]
}

// Int coerces a scalar to an integer, returning def on failure.
func (v Value) Int(def int) int {
	if v.kind != KindScalar {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.scalar))
	if err != nil {
		// Ages occasionally arrive as "34.0" from older clients.
		f, ferr := strconv.ParseFloat(strings.TrimSpace(v.scalar), 64)
		if ferr != nil {
			return def
		}
		return int(f)
	}
	return n
}

func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindList:
		return strings.Join(v.list, ",")
	case KindSubKeyed:
		return fmt.Sprintf("sub(%d)", len(v.sub))
	default:
		return ""
	}
}
