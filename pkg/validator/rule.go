package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Rule is a parsed constraint. Parameters are validated and pre-computed
// when the rule is built, so evaluation never fails on a bad parameter.
type Rule struct {
	Kind   Kind
	Params []string

	length int
	bound  float64
	re     *regexp.Regexp
	target string
}

// NewRule builds a rule of the given kind from its raw parameters.
func NewRule(kind Kind, params ...string) (Rule, error) {
	r := Rule{Kind: kind, Params: params}

	switch kind {
	case KindRequired, KindEmail, KindNumeric, KindUnique:
	case KindMin, KindMax:
		p, err := firstParam(kind, params)
		if err != nil {
			return Rule{}, err
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Rule{}, fmt.Errorf("%w: %s expects a non-negative length, got %q", ErrInvalidParam, kind, p)
		}
		r.length = n
	case KindMinValue, KindMaxValue:
		p, err := firstParam(kind, params)
		if err != nil {
			return Rule{}, err
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return Rule{}, fmt.Errorf("%w: %s expects a number, got %q", ErrInvalidParam, kind, p)
		}
		r.bound = f
	case KindPattern:
		p, err := firstParam(kind, params)
		if err != nil {
			return Rule{}, err
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return Rule{}, fmt.Errorf("%w: pattern %q: %v", ErrInvalidParam, p, err)
		}
		r.re = re
	case KindMatch:
		p, err := firstParam(kind, params)
		if err != nil {
			return Rule{}, err
		}
		r.target = p
	default:
		return Rule{}, fmt.Errorf("%w: kind %d", ErrUnknownRule, kind)
	}

	return r, nil
}

// MustRule is like NewRule but panics on error. Intended for static rule sets.
func MustRule(kind Kind, params ...string) Rule {
	r, err := NewRule(kind, params...)
	if err != nil {
		panic(err)
	}
	return r
}

// Target returns the sibling field name of a match rule.
func (r Rule) Target() string {
	return r.target
}

// String renders the rule back into markup form, e.g. "min:3".
func (r Rule) String() string {
	if len(r.Params) == 0 {
		return r.Kind.String()
	}
	return r.Kind.String() + ":" + strings.Join(r.Params, ":")
}

// Equal reports whether two rules have the same kind and parameters.
func (r Rule) Equal(o Rule) bool {
	return r.String() == o.String()
}

func firstParam(kind Kind, params []string) (string, error) {
	if len(params) == 0 || strings.TrimSpace(params[0]) == "" {
		return "", fmt.Errorf("%w: %s requires a parameter", ErrInvalidParam, kind)
	}
	return strings.TrimSpace(params[0]), nil
}
