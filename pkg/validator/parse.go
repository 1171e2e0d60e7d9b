package validator

import (
	"fmt"
	"strings"
)

const (
	ruleSeparator  = "|"
	paramSeparator = ":"
)

// Parse turns a declarative rule list such as "required|min:3|max_value:100"
// into rules in declared order. Unknown rule names are rejected with
// ErrUnknownRule.
func Parse(raw string) ([]Rule, error) {
	return parse(raw, false)
}

// ParseLenient is like Parse but silently drops unknown rule names so that
// newer markup keeps working against an older evaluator.
func ParseLenient(raw string) ([]Rule, error) {
	return parse(raw, true)
}

// ParseOne parses a single "name[:param]" token.
func ParseOne(token string) (Rule, error) {
	rules, err := Parse(token)
	if err != nil {
		return Rule{}, err
	}
	if len(rules) != 1 {
		return Rule{}, fmt.Errorf("%w: expected one rule in %q", ErrInvalidParam, token)
	}
	return rules[0], nil
}

func parse(raw string, lenient bool) ([]Rule, error) {
	var rules []Rule

	for token := range strings.SplitSeq(raw, ruleSeparator) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		// Only the first colon separates name from parameter; the remainder
		// is kept verbatim so patterns may contain colons.
		name, param, hasParam := strings.Cut(token, paramSeparator)

		kind, ok := ParseKind(strings.TrimSpace(name))
		if !ok {
			if lenient {
				continue
			}
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}

		var params []string
		if hasParam {
			params = []string{param}
		}

		rule, err := NewRule(kind, params...)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// Format renders rules back into the declarative markup form.
func Format(rules []Rule) string {
	parts := make([]string, 0, len(rules))
	for _, r := range rules {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ruleSeparator)
}
