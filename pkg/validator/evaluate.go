package validator

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/borrmann/bautagebuch/pkg/logger"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Lookup resolves the current value of a sibling field.
type Lookup interface {
	Lookup(name string) (string, bool)
}

// Values is a Lookup backed by a plain map.
type Values map[string]string

func (v Values) Lookup(name string) (string, bool) {
	val, ok := v[name]
	return val, ok
}

// UniqueChecker decides the unique rule, typically with a server round trip.
type UniqueChecker interface {
	IsUnique(ctx context.Context, field, value string) (bool, error)
}

// UniqueCheckerFunc adapts a function to UniqueChecker.
type UniqueCheckerFunc func(ctx context.Context, field, value string) (bool, error)

func (f UniqueCheckerFunc) IsUnique(ctx context.Context, field, value string) (bool, error) {
	return f(ctx, field, value)
}

// Evaluator applies rule lists to field values.
type Evaluator struct {
	messages *Messages
	unique   UniqueChecker
	logger   *slog.Logger
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

func WithMessages(m *Messages) EvaluatorOption {
	return func(e *Evaluator) {
		if m != nil {
			e.messages = m
		}
	}
}

// WithUniqueChecker wires the unique rule. Without a checker unique always passes.
func WithUniqueChecker(c UniqueChecker) EvaluatorOption {
	return func(e *Evaluator) {
		e.unique = c
	}
}

func WithLogger(l *slog.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		messages: DefaultMessages(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs rules against value in declared order and stops at the
// first failure. It returns nil when every rule passes.
func (e *Evaluator) Evaluate(ctx context.Context, field, value string, rules []Rule, siblings Lookup) *ValidationError {
	value = strings.TrimSpace(value)

	for _, rule := range rules {
		if e.passes(ctx, field, value, rule, siblings) {
			continue
		}
		verr := e.failure(field, rule)
		return &verr
	}
	return nil
}

func (e *Evaluator) passes(ctx context.Context, field, value string, rule Rule, siblings Lookup) bool {
	if rule.Kind == KindRequired {
		return value != ""
	}

	// required is the only gate for emptiness.
	if value == "" {
		return true
	}

	switch rule.Kind {
	case KindEmail:
		return emailRegex.MatchString(value)
	case KindMin:
		return utf8.RuneCountInString(value) >= rule.length
	case KindMax:
		return utf8.RuneCountInString(value) <= rule.length
	case KindNumeric:
		_, ok := parseNumber(value)
		return ok
	case KindMinValue:
		n, ok := parseLeadingNumber(value)
		return !ok || n >= rule.bound
	case KindMaxValue:
		n, ok := parseLeadingNumber(value)
		return !ok || n <= rule.bound
	case KindPattern:
		return rule.re.MatchString(value)
	case KindMatch:
		if siblings == nil {
			return true
		}
		other, ok := siblings.Lookup(rule.target)
		if !ok {
			return true
		}
		return value == other
	case KindUnique:
		return e.checkUnique(ctx, field, value)
	}
	return true
}

func (e *Evaluator) checkUnique(ctx context.Context, field, value string) bool {
	if e.unique == nil {
		return true
	}
	ok, err := e.unique.IsUnique(ctx, field, value)
	if err != nil {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "unique check failed, accepting value",
			logger.Field(field),
			logger.Error(err),
		)
		return true
	}
	return ok
}

func (e *Evaluator) failure(field string, rule Rule) ValidationError {
	values := map[string]any{"field": field}
	var key string

	switch rule.Kind {
	case KindRequired:
		key = KeyRequired
	case KindEmail:
		key = KeyEmail
	case KindMin:
		key = KeyMinLength
		values["min"] = rule.length
	case KindMax:
		key = KeyMaxLength
		values["max"] = rule.length
	case KindNumeric:
		key = KeyNumeric
	case KindMinValue:
		key = KeyMinValue
		values["min"] = formatBound(rule.bound)
	case KindMaxValue:
		key = KeyMaxValue
		values["max"] = formatBound(rule.bound)
	case KindPattern:
		key = KeyPattern
		values["pattern"] = rule.re.String()
	case KindMatch:
		key = KeyMatch
		values["other"] = rule.target
	case KindUnique:
		key = KeyUnique
	}

	return ValidationError{
		Field:             field,
		Rule:              rule.Kind,
		Message:           e.messages.Render(key, values),
		TranslationKey:    key,
		TranslationValues: values,
	}
}

var (
	decimalRegex = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
	integerRegex = regexp.MustCompile(`^0(?:[xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
	leadingRegex = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)
)

// parseNumber reads s as a whole number the way a browser coerces a form
// value: decimal with optional exponent, Infinity, or an unsigned 0x, 0o
// or 0b literal. Digit separators are not numbers.
func parseNumber(s string) (float64, bool) {
	switch {
	case decimalRegex.MatchString(s):
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil || errors.Is(err, strconv.ErrRange)
	case integerRegex.MatchString(s):
		n, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return math.Inf(1), errors.Is(err, strconv.ErrRange)
		}
		return float64(n), true
	}
	return infinity(s)
}

// parseLeadingNumber reads the longest decimal prefix of s, so "12abc" is 12.
// It fails when s does not start with a number.
func parseLeadingNumber(s string) (float64, bool) {
	prefix := leadingRegex.FindString(s)
	if prefix == "" {
		return 0, false
	}
	if f, ok := infinity(prefix); ok {
		return f, true
	}
	f, err := strconv.ParseFloat(prefix, 64)
	return f, err == nil || errors.Is(err, strconv.ErrRange)
}

func infinity(s string) (float64, bool) {
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	return 0, false
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
