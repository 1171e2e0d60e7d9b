package form

import (
	"log/slog"

	"github.com/borrmann/bautagebuch/pkg/validator"
)

var (
	strictParser  = validator.NewParser(512, false)
	lenientParser = validator.NewParser(512, true)
)

type options struct {
	evaluator       *validator.Evaluator
	parser          *validator.Parser
	validateOnBlur  bool
	validateOnInput bool
	showSuccess     bool
	logger          *slog.Logger
}

func defaultOptions() options {
	return options{
		parser:         strictParser,
		validateOnBlur: true,
		showSuccess:    true,
		logger:         slog.Default(),
	}
}

// Option configures a Form.
type Option func(*options)

func WithEvaluator(e *validator.Evaluator) Option {
	return func(o *options) {
		if e != nil {
			o.evaluator = e
		}
	}
}

func WithParser(p *validator.Parser) Option {
	return func(o *options) {
		if p != nil {
			o.parser = p
		}
	}
}

// WithLenientRules drops unknown rule names instead of rejecting the form.
func WithLenientRules() Option {
	return func(o *options) {
		o.parser = lenientParser
	}
}

// WithValidateOnBlur toggles single-field validation on blur. Enabled by default.
func WithValidateOnBlur(enabled bool) Option {
	return func(o *options) {
		o.validateOnBlur = enabled
	}
}

// WithValidateOnInput re-validates a non-empty field on input after clearing
// its error state. Disabled by default.
func WithValidateOnInput(enabled bool) Option {
	return func(o *options) {
		o.validateOnInput = enabled
	}
}

// WithShowSuccess toggles the valid state presentation for passing fields.
func WithShowSuccess(enabled bool) Option {
	return func(o *options) {
		o.showSuccess = enabled
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
