package form

import "errors"

var (
	// ErrUnknownField is returned when an operation names a field the form does not track.
	ErrUnknownField = errors.New("unknown form field")

	// ErrInvalidRules wraps a rule list that failed to parse for a field.
	ErrInvalidRules = errors.New("invalid field rules")

	// ErrInvalidMarkup is returned when form markup cannot be parsed.
	ErrInvalidMarkup = errors.New("invalid form markup")
)
