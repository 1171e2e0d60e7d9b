package validator

import "errors"

var (
	// ErrUnknownRule is returned by the strict parser for a rule name outside the closed kind set.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrInvalidParam is returned when a rule parameter is missing or cannot be parsed.
	ErrInvalidParam = errors.New("invalid rule parameter")

	// ErrInvalidMessages is returned when a message catalog cannot be decoded.
	ErrInvalidMessages = errors.New("invalid message catalog")
)
