package api

import "errors"

var (
	ErrRequestFailed    = errors.New("api: request failed")
	ErrUnexpectedStatus = errors.New("api: unexpected status")
	ErrDecode           = errors.New("api: failed to decode response")
	ErrEmptyID          = errors.New("api: empty id")
)
