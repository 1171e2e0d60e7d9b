package handler

import (
	"errors"
	"net/http"
)

var (
	ErrNilResponse       = errors.New("handler returned nil response")
	ErrSSENotInitialized = errors.New("SSE not initialized for this request")
	ErrNotApplicable     = errors.New("binder not applicable to request")
	ErrBadRequest        = errors.New("malformed request")
	ErrNotFound          = errors.New("not found")
)

// HTTPError carries the status code and the user-facing message of a
// failed request.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}

func (e HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e HTTPError) Unwrap() error { return e.Err }

// Wrap attaches a cause.
func (e HTTPError) Wrap(err error) HTTPError {
	e.Err = err
	return e
}

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string // "warning" for client errors, "error" otherwise
}

// Default messages for unclassified failures.
const (
	MessageInternal   = "Ein Fehler ist aufgetreten"
	MessageBadRequest = "Ungültige Anfrage"
	MessageNotFound   = "Nicht gefunden"
)

// Classify maps err to a status code and a message safe to show.
func Classify(err error) ErrorInfo {
	info := ErrorInfo{StatusCode: http.StatusInternalServerError, Message: MessageInternal}

	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Message
	case errors.Is(err, ErrBadRequest):
		info.StatusCode = http.StatusBadRequest
		info.Message = MessageBadRequest
	case errors.Is(err, ErrNotFound):
		info.StatusCode = http.StatusNotFound
		info.Message = MessageNotFound
	}

	info.Type = "error"
	if info.StatusCode >= 400 && info.StatusCode < 500 {
		info.Type = "warning"
	}
	return info
}
