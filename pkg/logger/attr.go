package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Form records the form identifier under the key "form".
func Form(id string) slog.Attr {
	return slog.String("form", id)
}

// Field records a form field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// StorageKey records a persistence key under the key "storage_key".
func StorageKey(key string) slog.Attr {
	return slog.String("storage_key", key)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Event records the UI event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// ToastID records a toast identifier under the key "toast_id".
func ToastID(id string) slog.Attr {
	return slog.String("toast_id", id)
}

// Session records a browser session identifier under the key "session".
func Session(id string) slog.Attr {
	return slog.String("session", id)
}

// URL records a request target under the key "url".
func URL(u string) slog.Attr {
	return slog.String("url", u)
}
