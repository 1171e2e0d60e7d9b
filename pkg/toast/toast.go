package toast

import (
	"time"
)

// Type is the toast severity.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// DefaultDuration is how long a toast stays visible unless set otherwise.
const DefaultDuration = 5 * time.Second

// ParseType maps a type name to a Type. "danger" is accepted as an alias
// of error; anything unknown falls back to info.
func ParseType(s string) Type {
	switch s {
	case "success":
		return TypeSuccess
	case "warning":
		return TypeWarning
	case "error", "danger":
		return TypeError
	default:
		return TypeInfo
	}
}

// Icon returns the glyph shown in front of the message.
func (t Type) Icon() string {
	switch t {
	case TypeSuccess:
		return "✅"
	case TypeWarning:
		return "⚠️"
	case TypeError:
		return "❌"
	default:
		return "ℹ️"
	}
}

// AlertClass returns the CSS alert modifier for the type.
func (t Type) AlertClass() string {
	if t == TypeError {
		return "alert-danger"
	}
	return "alert-" + string(t)
}

// Toast is a transient notification shown to one session.
type Toast struct {
	ID        string        `json:"id"`
	Session   string        `json:"session"`
	Type      Type          `json:"type"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"duration"` // zero keeps the toast until closed
	CreatedAt time.Time     `json:"created_at"`
}

// Sticky reports whether the toast is only removed by an explicit close.
func (t Toast) Sticky() bool {
	return t.Duration <= 0
}

// New returns a toast with the default duration.
func New(typ Type, message string) Toast {
	return Toast{Type: typ, Message: message, Duration: DefaultDuration}
}

// WithDuration returns a copy of t with duration d.
func (t Toast) WithDuration(d time.Duration) Toast {
	t.Duration = d
	return t
}
