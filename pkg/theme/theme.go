package theme

import "errors"

// Theme is the color scheme of the page.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// StorageKey is the name the preference is persisted under.
const StorageKey = "theme"

// ErrInvalidTheme is returned for values other than light and dark.
var ErrInvalidTheme = errors.New("invalid theme")

// Parse accepts "light" and "dark".
func Parse(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	default:
		return "", ErrInvalidTheme
	}
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// MetaColor is the theme-color meta value for mobile browser chrome.
func (t Theme) MetaColor() string {
	if t == Dark {
		return "#0f172a"
	}
	return "#2c5aa0"
}

// ToggleMessage is the notice shown after switching to t.
func (t Theme) ToggleMessage() string {
	if t == Dark {
		return "Dark Mode aktiviert"
	}
	return "Light Mode aktiviert"
}

func (t Theme) String() string { return string(t) }
