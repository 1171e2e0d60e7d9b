package validator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// StrengthLevel buckets a password score.
type StrengthLevel string

const (
	StrengthWeak   StrengthLevel = "weak"
	StrengthFair   StrengthLevel = "fair"
	StrengthGood   StrengthLevel = "good"
	StrengthStrong StrengthLevel = "strong"
)

// passwordSpecials are the characters counted as special.
const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

// PasswordPolicy selects the criteria a password is scored against.
type PasswordPolicy struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumbers   bool
	RequireSpecial   bool
}

// DefaultPasswordPolicy requires 8 characters and every character class.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	}
}

// Strength is the scored result; Feedback lists the missing criteria.
type Strength struct {
	Score    int
	Level    StrengthLevel
	Feedback []string
}

// Label returns the German name of the level.
func (s Strength) Label() string {
	switch s.Level {
	case StrengthFair:
		return "Ausreichend"
	case StrengthGood:
		return "Gut"
	case StrengthStrong:
		return "Stark"
	default:
		return "Schwach"
	}
}

// Text is the meter caption, e.g. "Gut (Benötigt: Sonderzeichen)".
func (s Strength) Text() string {
	if len(s.Feedback) == 0 {
		return s.Label()
	}
	return s.Label() + " (Benötigt: " + strings.Join(s.Feedback, ", ") + ")"
}

// Color returns the bootstrap contextual color of the level.
func (s Strength) Color() string {
	switch s.Level {
	case StrengthFair:
		return "warning"
	case StrengthGood:
		return "info"
	case StrengthStrong:
		return "success"
	default:
		return "danger"
	}
}

// PasswordStrength scores password with 20 points per satisfied criterion.
func PasswordStrength(password string, policy PasswordPolicy) Strength {
	var s Strength
	check := func(ok bool, missing string) {
		if ok {
			s.Score += 20
			return
		}
		s.Feedback = append(s.Feedback, missing)
	}

	check(utf8.RuneCountInString(password) >= policy.MinLength, fmt.Sprintf("Mindestens %d Zeichen", policy.MinLength))
	if policy.RequireUppercase {
		check(strings.IndexFunc(password, isASCIIUpper) >= 0, "Großbuchstaben")
	}
	if policy.RequireLowercase {
		check(strings.IndexFunc(password, isASCIILower) >= 0, "Kleinbuchstaben")
	}
	if policy.RequireNumbers {
		check(strings.IndexFunc(password, unicode.IsDigit) >= 0, "Zahlen")
	}
	if policy.RequireSpecial {
		check(strings.ContainsAny(password, passwordSpecials), "Sonderzeichen")
	}

	switch {
	case s.Score < 40:
		s.Level = StrengthWeak
	case s.Score < 60:
		s.Level = StrengthFair
	case s.Score < 80:
		s.Level = StrengthGood
	default:
		s.Level = StrengthStrong
	}
	return s
}

// IsStrongPassword reports whether password scores at least 80.
func IsStrongPassword(password string, policy PasswordPolicy) bool {
	return PasswordStrength(password, policy).Score >= 80
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
