package validator

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/borrmann/bautagebuch/pkg/i18n"
)

// Translation keys, one per rule kind.
const (
	KeyRequired  = "validation.required"
	KeyEmail     = "validation.email"
	KeyMinLength = "validation.min_length"
	KeyMaxLength = "validation.max_length"
	KeyNumeric   = "validation.numeric"
	KeyMinValue  = "validation.min_value"
	KeyMaxValue  = "validation.max_value"
	KeyPattern   = "validation.pattern"
	KeyMatch     = "validation.match"
	KeyUnique    = "validation.unique"
)

var defaultCatalog = map[string]map[string]any{
	i18n.DefaultLanguage: {
		"validation": map[string]any{
			"required":   "Dieses Feld ist erforderlich",
			"email":      "Bitte geben Sie eine gültige E-Mail-Adresse ein",
			"min_length": "Mindestens %{min} Zeichen erforderlich",
			"max_length": "Maximal %{max} Zeichen erlaubt",
			"numeric":    "Bitte geben Sie eine Zahl ein",
			"min_value":  "Wert muss mindestens %{min} sein",
			"max_value":  "Wert darf höchstens %{max} sein",
			"pattern":    "Ungültiges Format",
			"match":      "Felder stimmen nicht überein",
			"unique":     "Dieser Wert ist bereits vergeben",
		},
	},
}

var defaultTranslator = sync.OnceValue(func() *i18n.Translator {
	t, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: defaultCatalog})
	if err != nil {
		panic(fmt.Sprintf("validator: default messages: %v", err))
	}
	return t
})

// Messages renders validation messages from a catalog layered over the
// built-in German defaults. Placeholders use the form %{name} and are
// filled from TranslationValues.
type Messages struct {
	catalog  *i18n.Translator
	defaults *i18n.Translator
	lang     string
}

// DefaultMessages returns the German message set.
func DefaultMessages() *Messages {
	return &Messages{defaults: defaultTranslator(), lang: i18n.DefaultLanguage}
}

// LoadMessages layers the catalog served by adapter over the defaults.
// Keys missing from the catalog, or blank there, keep the default text.
//
//	de:
//	  validation:
//	    required: "Pflichtfeld"
//	    min_length: "Bitte mindestens %{min} Zeichen"
func LoadMessages(ctx context.Context, adapter i18n.TranslationAdapter, opts ...i18n.Option) (*Messages, error) {
	opts = append(slices.Clone(opts), i18n.WithFallbackToKey(false))
	catalog, err := i18n.NewTranslator(ctx, adapter, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMessages, err)
	}

	m := DefaultMessages()
	m.catalog = catalog
	m.lang = catalog.DefaultLanguage()
	return m, nil
}

// Render fills the message for key with values. Unknown keys render as the key.
func (m *Messages) Render(key string, values map[string]any) string {
	args := make([]string, 0, len(values)*2)
	for _, name := range slices.Sorted(maps.Keys(values)) {
		args = append(args, name, fmt.Sprint(values[name]))
	}

	if m.catalog != nil {
		if msg := m.catalog.T(m.lang, key, args...); strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return m.defaults.T(m.lang, key, args...)
}
