package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borrmann/bautagebuch/pkg/i18n"
)

func newTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{
		"de": {
			"validation": map[string]any{
				"required":   "Dieses Feld ist erforderlich",
				"min_length": "Mindestens %{min} Zeichen erforderlich",
			},
			"toast.saved": "Gespeichert",
			"nested":      map[string]any{"count": 3},
		},
		"en": {
			"validation": map[string]any{
				"required": "This field is required",
			},
		},
	}}, opts...)
	require.NoError(t, err)
	return tr
}

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	t.Run("nil adapter", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewTranslator(context.Background(), nil)
		assert.ErrorIs(t, err, i18n.ErrNilAdapter)
	})

	t.Run("nil language map", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{"de": nil}})
		assert.ErrorIs(t, err, i18n.ErrInvalidTranslations)
	})

	t.Run("empty catalog", func(t *testing.T) {
		t.Parallel()
		tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{})
		require.NoError(t, err)
		assert.Empty(t, tr.SupportedLanguages())
		assert.Equal(t, "some.key", tr.T("de", "some.key"))
	})

	t.Run("languages sorted", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"de", "en"}, newTranslator(t).SupportedLanguages())
	})
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	t.Run("nested key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Dieses Feld ist erforderlich", tr.T("de", "validation.required"))
		assert.Equal(t, "This field is required", tr.T("en", "validation.required"))
	})

	t.Run("flat dotted key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Gespeichert", tr.T("de", "toast.saved"))
	})

	t.Run("named placeholders", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Mindestens 3 Zeichen erforderlich", tr.T("de", "validation.min_length", "min", "3"))
		assert.Equal(t, "Mindestens %{min} Zeichen erforderlich", tr.T("de", "validation.min_length", "max", "3"))
		assert.Equal(t, "Mindestens %{min} Zeichen erforderlich", tr.T("de", "validation.min_length", "min"))
	})

	t.Run("falls back to default language", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Mindestens 5 Zeichen erforderlich", tr.T("en", "validation.min_length", "min", "5"))
		assert.Equal(t, "Gespeichert", tr.T("fr", "toast.saved"))
	})

	t.Run("missing key returns key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "validation.unknown", tr.T("de", "validation.unknown"))
		assert.Equal(t, "nested.count", tr.T("de", "nested.count"), "non-string values are missing")
		assert.Equal(t, "validation", tr.T("de", "validation"))
	})

	t.Run("without key fallback", func(t *testing.T) {
		t.Parallel()
		strict := newTranslator(t, i18n.WithFallbackToKey(false), i18n.WithDefaultLanguage("en"))
		assert.Empty(t, strict.T("de", "validation.unknown"))
		assert.Equal(t, "en", strict.DefaultLanguage())
	})
}

func TestTranslator_Td(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	assert.Equal(t, "Gespeichert", tr.Td("de", "toast.saved", "Saved"))
	assert.Equal(t, "Noch 2 Versuche", tr.Td("de", "retry.left", "Noch %{n} Versuche", "n", "2"))
}

func TestTranslator_HasTranslation(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	assert.True(t, tr.HasTranslation("de", "validation.required"))
	assert.True(t, tr.HasTranslation("de", "toast.saved"))
	assert.False(t, tr.HasTranslation("en", "validation.min_length"), "no default-language fallback")
	assert.False(t, tr.HasTranslation("fr", "validation.required"))
	assert.False(t, tr.HasTranslation("de", "nested"))
}
