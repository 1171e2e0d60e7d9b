package form_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borrmann/bautagebuch/pkg/form"
)

const tagebuchMarkup = `<!doctype html>
<html><body>
<form id="plain"><input name="ignored" data-validate="required"></form>
<form id="eintrag" action="/eintraege" method="post" data-validate data-autosave data-ajax>
  <input type="text" name="titel" id="titel" data-validate="required|min:3" value="Rohbau">
  <input type="email" name="email" required>
  <input type="number" name="menge" min="0" max="1000">
  <input type="text" name="ort" data-suggestions='["Berlin","Bernau"]'>
  <input type="text" name="code" data-validate="required" data-pattern="^[A-Z]{2}$">
  <select name="wetter"><option value="sonne">Sonne</option><option value="regen" selected>Regen</option></select>
  <textarea name="notiz" data-validate="max:500">Beton gegossen</textarea>
  <input type="hidden" name="csrf" value="t">
  <button type="submit">Speichern</button>
</form>
</body></html>`

func TestParseMarkup(t *testing.T) {
	t.Parallel()

	schemas, err := form.ParseMarkup(strings.NewReader(tagebuchMarkup))
	require.NoError(t, err)
	require.Len(t, schemas, 1)

	s := schemas[0]
	assert.Equal(t, "eintrag", s.ID)
	assert.Equal(t, "/eintraege", s.Action)
	assert.Equal(t, "POST", s.Method)
	assert.True(t, s.Validate)
	assert.True(t, s.AutoSave)
	assert.True(t, s.Ajax)

	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"titel", "email", "menge", "ort", "code", "wetter", "notiz"}, names)

	tests := []struct {
		field string
		rules string
		value string
	}{
		{"titel", "required|min:3", "Rohbau"},
		{"email", "required|email", ""},
		{"menge", "numeric|min_value:0|max_value:1000", ""},
		{"ort", "", ""},
		{"code", "required|pattern:^[A-Z]{2}$", ""},
		{"wetter", "", "regen"},
		{"notiz", "max:500", "Beton gegossen"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			fs, ok := s.Field(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.rules, fs.Rules)
			assert.Equal(t, tt.value, fs.Value)
		})
	}

	ort, _ := s.Field("ort")
	assert.Equal(t, []string{"Berlin", "Bernau"}, ort.Suggestions)
	assert.Equal(t, "ort", ort.ID)

	_, err = form.New(s)
	assert.NoError(t, err)
}

func TestParseMarkup_BadSuggestions(t *testing.T) {
	t.Parallel()

	_, err := form.ParseMarkup(strings.NewReader(`<form data-validate><input name="x" data-suggestions="[oops"></form>`))
	assert.ErrorIs(t, err, form.ErrInvalidMarkup)
}

func TestParseMarkup_NoValidateKeepsFieldsWithoutRules(t *testing.T) {
	t.Parallel()

	schemas, err := form.ParseMarkup(strings.NewReader(`<form data-autosave><input name="x" required data-validate="required"></form>`))
	require.NoError(t, err)
	require.Len(t, schemas, 1)
	assert.Equal(t, form.DefaultFormID, schemas[0].Key())
	require.Len(t, schemas[0].Fields, 1)
	assert.Empty(t, schemas[0].Fields[0].Rules)
}
