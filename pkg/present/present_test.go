package present_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borrmann/bautagebuch/pkg/form"
	"github.com/borrmann/bautagebuch/pkg/present"
	"github.com/borrmann/bautagebuch/pkg/validator"
)

func TestHandle(t *testing.T) {
	t.Parallel()

	h := present.Handle{ID: "email"}
	assert.Equal(t, "#email", h.Control())
	assert.Equal(t, "email-feedback", h.FeedbackID())
	assert.Equal(t, "email-icon", h.IconID())

	assert.Equal(t, present.Handle{ID: "name"}, present.HandleFor(form.FieldResult{Name: "name"}))
	assert.Equal(t, present.Handle{ID: "f-name"}, present.HandleFor(form.FieldResult{Name: "name", ID: "f-name"}))
}

func TestForField(t *testing.T) {
	t.Parallel()

	h := present.Handle{ID: "email"}

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		v := present.NewView("form-control")
		v.Apply(present.ForField(h, form.FieldResult{Status: form.StatusInvalid, Message: "Dieses Feld ist erforderlich"})...)

		assert.Equal(t, []string{"form-control", present.ClassInvalid}, v.ClassList())
		require.NotNil(t, v.Feedback)
		assert.Equal(t, "Dieses Feld ist erforderlich", *v.Feedback)
		assert.Equal(t, present.IconInvalid, v.Icon)
	})

	t.Run("valid with success", func(t *testing.T) {
		t.Parallel()
		v := present.NewView("form-control")
		v.Apply(present.ForField(h, form.FieldResult{Status: form.StatusInvalid, Message: "x"})...)
		v.Apply(present.ForField(h, form.FieldResult{Status: form.StatusValid, ShowSuccess: true})...)

		assert.Equal(t, []string{"form-control", present.ClassValid}, v.ClassList())
		assert.Nil(t, v.Feedback)
		assert.Equal(t, present.IconValid, v.Icon)
	})

	t.Run("valid without success clears", func(t *testing.T) {
		t.Parallel()
		v := present.NewView("form-control")
		v.Apply(present.ForField(h, form.FieldResult{Status: form.StatusInvalid, Message: "x"})...)
		v.Apply(present.ForField(h, form.FieldResult{Status: form.StatusValid})...)

		assert.Equal(t, []string{"form-control"}, v.ClassList())
		assert.Nil(t, v.Feedback)
		assert.Empty(t, v.Icon)
	})

	t.Run("untouched clears", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, present.Clear(h), present.ForField(h, form.FieldResult{Status: form.StatusUntouched}))
	})
}

func TestView_ApplyIdempotent(t *testing.T) {
	t.Parallel()

	h := present.Handle{ID: "titel"}
	results := []form.FieldResult{
		{Status: form.StatusInvalid, Message: "Mindestens 3 Zeichen erforderlich"},
		{Status: form.StatusValid, ShowSuccess: true},
		{Status: form.StatusValid},
		{Status: form.StatusUntouched},
	}
	for _, r := range results {
		t.Run(r.Status.String(), func(t *testing.T) {
			t.Parallel()
			ms := present.ForField(h, r)

			once := present.NewView("form-control")
			once.Apply(ms...)
			twice := once.Clone()
			twice.Apply(ms...)

			assert.True(t, once.Equal(twice))
		})
	}
}

func TestView_SingleFeedbackNode(t *testing.T) {
	t.Parallel()

	h := present.Handle{ID: "menge"}
	v := present.NewView()
	v.Apply(present.ForField(h, form.FieldResult{Status: form.StatusInvalid, Message: "Bitte geben Sie eine Zahl ein"})...)
	v.Apply(present.ForField(h, form.FieldResult{Status: form.StatusInvalid, Message: "Wert muss mindestens 1 sein"})...)

	require.NotNil(t, v.Feedback)
	assert.Equal(t, "Wert muss mindestens 1 sein", *v.Feedback)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, present.Summary{}, present.Summarize(nil, present.Handle{}))
	})

	t.Run("bullets in validation order", func(t *testing.T) {
		t.Parallel()
		s := present.Summarize(validator.ValidationErrors{
			{Field: "email", Message: "Dieses Feld ist erforderlich"},
			{Field: "name", Message: "Mindestens 3 Zeichen erforderlich"},
		}, present.Handle{ID: "name"})

		assert.Equal(t, "Bitte korrigieren Sie folgende Fehler:\n• Dieses Feld ist erforderlich\n• Mindestens 3 Zeichen erforderlich", s.Text)
		assert.Equal(t, []string{"email", "name"}, s.Fields)
		require.NotNil(t, s.Focus)
		assert.Equal(t, present.OpFocus, s.Focus.Op)
		assert.Equal(t, "name", s.Focus.Handle.ID)
	})
}

func TestSummarize_FromRejectedSubmit(t *testing.T) {
	t.Parallel()

	f, err := form.New(form.Schema{Fields: []form.FieldSpec{
		{Name: "name", Rules: "required"},
		{Name: "email", Rules: "email", Value: "bau@example.de"},
	}})
	require.NoError(t, err)

	res := f.Submit(context.Background())
	require.False(t, res.Allowed)
	assert.Equal(t, map[string]string{"name": "Dieses Feld ist erforderlich"}, f.ErrorMap())

	s := present.Summarize(res.Errors, present.Handle{ID: res.FirstInvalid})
	assert.Equal(t, []string{"name"}, s.Fields)
	assert.Equal(t, "Bitte korrigieren Sie folgende Fehler:\n• Dieses Feld ist erforderlich", s.Text)
	require.NotNil(t, s.Focus)
	assert.Equal(t, "name", s.Focus.Handle.ID)
}
