package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/borrmann/bautagebuch/handler"
	"github.com/borrmann/bautagebuch/pkg/api"
	"github.com/borrmann/bautagebuch/pkg/autosave"
	"github.com/borrmann/bautagebuch/pkg/cache"
	"github.com/borrmann/bautagebuch/pkg/form"
	"github.com/borrmann/bautagebuch/pkg/logger"
	"github.com/borrmann/bautagebuch/pkg/present"
	"github.com/borrmann/bautagebuch/pkg/toast"
	"github.com/borrmann/bautagebuch/pkg/validator"
)

// Backend is the server API the web layer talks to.
type Backend interface {
	MaterialInfo(ctx context.Context, id string) (api.MaterialInfo, error)
	DashboardStats(ctx context.Context) (api.DashboardStats, error)
	DeleteMaterial(ctx context.Context, id string) error
	CheckDuplicates(ctx context.Context, q api.DuplicateQuery) (bool, error)
	SubmitForm(ctx context.Context, action, method string, values map[string]string) (api.SubmitResponse, error)
}

// MessageDuplicate warns that an entry for the same day, place and
// material exists already.
const MessageDuplicate = "Für dieses Datum, diesen Ort und dieses Material existiert bereits ein Eintrag."

// SuggestLimit caps the suggestions shown below a field.
const SuggestLimit = 5

// MaxForms bounds the number of live forms kept across sessions.
const MaxForms = 4096

// Signals are the datastar signals of a request, keyed by form id.
type Signals map[string]any

// BuildSchemas renders every form and reads its schema back from the
// markup, so the rendered attributes are the only source of rules.
func BuildSchemas(defs []FormDef) (map[string]form.Schema, error) {
	schemas := make(map[string]form.Schema, len(defs))
	for _, d := range defs {
		parsed, err := form.ParseMarkup(strings.NewReader(render(FormCard(d, nil, nil))))
		if err != nil {
			return nil, fmt.Errorf("form %s: %w", d.ID, err)
		}
		for _, s := range parsed {
			schemas[s.Key()] = s
		}
	}
	return schemas, nil
}

type formKey struct {
	session string
	form    string
}

// Forms keeps the forms of every session and handles their events.
type Forms struct {
	defs    map[string]FormDef
	schemas map[string]form.Schema
	opts    []form.Option
	backend Backend
	saver   *autosave.Saver
	toasts  *toast.Manager
	logger  *slog.Logger

	forms *cache.LRU[formKey, *form.Form]
	loads singleflight.Group
}

// NewForms creates the registry for defs.
func NewForms(defs []FormDef, backend Backend, saver *autosave.Saver, toasts *toast.Manager, l *slog.Logger, opts ...form.Option) (*Forms, error) {
	if l == nil {
		l = logger.Nop()
	}
	schemas, err := BuildSchemas(defs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]FormDef, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}
	return &Forms{
		defs:    byID,
		schemas: schemas,
		opts:    append(opts, form.WithLogger(l)),
		backend: backend,
		saver:   saver,
		toasts:  toasts,
		logger:  l,
		forms:   cache.NewLRU[formKey, *form.Form](MaxForms),
	}, nil
}

// Get returns the session's instance of formID, creating it on first use.
// A new auto-save form is filled from the stored snapshot.
func (h *Forms) Get(ctx context.Context, session, formID string) (*form.Form, FormDef, error) {
	def, ok := h.defs[formID]
	schema, parsed := h.schemas[formID]
	if !ok || !parsed {
		return nil, FormDef{}, fmt.Errorf("%w: form %s", handler.ErrNotFound, formID)
	}

	key := formKey{session: session, form: formID}
	if f, ok := h.forms.Get(key); ok {
		return f, def, nil
	}

	// Concurrent first loads of one session's form share a single restore.
	v, err, _ := h.loads.Do(session+"\x00"+formID, func() (any, error) {
		if f, ok := h.forms.Get(key); ok {
			return f, nil
		}
		f, err := form.New(schema, h.opts...)
		if err != nil {
			return nil, err
		}
		if schema.AutoSave && h.saver != nil {
			if restored := h.saver.Restore(ctx, session, f); len(restored) > 0 {
				h.logger.LogAttrs(ctx, slog.LevelDebug, "form restored from autosave",
					logger.Form(formID),
					slog.Int("fields", len(restored)),
				)
			}
		}
		h.forms.Put(key, f)
		return f, nil
	})
	if err != nil {
		return nil, FormDef{}, err
	}
	return v.(*form.Form), def, nil
}

// Values returns the current values of the session's form.
func (h *Forms) Values(ctx context.Context, session, formID string) map[string]string {
	f, _, err := h.Get(ctx, session, formID)
	if err != nil {
		return nil
	}
	return f.Values()
}

func (h *Forms) blur(ctx handler.Context, sig Signals) handler.Response {
	f, def, err := h.Get(ctx, SessionID(ctx), ctx.Param("form"))
	if err != nil {
		return handler.Fail(err)
	}
	name := ctx.Param("field")
	fd, ok := def.Field(name)
	if !ok {
		return handler.Fail(fmt.Errorf("%w: field %s", handler.ErrNotFound, name))
	}
	syncValues(f, formValues(sig, def.ID))

	res, err := f.Blur(ctx, name)
	if err != nil {
		return handler.Fail(errors.Join(handler.ErrBadRequest, err))
	}
	actions := []handler.Action{fieldPatch(def.ID, fd, res)}
	// A picked suggestion closes the list.
	if slices.Contains(fd.Suggestions, res.Value) {
		actions = append(actions, handler.Element(Suggestions(def.ID, fd, nil)))
	}
	return handler.Stream(actions...)
}

func (h *Forms) input(ctx handler.Context, sig Signals) handler.Response {
	session := SessionID(ctx)
	f, def, err := h.Get(ctx, session, ctx.Param("form"))
	if err != nil {
		return handler.Fail(err)
	}
	name := ctx.Param("field")
	fd, ok := def.Field(name)
	if !ok {
		return handler.Fail(fmt.Errorf("%w: field %s", handler.ErrNotFound, name))
	}
	values := formValues(sig, def.ID)
	syncValues(f, values)

	prev, _ := f.Field(name)
	res, err := f.Input(ctx, name, values[name])
	if err != nil {
		return handler.Fail(errors.Join(handler.ErrBadRequest, err))
	}

	var actions []handler.Action
	if !fieldView(fd, prev).Equal(fieldView(fd, res)) {
		actions = append(actions, fieldPatch(def.ID, fd, res))
	}
	if len(fd.Suggestions) > 0 {
		actions = append(actions, handler.Element(Suggestions(def.ID, fd, form.Suggest(fd.Suggestions, res.Value, SuggestLimit))))
	}
	if fd.Strength {
		actions = append(actions, handler.Element(StrengthMeter(fd, validator.PasswordStrength(res.Value, validator.DefaultPasswordPolicy()))))
	}
	if f.Schema().AutoSave && h.saver != nil {
		h.saver.Touch(ctx, session, f)
	}
	return handler.Stream(actions...)
}

func (h *Forms) submit(ctx handler.Context, sig Signals) handler.Response {
	session := SessionID(ctx)
	f, def, err := h.Get(ctx, session, ctx.Param("form"))
	if err != nil {
		return handler.Fail(err)
	}
	syncValues(f, formValues(sig, def.ID))

	res := f.Submit(ctx)
	actions := h.patches(def, res.Fields)

	if !res.Allowed {
		var first present.Handle
		if i := slices.IndexFunc(res.Fields, func(r form.FieldResult) bool { return r.Name == res.FirstInvalid }); i >= 0 {
			first = present.HandleFor(res.Fields[i])
		}
		sum := present.Summarize(res.Errors, first)
		notifyToast(ctx, h.toasts, h.logger, session, toast.New(toast.TypeError, sum.Text).WithDuration(present.SummaryDuration))
		if sum.Focus != nil {
			actions = append(actions, focus(sum.Focus.Handle))
		}
		return handler.Stream(actions...)
	}

	if h.duplicate(ctx, f) {
		h.show(ctx, session, (*toast.Manager).Warning, MessageDuplicate)
		return handler.Stream(actions...)
	}

	if res.Mode == form.SubmitNative {
		actions = append(actions, handler.Script(fmt.Sprintf("document.getElementById(%s).submit()", jsString(def.ID))))
		return handler.Stream(actions...)
	}

	return handler.Stream(append(actions, h.send(ctx, session, f, def)...)...)
}

// send posts an AJAX form to its action and turns the answer into actions.
func (h *Forms) send(ctx context.Context, session string, f *form.Form, def FormDef) []handler.Action {
	schema := f.Schema()
	resp, err := h.backend.SubmitForm(ctx, schema.Action, schema.Method, f.Values())
	if err != nil {
		h.logger.LogAttrs(ctx, slog.LevelWarn, "form submission failed",
			logger.Form(def.ID),
			logger.URL(schema.Action),
			logger.Error(err),
		)
		msg := api.MessageFailed
		if errors.Is(err, api.ErrRequestFailed) {
			msg = api.MessageConnectionError
		}
		h.show(ctx, session, (*toast.Manager).Error, msg)
		return nil
	}

	if !resp.Success {
		h.show(ctx, session, (*toast.Manager).Error, resp.DisplayMessage())
		var actions []handler.Action
		for _, name := range slices.Sorted(maps.Keys(resp.Errors)) {
			fd, ok := def.Field(name)
			if !ok {
				continue
			}
			r, err := f.SetCustomError(name, resp.Errors[name])
			if err != nil {
				continue
			}
			actions = append(actions, fieldPatch(def.ID, fd, r))
		}
		return actions
	}

	h.show(ctx, session, (*toast.Manager).Success, resp.DisplayMessage())
	if schema.AutoSave && h.saver != nil {
		if err := h.saver.Discard(ctx, session, f.ID()); err != nil {
			h.logger.LogAttrs(ctx, slog.LevelWarn, "failed to discard autosave",
				logger.Form(def.ID),
				logger.Error(err),
			)
		}
	}
	switch {
	case resp.Redirect != "":
		return []handler.Action{handler.Navigate(resp.Redirect)}
	case resp.Reload:
		return []handler.Action{handler.Script("window.location.reload()")}
	}
	return nil
}

// duplicate asks the server whether the entry exists already. Forms
// without date, place and material are never duplicates, and a failed
// check lets the submission through.
func (h *Forms) duplicate(ctx context.Context, f *form.Form) bool {
	for _, name := range []string{"datum", "ort", "material"} {
		if !f.Has(name) {
			return false
		}
	}
	v := f.Values()
	dup, err := h.backend.CheckDuplicates(ctx, api.DuplicateQuery{
		Datum:    v["datum"],
		Ort:      v["ort"],
		Material: v["material"],
	})
	if err != nil {
		h.logger.LogAttrs(ctx, slog.LevelWarn, "duplicate check failed",
			logger.Form(f.ID()),
			logger.Error(err),
		)
		return false
	}
	return dup
}

// reset discards the draft: values, errors and the auto-save snapshot.
func (h *Forms) reset(ctx handler.Context, _ Signals) handler.Response {
	session := SessionID(ctx)
	f, def, err := h.Get(ctx, session, ctx.Param("form"))
	if err != nil {
		return handler.Fail(err)
	}
	f.ClearErrors()

	empty := make(map[string]any, len(def.Fields))
	actions := make([]handler.Action, 0, len(def.Fields)+1)
	for _, fd := range def.Fields {
		_ = f.SetValue(fd.Name, "")
		empty[fd.Name] = ""
		actions = append(actions, handler.Element(FieldGroup(def.ID, fd, "", nil)))
	}
	actions = append(actions, handler.SetSignals(map[string]any{def.ID: empty}))

	if f.Schema().AutoSave && h.saver != nil {
		if err := h.saver.Discard(ctx, session, f.ID()); err != nil {
			h.logger.LogAttrs(ctx, slog.LevelWarn, "failed to discard autosave",
				logger.Form(def.ID),
				logger.Error(err),
			)
		}
	}
	return handler.Stream(actions...)
}

func (h *Forms) patches(def FormDef, results []form.FieldResult) []handler.Action {
	actions := make([]handler.Action, 0, len(results))
	for _, r := range results {
		if fd, ok := def.Field(r.Name); ok {
			actions = append(actions, fieldPatch(def.ID, fd, r))
		}
	}
	return actions
}

func (h *Forms) show(ctx context.Context, session string, show showFunc, message string) {
	notify(ctx, h.toasts, h.logger, session, show, message)
}

// fieldView applies the field's presentation decisions to a fresh view.
func fieldView(fd FieldDef, r form.FieldResult) *present.View {
	v := baseView(fd)
	v.Apply(present.ForField(present.HandleFor(r), r)...)
	return v
}

// fieldPatch re-renders the field group with the state of r.
func fieldPatch(formID string, fd FieldDef, r form.FieldResult) handler.Action {
	return handler.Element(FieldGroup(formID, fd, r.Value, fieldView(fd, r)))
}

func focus(h present.Handle) handler.Action {
	return handler.Script(fmt.Sprintf("document.getElementById(%s)?.focus()", jsString(h.ID)))
}

// syncValues copies client values into f without touching validation state.
func syncValues(f *form.Form, values map[string]string) {
	for name, v := range values {
		if f.Has(name) {
			_ = f.SetValue(name, v)
		}
	}
}

// formValues extracts the values bound under the form's signal namespace.
func formValues(sig Signals, formID string) map[string]string {
	ns, ok := sig[formID].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(ns))
	for name, v := range ns {
		out[name] = signalString(v)
	}
	return out
}

func signalString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
