package form

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/borrmann/bautagebuch/pkg/logger"
	"github.com/borrmann/bautagebuch/pkg/validator"
)

type field struct {
	spec      FieldSpec
	value     string
	rules     []validator.Rule
	status    Status
	lastError string
}

// FieldResult is a snapshot of one field after an operation.
type FieldResult struct {
	Name    string
	ID      string
	Value   string
	Status  Status
	Message string
	// ShowSuccess is true when a valid field should render its success state.
	ShowSuccess bool
}

// SubmitResult describes the outcome of a submit event.
type SubmitResult struct {
	Allowed bool
	Mode    SubmitMode
	Errors  validator.ValidationErrors
	Fields  []FieldResult
	// FirstInvalid names the field that should receive focus, if any.
	FirstInvalid string
}

// Form tracks the fields of one form and coordinates their validation.
// It is safe for concurrent use.
type Form struct {
	mu     sync.Mutex
	schema Schema
	order  []string
	fields map[string]*field
	errors validator.ValidationErrors
	opts   options
}

// New builds a Form from a schema, parsing every field's rule list once.
func New(schema Schema, opts ...Option) (*Form, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.evaluator == nil {
		o.evaluator = validator.NewEvaluator(validator.WithLogger(o.logger))
	}

	f := &Form{
		schema: schema,
		fields: make(map[string]*field, len(schema.Fields)),
		opts:   o,
	}

	for _, spec := range schema.Fields {
		if spec.Name == "" {
			continue
		}
		rules, err := o.parser.Parse(spec.Rules)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRules, spec.Name, err)
		}
		if _, dup := f.fields[spec.Name]; !dup {
			f.order = append(f.order, spec.Name)
		}
		f.fields[spec.Name] = &field{spec: spec, value: spec.Value, rules: rules}
	}

	return f, nil
}

// ID returns the form key used for persistence.
func (f *Form) ID() string {
	return f.schema.Key()
}

func (f *Form) Schema() Schema {
	return f.schema
}

// Names returns tracked field names in document order.
func (f *Form) Names() []string {
	return slices.Clone(f.order)
}

// Has reports whether name is a tracked field.
func (f *Form) Has(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.fields[name]
	return ok
}

// SetValue updates a field value without touching its validation state.
func (f *Form) SetValue(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fld, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	fld.value = value
	return nil
}

// Value returns the current value of name.
func (f *Form) Value(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookup(name)
}

// Values returns a copy of all current field values.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	values := make(map[string]string, len(f.fields))
	for name, fld := range f.fields {
		values[name] = fld.value
	}
	return values
}

// Rules returns the current rule list of name.
func (f *Form) Rules(name string) []validator.Rule {
	f.mu.Lock()
	defer f.mu.Unlock()

	if fld, ok := f.fields[name]; ok {
		return slices.Clone(fld.rules)
	}
	return nil
}

// ValidateField validates a single field and updates its state and the
// form's error map. Unknown fields have no rules and pass.
func (f *Form) ValidateField(ctx context.Context, name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateField(ctx, name)
}

// ValidateAll clears the error map and rebuilds it by validating every
// field in document order.
func (f *Form) ValidateAll(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateAll(ctx)
}

// IsValid reports whether the error map is empty.
func (f *Form) IsValid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.errors) == 0
}

// Errors returns the error map in validation order.
func (f *Form) Errors() validator.ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.errors)
}

// ErrorMap returns the errors keyed by field name.
func (f *Form) ErrorMap() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.Map()
}

// Field returns a snapshot of name.
func (f *Form) Field(name string) (FieldResult, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.fields[name]; !ok {
		return FieldResult{}, false
	}
	return f.result(name), true
}

// Fields returns snapshots of all fields in document order.
func (f *Form) Fields() []FieldResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results()
}

// Blur handles a field losing focus: the field is validated immediately
// unless blur validation is disabled.
func (f *Form) Blur(ctx context.Context, name string) (FieldResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.fields[name]; !ok {
		return FieldResult{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if f.opts.validateOnBlur {
		f.validateField(ctx, name)
	}
	return f.result(name), nil
}

// Input handles typing in a field: the value is stored and the field's
// error state is cleared without re-validating, so errors do not flicker
// while the user types.
func (f *Form) Input(ctx context.Context, name, value string) (FieldResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fld, ok := f.fields[name]
	if !ok {
		return FieldResult{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	fld.value = value
	f.clearField(name)

	if f.opts.validateOnInput && value != "" {
		f.validateField(ctx, name)
	}
	return f.result(name), nil
}

// Submit validates the whole form. An invalid form suppresses submission
// and reports the field that should receive focus.
func (f *Form) Submit(ctx context.Context) SubmitResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	ok := f.validateAll(ctx)
	res := SubmitResult{
		Allowed: ok,
		Mode:    f.schema.Mode(),
		Errors:  slices.Clone(f.errors),
		Fields:  f.results(),
	}
	if !ok {
		res.FirstInvalid = f.firstInvalid()
		f.opts.logger.LogAttrs(ctx, slog.LevelDebug, "form submission suppressed",
			logger.Form(f.schema.Key()),
			slog.Int("errors", len(f.errors)),
		)
	}
	return res
}

// AddRule appends a rule list (one or more tokens) to a field at runtime.
func (f *Form) AddRule(name, raw string) error {
	rules, err := f.opts.parser.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidRules, name, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	fld, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	fld.rules = append(fld.rules, rules...)
	return nil
}

// RemoveRule removes the first rule equal to raw from a field.
// It reports whether a rule was removed.
func (f *Form) RemoveRule(name, raw string) (bool, error) {
	rule, err := validator.ParseOne(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrInvalidRules, name, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	fld, ok := f.fields[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	idx := slices.IndexFunc(fld.rules, rule.Equal)
	if idx < 0 {
		return false, nil
	}
	fld.rules = slices.Delete(fld.rules, idx, idx+1)
	return true, nil
}

// SetCustomError marks a field invalid with a message decided elsewhere,
// for example by the server after an AJAX submission.
func (f *Form) SetCustomError(name, message string) (FieldResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.fields[name]; !ok {
		return FieldResult{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.setError(validator.ValidationError{Field: name, Message: message})
	return f.result(name), nil
}

// ClearErrors empties the error map and resets every touched field.
// It returns the fields whose presentation must be cleared.
func (f *Form) ClearErrors() []FieldResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	var cleared []FieldResult
	for _, name := range f.order {
		if f.fields[name].status == StatusUntouched {
			continue
		}
		f.clearField(name)
		cleared = append(cleared, f.result(name))
	}
	f.errors = nil
	return cleared
}

// Lookup implements validator.Lookup over current field values.
func (f *Form) Lookup(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookup(name)
}

// lookupFunc lets the evaluator resolve siblings while f.mu is held.
type lookupFunc func(string) (string, bool)

func (fn lookupFunc) Lookup(name string) (string, bool) { return fn(name) }

func (f *Form) lookup(name string) (string, bool) {
	fld, ok := f.fields[name]
	if !ok {
		return "", false
	}
	return fld.value, true
}

// Must be called with lock held.
func (f *Form) validateField(ctx context.Context, name string) bool {
	fld, ok := f.fields[name]
	if !ok {
		return true
	}

	f.errors.Remove(name)
	verr := f.opts.evaluator.Evaluate(ctx, name, fld.value, fld.rules, lookupFunc(f.lookup))
	if verr != nil {
		f.setError(*verr)
		return false
	}

	fld.lastError = ""
	fld.status = StatusValid
	return true
}

// Must be called with lock held.
func (f *Form) validateAll(ctx context.Context) bool {
	f.errors = nil
	valid := true
	for _, name := range f.order {
		if !f.validateField(ctx, name) {
			valid = false
		}
	}
	return valid
}

// Must be called with lock held.
func (f *Form) setError(verr validator.ValidationError) {
	f.errors.Set(verr)
	fld := f.fields[verr.Field]
	fld.lastError = verr.Message
	fld.status = StatusInvalid
}

// Must be called with lock held.
func (f *Form) clearField(name string) {
	f.errors.Remove(name)
	fld := f.fields[name]
	fld.lastError = ""
	fld.status = StatusUntouched
}

// Must be called with lock held.
func (f *Form) firstInvalid() string {
	for _, name := range f.order {
		if f.fields[name].status == StatusInvalid {
			return name
		}
	}
	return ""
}

// Must be called with lock held.
func (f *Form) result(name string) FieldResult {
	fld := f.fields[name]
	return FieldResult{
		Name:        name,
		ID:          fld.spec.ID,
		Value:       fld.value,
		Status:      fld.status,
		Message:     fld.lastError,
		ShowSuccess: f.opts.showSuccess && fld.status == StatusValid && fld.value != "",
	}
}

// Must be called with lock held.
func (f *Form) results() []FieldResult {
	out := make([]FieldResult, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, f.result(name))
	}
	return out
}
