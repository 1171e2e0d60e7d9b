package form

// SubmitMode tells the caller how an allowed submission proceeds.
type SubmitMode string

const (
	SubmitNative SubmitMode = "native"
	SubmitAjax   SubmitMode = "ajax"
)

// DefaultFormID is used for auto-save keys of forms without an id.
const DefaultFormID = "default"

// FieldSpec declares one tracked input, select or textarea.
type FieldSpec struct {
	Name        string
	ID          string
	Rules       string // pipe-delimited rule list, e.g. "required|min:3"
	Value       string // initial value from markup
	Suggestions []string
}

// Schema declares a form as found in markup.
type Schema struct {
	ID       string
	Action   string
	Method   string
	Validate bool // form opted into validation
	AutoSave bool
	Ajax     bool
	Fields   []FieldSpec
}

// Key returns the form identifier used for persistence.
func (s Schema) Key() string {
	if s.ID == "" {
		return DefaultFormID
	}
	return s.ID
}

// Mode returns how a valid submission proceeds.
func (s Schema) Mode() SubmitMode {
	if s.Ajax {
		return SubmitAjax
	}
	return SubmitNative
}

// Field returns the spec for name.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}
