package present

import (
	"strings"
	"time"

	"github.com/borrmann/bautagebuch/pkg/form"
	"github.com/borrmann/bautagebuch/pkg/validator"
)

// CSS classes toggled on a field's control.
const (
	ClassValid   = "is-valid"
	ClassInvalid = "is-invalid"
)

// Icons rendered next to a field.
const (
	IconValid   = "bi-check-circle-fill"
	IconInvalid = "bi-exclamation-circle-fill"
)

// Handle identifies the subtree a field owns: the control itself, one
// inline feedback node and one status icon.
type Handle struct {
	ID string
}

// Control is the CSS selector of the field's control.
func (h Handle) Control() string { return "#" + h.ID }

// FeedbackID is the id of the inline message node.
func (h Handle) FeedbackID() string { return h.ID + "-feedback" }

// IconID is the id of the status icon node.
func (h Handle) IconID() string { return h.ID + "-icon" }

// Op is a kind of DOM mutation.
type Op uint8

const (
	OpAddClass Op = iota + 1
	OpRemoveClass
	OpSetFeedback
	OpRemoveFeedback
	OpSetIcon
	OpRemoveIcon
	OpFocus
)

func (o Op) String() string {
	switch o {
	case OpAddClass:
		return "add-class"
	case OpRemoveClass:
		return "remove-class"
	case OpSetFeedback:
		return "set-feedback"
	case OpRemoveFeedback:
		return "remove-feedback"
	case OpSetIcon:
		return "set-icon"
	case OpRemoveIcon:
		return "remove-icon"
	case OpFocus:
		return "focus"
	default:
		return "unknown"
	}
}

// Mutation describes one change to a field's subtree. Value carries the
// class name, message text or icon name depending on Op.
type Mutation struct {
	Op     Op
	Handle Handle
	Value  string
}

// ForField returns the mutations that bring the field's subtree in line
// with its status. Applying the result twice leaves the same DOM.
func ForField(h Handle, r form.FieldResult) []Mutation {
	switch r.Status {
	case form.StatusInvalid:
		return []Mutation{
			{Op: OpRemoveClass, Handle: h, Value: ClassValid},
			{Op: OpAddClass, Handle: h, Value: ClassInvalid},
			{Op: OpSetFeedback, Handle: h, Value: r.Message},
			{Op: OpSetIcon, Handle: h, Value: IconInvalid},
		}
	case form.StatusValid:
		if !r.ShowSuccess {
			return Clear(h)
		}
		return []Mutation{
			{Op: OpRemoveClass, Handle: h, Value: ClassInvalid},
			{Op: OpAddClass, Handle: h, Value: ClassValid},
			{Op: OpRemoveFeedback, Handle: h},
			{Op: OpSetIcon, Handle: h, Value: IconValid},
		}
	default:
		return Clear(h)
	}
}

// Clear removes every validation artifact from the field's subtree.
func Clear(h Handle) []Mutation {
	return []Mutation{
		{Op: OpRemoveClass, Handle: h, Value: ClassValid},
		{Op: OpRemoveClass, Handle: h, Value: ClassInvalid},
		{Op: OpRemoveFeedback, Handle: h},
		{Op: OpRemoveIcon, Handle: h},
	}
}

// HandleFor derives the handle of a field result, falling back to its name.
func HandleFor(r form.FieldResult) Handle {
	if r.ID != "" {
		return Handle{ID: r.ID}
	}
	return Handle{ID: r.Name}
}

// SummaryHeading opens the aggregate error toast.
const SummaryHeading = "Bitte korrigieren Sie folgende Fehler:"

// SummaryDuration is how long the aggregate error toast stays visible.
const SummaryDuration = 8 * time.Second

// Summary is the aggregate feedback for a rejected submission.
type Summary struct {
	Text   string
	Fields []string // failing fields in validation order
	Focus  *Mutation
}

// Summarize builds the aggregate toast text, one bullet per error in
// validation order, and the focus mutation for the first invalid field.
// It returns a zero Summary when there are no errors.
func Summarize(errs validator.ValidationErrors, firstInvalid Handle) Summary {
	if len(errs) == 0 {
		return Summary{}
	}

	var b strings.Builder
	fields := make([]string, 0, len(errs))
	b.WriteString(SummaryHeading)
	for _, e := range errs {
		b.WriteString("\n• ")
		b.WriteString(e.Message)
		fields = append(fields, e.Field)
	}

	s := Summary{Text: b.String(), Fields: fields}
	if firstInvalid.ID != "" {
		s.Focus = &Mutation{Op: OpFocus, Handle: firstInvalid}
	}
	return s
}
