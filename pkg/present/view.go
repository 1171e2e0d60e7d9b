package present

import (
	"maps"
	"slices"
)

// View models the subtree owned by one field. It lets callers and tests
// observe the effect of mutations without a browser.
type View struct {
	Classes  map[string]bool
	Feedback *string
	Icon     string
	Focused  bool
}

// NewView returns a view with the given classes already present on the
// control, for example the form-control class from markup.
func NewView(classes ...string) *View {
	v := &View{Classes: make(map[string]bool, len(classes))}
	for _, c := range classes {
		v.Classes[c] = true
	}
	return v
}

// Apply applies mutations in order. Feedback and icon are replaced rather
// than appended, so applying the same batch again changes nothing.
func (v *View) Apply(ms ...Mutation) {
	if v.Classes == nil {
		v.Classes = map[string]bool{}
	}
	for _, m := range ms {
		switch m.Op {
		case OpAddClass:
			v.Classes[m.Value] = true
		case OpRemoveClass:
			delete(v.Classes, m.Value)
		case OpSetFeedback:
			msg := m.Value
			v.Feedback = &msg
		case OpRemoveFeedback:
			v.Feedback = nil
		case OpSetIcon:
			v.Icon = m.Value
		case OpRemoveIcon:
			v.Icon = ""
		case OpFocus:
			v.Focused = true
		}
	}
}

// ClassList returns the control's classes sorted.
func (v *View) ClassList() []string {
	return slices.Sorted(maps.Keys(v.Classes))
}

// Equal reports whether two views render the same subtree.
func (v *View) Equal(o *View) bool {
	if !maps.Equal(v.Classes, o.Classes) || v.Icon != o.Icon || v.Focused != o.Focused {
		return false
	}
	if (v.Feedback == nil) != (o.Feedback == nil) {
		return false
	}
	return v.Feedback == nil || *v.Feedback == *o.Feedback
}

// Clone returns a deep copy.
func (v *View) Clone() *View {
	c := &View{Classes: maps.Clone(v.Classes), Icon: v.Icon, Focused: v.Focused}
	if v.Feedback != nil {
		msg := *v.Feedback
		c.Feedback = &msg
	}
	return c
}
