package validator

import "slices"

// ValidationError is the failure of one rule on one field. TranslationKey
// and TranslationValues let callers re-render Message in another catalog.
// Errors set by hand (server-side messages) carry no Rule.
type ValidationError struct {
	Field             string
	Rule              Kind
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors is an ordered error map: at most one entry per field,
// kept in the order the entries were recorded.
type ValidationErrors []ValidationError

// Set records err, replacing any entry for the same field. The entry moves
// to the end so the order reflects when each field last failed.
func (ve *ValidationErrors) Set(err ValidationError) {
	ve.Remove(err.Field)
	*ve = append(*ve, err)
}

// Remove drops the entry for field and reports whether there was one.
func (ve *ValidationErrors) Remove(field string) bool {
	n := len(*ve)
	*ve = slices.DeleteFunc(*ve, func(e ValidationError) bool { return e.Field == field })
	return len(*ve) != n
}

// Fields returns the failing field names in order.
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, len(ve))
	for i, e := range ve {
		fields[i] = e.Field
	}
	return fields
}

// Map returns the messages keyed by field.
func (ve ValidationErrors) Map() map[string]string {
	m := make(map[string]string, len(ve))
	for _, e := range ve {
		m[e.Field] = e.Message
	}
	return m
}
