package autosave

// KeyPrefix starts every storage key.
const KeyPrefix = "autosave_"

// DefaultFormID is used when a form has no id.
const DefaultFormID = "default"

// Key returns the storage key of a form.
func Key(formID string) string {
	if formID == "" {
		formID = DefaultFormID
	}
	return KeyPrefix + formID
}

// scopedKey namespaces a form key by browser session.
func scopedKey(scope, formID string) string {
	if scope == "" {
		return Key(formID)
	}
	return scope + ":" + Key(formID)
}
