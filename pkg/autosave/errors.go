package autosave

import "errors"

var (
	// ErrStorage wraps failures of the backing store.
	ErrStorage = errors.New("autosave storage failed")

	// ErrCorruptSnapshot is returned when a stored snapshot is not a flat JSON object of strings.
	ErrCorruptSnapshot = errors.New("corrupt autosave snapshot")
)
