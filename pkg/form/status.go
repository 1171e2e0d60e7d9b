package form

// Status is the per-field validation state.
//
//	Untouched --blur/submit--> Valid | Invalid
//	Invalid   --blur/submit--> Valid
//	Valid|Invalid --input----> Untouched
type Status uint8

const (
	StatusUntouched Status = iota
	StatusValid
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "untouched"
	}
}
