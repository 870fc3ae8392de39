package model

// GenerationStatus is the code generation state reported by the schema registry
type GenerationStatus string

const (
	GenerationCreateComplete   GenerationStatus = "CREATE_COMPLETE"
	GenerationCreateInProgress GenerationStatus = "CREATE_IN_PROGRESS"
)

// String returns the raw status, or a placeholder when the service returned none
func (s GenerationStatus) String() string {
	if s == "" {
		return "no status available"
	}
	return string(s)
}

// IsKnown reports whether the status is one the poller knows how to act on
func (s GenerationStatus) IsKnown() bool {
	switch s {
	case GenerationCreateComplete, GenerationCreateInProgress:
		return true
	default:
		return false
	}
}
