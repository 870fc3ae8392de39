package model

import (
	"errors"
)

var (
	// ErrCodeNotFound means the code binding archive has not been generated yet
	ErrCodeNotFound = errors.New("code binding not found")
	// ErrGenerationConflict means code generation is already running for the schema
	ErrGenerationConflict = errors.New("code generation already in progress")

	ErrGenerationFailed        = errors.New("code generation failed")
	ErrInvalidGenerationStatus = errors.New("invalid code generation status")
	ErrGenerationTimeout       = errors.New("code generation timed out")
	ErrFileCollision           = errors.New("file already exists in destination")
	ErrUnsafeArchivePath       = errors.New("archive entry escapes destination")
	ErrInvalidRequest          = errors.New("invalid download request")
	ErrUnsupportedLanguage     = errors.New("unsupported language")
)

// DefaultUserMessage is shown when a failure carries no message of its own
const DefaultUserMessage = "Unable to download schema code"

// UserError is a failure that carries a message ready to be shown to the user.
// The kind is one of the sentinel errors above and the cause, if any, holds the
// diagnostic detail that goes to the log.
type UserError struct {
	kind    error
	message string
	cause   error
}

// NewUserError creates a UserError of the given kind
func NewUserError(kind error, message string, cause error) *UserError {
	return &UserError{kind: kind, message: message, cause: cause}
}

func (e *UserError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Message returns the user facing message without diagnostic detail
func (e *UserError) Message() string {
	return e.message
}

func (e *UserError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

// UserMessage returns the message to show for err
func UserMessage(err error) string {
	var ue *UserError
	if errors.As(err, &ue) && ue.message != "" {
		return ue.message
	}
	return DefaultUserMessage
}
