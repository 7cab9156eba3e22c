package cli

import (
	"fmt"
)

// NotFoundError indicates a city or file was not found.
type NotFoundError struct {
	Type string // "city" or "file"
	ID   string // the ID that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Type, e.ID)
}

// ValidationError indicates a validation failure.
type ValidationError struct {
	Field   string // the field that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// RemoteError carries the message a store operation recorded after a
// failed remote call.
type RemoteError struct {
	Message string
	Hint    string // suggestion for how to proceed
}

func (e *RemoteError) Error() string {
	if e.Hint != "" {
		return e.Message + "\n" + e.Hint
	}
	return e.Message
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
