package shell

import (
	"errors"
	"fmt"
)

// ErrLoginRequired is returned when an action needs a signed-in user. The
// login modal has been opened by the time it is returned.
var ErrLoginRequired = errors.New("login required")

// ErrDialogClosed is returned when a dialog is submitted without being open.
var ErrDialogClosed = errors.New("dialog is not open")

// ValidationError is a form input rejected before any request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
