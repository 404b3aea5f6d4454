package civetdocs

import (
	"errors"
	"fmt"
)

// RuntimeError marks a failure of the build itself, such as an unreadable
// configuration file or an unwritable output directory. The command maps it
// to exit code 2. Test results that contain failures are not runtime errors;
// they render as fail badges.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

// Unwrap exposes the cause to errors.Is and errors.As
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError wraps err as a RuntimeError
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError reports whether err is or wraps a RuntimeError
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}
