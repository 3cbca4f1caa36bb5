package process

import (
	"errors"
	"fmt"
)

// ErrProcessFailed matches every *Error with errors.Is.
var ErrProcessFailed = errors.New("child process failed")

// Error reports a child process that exited with a non-zero status.
type Error struct {
	Workspace string
	Command   string
	ExitCode  int
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: command %q exited with code %d", e.Workspace, e.Command, e.ExitCode)
}

// Is matches ErrProcessFailed.
func (e *Error) Is(target error) bool {
	return target == ErrProcessFailed
}

// Unwrap returns the underlying wait error.
func (e *Error) Unwrap() error {
	return e.Err
}
