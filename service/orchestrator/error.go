package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

// TaskError attributes a failure to a workspace.
type TaskError struct {
	Workspace string
	Err       error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%v: %v", e.Workspace, e.Err)
}

// Unwrap returns the underlying task error.
func (e *TaskError) Unwrap() error {
	return e.Err
}

// AggregateError carries every failure collected in continue-on-error mode,
// in the order failures were observed.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("1 workspace failed: %v", e.Errors[0])
	}
	messages := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		messages[i] = err.Error()
	}
	return fmt.Sprintf("%d workspaces failed: %v", len(e.Errors), strings.Join(messages, "; "))
}

// Unwrap exposes collected errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Workspaces returns names of failed workspaces in observation order.
func (e *AggregateError) Workspaces() []string {
	var ret []string
	for _, err := range e.Errors {
		var taskErr *TaskError
		if errors.As(err, &taskErr) {
			ret = append(ret, taskErr.Workspace)
		}
	}
	return ret
}

// IsAggregate reports whether err is, or wraps, an *AggregateError.
func IsAggregate(err error) bool {
	var aggregate *AggregateError
	return errors.As(err, &aggregate)
}
