package app

import (
	"errors"
	"fmt"
)

// Run results.
var (
	// ErrQuit is returned by Run and Dispatch when the host asks to close.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning is returned by a second concurrent Run.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoEventSource is returned by Run when it has neither an event
	// channel nor a backend to poll.
	ErrNoEventSource = errors.New("no event source")
)

// OperationError records which step of starting or running imepad failed
// and on what.
type OperationError struct {
	Op     string // "init", "watch"
	Target string // "backend", a config path
	Err    error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg += " " + e.Target
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is matches an *OperationError template with the same Op and, when the
// template names one, the same Target. Underlying errors are reached
// through Unwrap.
func (e *OperationError) Is(target error) bool {
	t, ok := target.(*OperationError)
	if !ok {
		return false
	}
	return t.Op == e.Op && (t.Target == "" || t.Target == e.Target)
}
