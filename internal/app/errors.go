package app

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrAlreadyRunning is returned when Run is called on a running app.
	ErrAlreadyRunning = errors.New("application already running")
	// ErrInitialization is returned when the application fails to start.
	ErrInitialization = errors.New("initialization failed")
	// ErrQuit is returned by Run after a user-requested Exit, as opposed to
	// an external Shutdown.
	ErrQuit = errors.New("quit requested")
)

// OperationError provides context about a failed application operation.
type OperationError struct {
	Op      string
	Target  string
	Context string
	Err     error
}

// NewOperationError creates a new operation error.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

// WithContext adds context to the error.
func (e *OperationError) WithContext(ctx string) *OperationError {
	e.Context = ctx
	return e
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("operation %s failed", e.Op)
	if e.Target != "" {
		msg += fmt.Sprintf(" on %s", e.Target)
	}
	if e.Context != "" {
		msg += fmt.Sprintf(" (%s)", e.Context)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
