package todo

import (
	"errors"
	"fmt"
)

// User-facing messages.
const (
	MsgInvalidTitle = "Please enter a valid to-do item."
	MsgCreateFailed = "Failed to add new to-do. Please try again later."
	MsgCompleted    = "Task completed!"
)

// ErrUnknownItem is returned when an operation names an ID that is not in
// the mirror.
var ErrUnknownItem = errors.New("unknown item")

// ValidationError reports input rejected before any store call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// RemoteError reports a failed store call. Op is one of list, create,
// update, delete.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }
