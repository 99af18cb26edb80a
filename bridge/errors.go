package bridge

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound matches every NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrBridgeUnavailable is returned when an operation needs a live remote
	// runtime and none is present.
	ErrBridgeUnavailable = errors.New("remote bridge unavailable")
	// ErrDuplicateName matches every DuplicateNameError.
	ErrDuplicateName = errors.New("duplicate capability name")
	// ErrInvalidArgument matches every ArgumentError.
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFoundError reports a missing remote property or method, or a missing
// capability name.
type NotFoundError struct {
	Kind      string
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s %q not found", e.Kind, e.Name)
	if len(e.Available) > 0 {
		msg += " (available: " + strings.Join(e.Available, ", ") + ")"
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFound creates a NotFoundError.
func NewNotFound(kind, name string, available ...string) *NotFoundError {
	return &NotFoundError{Kind: kind, Name: name, Available: available}
}

// RejectionError carries the payload a remote awaitable was rejected with.
type RejectionError struct {
	Reason any
}

func (e *RejectionError) Error() string {
	switch actual := e.Reason.(type) {
	case error:
		return "remote rejected: " + actual.Error()
	case map[string]interface{}:
		if msg, ok := actual["message"].(string); ok {
			return "remote rejected: " + msg
		}
	case string:
		return "remote rejected: " + actual
	}
	return fmt.Sprintf("remote rejected: %v", e.Reason)
}

func (e *RejectionError) Unwrap() error {
	if err, ok := e.Reason.(error); ok {
		return err
	}
	return nil
}

// DuplicateNameError reports two different methods claiming one exposed name.
type DuplicateNameError struct {
	Kind   string
	Name   string
	First  string
	Second string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate %s name %q: declared by %s and %s", e.Kind, e.Name, e.First, e.Second)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// ArgumentError reports arguments that do not fit the target's call shape.
type ArgumentError struct {
	Name   string
	Reason string
	Err    error
}

func (e *ArgumentError) Error() string {
	msg := fmt.Sprintf("invalid arguments for %q: %s", e.Name, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ArgumentError) Unwrap() error { return e.Err }

func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidArgument }
