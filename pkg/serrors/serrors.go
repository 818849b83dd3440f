// Package serrors provides semantic error kinds for the dashboard client.
// Each kind is a comparable sentinel that can be matched with errors.Is
// through the Error wrapper, letting callers branch on the category of a
// failure (transport, validation, missing id, state conflict) without
// string matching.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind. It distinguishes semantic kinds from ordinary errors.
type Kind interface {
	error
	isKind()
}

// kind is an unexported implementation of Kind used as a sentinel value for a
// semantic error category.
type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel) with the provided
// name. Kinds are comparable and work with errors.Is/As through the
// serrors.Error wrapper.
func NewKind(name string) Kind { return kind{s: name} }

// Kinds cover the failure categories the scan backend can produce.
var (
	// ErrNetwork indicates a transport or connection failure; the request may
	// never have reached the backend.
	ErrNetwork = NewKind("NETWORK")
	// ErrValidation indicates the backend rejected the input (for example a
	// directory path that does not exist). The attached message carries the
	// server-provided detail for user display.
	ErrValidation = NewKind("VALIDATION")
	// ErrNotFound indicates the requested scan or quarantine id is unknown.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrConflict indicates the action is not applicable to the entry's
	// current state (for example restoring an already-restored file).
	ErrConflict = NewKind("CONFLICT")
	// ErrTimeout indicates a single request exceeded its per-call deadline.
	ErrTimeout = NewKind("TIMEOUT")
	// ErrInternal indicates the backend reported an internal failure.
	ErrInternal = NewKind("INTERNAL")
)

// Error is a semantic error carrying a kind (sentinel), an optional wrapped
// cause and an optional message. It fully supports errors.Is/errors.As and
// unwrapping.
//
// Matching semantics: errors.Is(err, target) matches if target matches either
// the kind sentinel or the wrapped cause, so a single check like
// errors.Is(err, serrors.ErrNotFound) works regardless of how deeply the
// error was wrapped afterwards.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs a new semantic error with the given kind and a
// human-readable message. Use Wrap to also record a concrete cause.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a new semantic error with the given kind, wrapping the
// provided cause and attaching a message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly creates a semantic error carrying only the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap returns the wrapped cause, enabling errors.Unwrap/Is/As traversal.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.err
}

// Is matches against either the semantic kind sentinel or the wrapped cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As matches type assertions against either the kind sentinel or the wrapped
// cause.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the semantic kind sentinel associated with this error, or nil.
func (e *Error) Kind() Kind {
	if e == nil {
		return nil
	}

	return e.kind
}

// Message returns the message attached to this error. For validation errors
// this is the server-provided detail suitable for user display.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.msg
}

// Cause returns the wrapped cause (may be nil).
func (e *Error) Cause() error {
	if e == nil {
		return nil
	}

	return e.err
}
