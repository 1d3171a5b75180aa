// Package apperr defines the failure taxonomy shared by every layer.
// Each error carries a machine-checkable kind plus a human-readable reason;
// the HTTP layer maps kinds to status codes and nothing else inspects reasons.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindStorage       Kind = "storage"
)

// Error is the canonical application error. Err, when set, preserves the
// underlying cause for wrapping chains.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is match two apperr values by kind, so callers can test
// against a prototype like apperr.Validation("").
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

func Validation(reason string) *Error {
	return &Error{Kind: KindValidation, Reason: reason}
}

func Authorization(reason string) *Error {
	return &Error{Kind: KindAuthorization, Reason: reason}
}

func NotFound(reason string) *Error {
	return &Error{Kind: KindNotFound, Reason: reason}
}

func Conflict(reason string) *Error {
	return &Error{Kind: KindConflict, Reason: reason}
}

// Storage wraps an infrastructure failure. The reason stays generic; the
// wrapped error keeps the driver detail for logs.
func Storage(reason string, err error) *Error {
	return &Error{Kind: KindStorage, Reason: reason, Err: err}
}

// KindOf extracts the kind from an error chain, or "" when the error does not
// originate from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// ReasonOf returns the human-readable reason, falling back to the raw error
// text for foreign errors.
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
