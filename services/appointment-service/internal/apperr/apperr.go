package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can branch on category instead of
// matching message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindPermission
	KindConflict
	KindPolicyViolation
	KindValidation
	KindSystem
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission"
	case KindConflict:
		return "conflict"
	case KindPolicyViolation:
		return "policy_violation"
	case KindValidation:
		return "validation"
	case KindSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Error carries a user-facing message plus an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) error        { return &Error{Kind: KindNotFound, Message: msg} }
func Permission(msg string) error      { return &Error{Kind: KindPermission, Message: msg} }
func Conflict(msg string) error        { return &Error{Kind: KindConflict, Message: msg} }
func PolicyViolation(msg string) error { return &Error{Kind: KindPolicyViolation, Message: msg} }
func Validation(msg string) error      { return &Error{Kind: KindValidation, Message: msg} }

// System wraps an unexpected infrastructure failure. The cause is preserved
// for logs; the message shown to callers stays generic.
func System(msg string, err error) error {
	return &Error{Kind: KindSystem, Message: msg, Err: err}
}

func Conflictf(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Message returns the user-facing message of err, or the raw error text for
// errors that did not originate in this package.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// KindOf returns the classification of err, or KindSystem for errors that
// did not originate in this package. Failures are never silently swallowed,
// so an unclassified error is by definition an infrastructure one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindSystem
}
