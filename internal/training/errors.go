// ABOUTME: Typed failures returned by training operations.
// ABOUTME: Kinds are NotFound, Conflict, Validation and Internal; sentinels match by kind.
package training

import (
	"errors"
)

// Kind classifies a failure for adapters.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindValidation Kind = "validation"
	KindInternal   Kind = "internal"
)

// Error is the failure type of every Service operation.
type Error struct {
	Kind Kind
	// Entity names what was missing or conflicting, e.g. "template" or "set".
	Entity string
	// Field names the offending input for validation failures.
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Kind == KindInternal && e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, and by entity or field when the target sets them.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	if t.Entity != "" && t.Entity != e.Entity {
		return false
	}
	return t.Field == "" || t.Field == e.Field
}

var (
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrValidation = &Error{Kind: KindValidation}
	ErrInternal   = &Error{Kind: KindInternal}
)

// KindOf classifies any error. Errors outside the taxonomy are Internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// FieldOf returns the input field a validation error refers to, if any.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

func notFound(entity, message string) error {
	return &Error{Kind: KindNotFound, Entity: entity, Message: message}
}

func conflict(entity, message string) error {
	return &Error{Kind: KindConflict, Entity: entity, Message: message}
}

func invalid(field, message string) error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// classify leaves taxonomy errors alone and wraps everything else as Internal.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		// Drop rollback noise wrapped around a domain failure.
		return e
	}
	return internal("internal error", err)
}
