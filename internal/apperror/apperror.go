package apperror

import (
	"errors"
	"fmt"
)

// Kind describes a stable error category callers can branch on.
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindInternal     Kind = "internal"
)

// Error is a typed error with a stable Kind and a human-readable message.
// Field names the offending input attribute for KindInvalidInput.
type Error struct {
	Kind  Kind
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func New(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func InvalidInput(field, msg string) error {
	return &Error{Kind: KindInvalidInput, Field: field, Msg: msg}
}

func Internal(msg string, err error) error { return New(KindInternal, msg, err) }

func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// FieldOf returns the offending field of an invalid-input error, or "".
func FieldOf(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Field
}
