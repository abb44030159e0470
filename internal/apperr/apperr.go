// Package apperr defines the failure taxonomy shared by all core
// operations: not-found, validation, constraint and transaction
// failures. Handlers map kinds to HTTP statuses; services never
// return an untyped error for a caller mistake.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindConstraint
	KindTransaction
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports a referenced record that does not exist.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation reports caller-supplied fields that violate a contract.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Constraint reports a violated relationship rule, e.g. an item
// category outside its warehouse's supported set.
func Constraint(format string, args ...any) *Error {
	return &Error{Kind: KindConstraint, Message: fmt.Sprintf(format, args...)}
}

// Transaction wraps an underlying storage failure. The surrounding
// transaction rolls back; nothing is partially applied.
func Transaction(err error) *Error {
	return &Error{Kind: KindTransaction, Message: "storage write failed", Err: err}
}

// KindOf extracts the kind from an error chain, KindUnknown if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsConstraint(err error) bool { return KindOf(err) == KindConstraint }
