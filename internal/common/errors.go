// Package common defines sentinel errors shared across EstateDesk
// components. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks malformed or missing user input.
	ErrValidation = errors.New("validation error")

	// ErrPermissionDenied marks an operation forbidden by business rules,
	// e.g. mutating a recorded sale.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnauthorized marks access to a protected operation without a
	// valid identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyExists is returned on uniqueness violations, e.g. a
	// duplicate email.
	ErrAlreadyExists = errors.New("already exists")
)

// PersistenceError wraps a store-level failure together with the operation
// that produced it. The cause is preserved for server-side logging and is
// never echoed to end users.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NewPersistenceError wraps err as a PersistenceError for operation op.
func NewPersistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
