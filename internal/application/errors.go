package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound     = errors.New("not found")
	ErrAuthRequired = errors.New("sign in required")
	ErrPersistence  = errors.New("record store failure")
	ErrWriteFailed  = errors.New("write failed")
	ErrInconsistent = errors.New("store left inconsistent")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AuthRequiredError is returned when an operation runs without a session
type AuthRequiredError struct {
	Op string
}

func (e *AuthRequiredError) Error() string {
	if e.Op == "" {
		return ErrAuthRequired.Error()
	}
	return fmt.Sprintf("%s: %s", e.Op, ErrAuthRequired)
}

func (e *AuthRequiredError) Is(target error) bool {
	return target == ErrAuthRequired
}

// PersistenceError wraps a failed record store call. Write failures also
// match ErrWriteFailed.
type PersistenceError struct {
	Op    string // select, insert, update, delete
	Table string
	Write bool
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	if target == ErrPersistence {
		return true
	}
	return e.Write && target == ErrWriteFailed
}

// ReadFailed wraps a failed select
func ReadFailed(table string, err error) error {
	return &PersistenceError{Op: "select", Table: table, Err: err}
}

// WriteFailed wraps a failed insert, update or delete
func WriteFailed(op, table string, err error) error {
	return &PersistenceError{Op: op, Table: table, Write: true, Err: err}
}

// CascadeError reports a list delete that did not complete. When
// ChildrenDeleted is set the items are gone but the list row remains.
type CascadeError struct {
	ListID          int64
	ChildrenDeleted bool
	Err             error
}

func (e *CascadeError) Error() string {
	if e.ChildrenDeleted {
		return fmt.Sprintf("cannot delete list %d: items were removed but the list remains: %v", e.ListID, e.Err)
	}
	return fmt.Sprintf("cannot delete list %d: %v", e.ListID, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}

func (e *CascadeError) Is(target error) bool {
	if target == ErrWriteFailed {
		return true
	}
	return e.ChildrenDeleted && target == ErrInconsistent
}
