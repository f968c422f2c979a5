package application

import (
	"errors"
	"fmt"
	"testing"
)

func TestPersistenceError_Is(t *testing.T) {
	cause := errors.New("disk full")

	read := ReadFailed("tasks", cause)
	if !errors.Is(read, ErrPersistence) {
		t.Error("read failure should match ErrPersistence")
	}
	if errors.Is(read, ErrWriteFailed) {
		t.Error("read failure should not match ErrWriteFailed")
	}

	write := fmt.Errorf("create task: %w", WriteFailed("insert", "tasks", cause))
	if !errors.Is(write, ErrWriteFailed) || !errors.Is(write, ErrPersistence) {
		t.Error("write failure should match ErrWriteFailed and ErrPersistence")
	}
	if !errors.Is(write, cause) {
		t.Error("write failure should unwrap to its cause")
	}

	var pe *PersistenceError
	if !errors.As(write, &pe) || pe.Table != "tasks" || pe.Op != "insert" {
		t.Errorf("unexpected persistence error %+v", pe)
	}
}

func TestCascadeError_Is(t *testing.T) {
	cause := errors.New("locked")

	partial := &CascadeError{ListID: 4, ChildrenDeleted: true, Err: cause}
	if !errors.Is(partial, ErrInconsistent) || !errors.Is(partial, ErrWriteFailed) {
		t.Error("partial cascade should be inconsistent and a write failure")
	}

	clean := &CascadeError{ListID: 4, Err: cause}
	if errors.Is(clean, ErrInconsistent) {
		t.Error("cascade that removed nothing is not inconsistent")
	}
	if !errors.Is(clean, cause) {
		t.Error("cascade error should unwrap to its cause")
	}
}

func TestAuthRequiredError_Is(t *testing.T) {
	err := fmt.Errorf("load lists: %w", &AuthRequiredError{Op: "lists"})
	if !errors.Is(err, ErrAuthRequired) {
		t.Error("expected ErrAuthRequired")
	}
	if (&AuthRequiredError{}).Error() != "sign in required" {
		t.Error("unexpected message for bare auth error")
	}
}
