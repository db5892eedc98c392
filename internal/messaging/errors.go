package messaging

import "fmt"

// ValidationError rejects an operation whose input breaks a messaging
// invariant: empty content, a self-addressed message, a missing identifier.
// Callers surface the reason and never retry.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// NotFoundError signals that a referenced user does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// StorageError wraps a persistence failure. Nothing in this package
// retries; the caller decides how to surface it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
