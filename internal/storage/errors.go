package storage

import (
	"errors"
	"fmt"

	"slotfinder-backend/internal/models"
)

// ErrNotFound is returned by lookups and updates targeting an id that does
// not exist. Delete deliberately does not return it.
var ErrNotFound = errors.New("record not found")

// DuplicateLocationError rejects a create, update or move whose destination
// slot is already occupied by a different product.
type DuplicateLocationError struct {
	Location models.Location
}

func (e *DuplicateLocationError) Error() string {
	return "This location is already occupied"
}

// StorageError wraps a backing-store failure. The wrapped error is for
// logging only and must not be surfaced to clients.
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

func storageErr(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
