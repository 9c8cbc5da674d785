package records

import (
	"errors"
	"fmt"
)

// ErrIncompleteBooking marks a snapshot with at least one empty field. The
// state machine should never produce one; the store rejects it regardless.
var ErrIncompleteBooking = errors.New("booking snapshot has empty fields")

// StorageError wraps an underlying write or read failure so callers can tell
// persistence problems apart from validation ones.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("booking log %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
