package types

import (
	"errors"
	"fmt"
)

// Standard errors returned by the storage backend and stores.
var (
	ErrNotAttached     = errors.New("backend is not attached")
	ErrAlreadyAttached = errors.New("backend is already attached")
	ErrUnknownTable    = errors.New("unknown table")
	ErrInvalidRecord   = errors.New("record type does not match table")
	ErrInvalidStatus   = errors.New("unknown check-in status value")
	ErrInvalidPrivs    = errors.New("unknown privs value")
	ErrInvalidColumn   = errors.New("unknown column name")
)

// ConflictError reports an illegal lending-state transition: the book's
// current status blocked the operation. User is the uid holding the book,
// 0 when nobody does.
type ConflictError struct {
	Reason string
	User   int64
}

func (e *ConflictError) Error() string {
	if e.User == 0 {
		return fmt.Sprintf("lending conflict: book is %s", e.Reason)
	}
	return fmt.Sprintf("lending conflict: book is %s (held by user %d)", e.Reason, e.User)
}

// AsConflict unwraps err as a *ConflictError if it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}
