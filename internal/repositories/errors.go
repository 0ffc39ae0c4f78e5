package repositories

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrStaleState means the row was no longer in the state the update expected.
	ErrStaleState = errors.New("record state changed")
)
