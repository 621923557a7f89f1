package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrLockHeld means another writer holds the room advisory lock.
	ErrLockHeld = errors.New("room lock already held")
)
