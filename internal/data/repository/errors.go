package repository

import "errors"

var (
	// ErrNotFound is returned when the addressed document does not exist
	// (or no longer matches the expected state for compare-and-swap writes).
	ErrNotFound = errors.New("document not found")

	// ErrReviewNotFound is returned when the event exists but the embedded review does not.
	ErrReviewNotFound = errors.New("review not found")

	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate key")

	// ErrInsufficientSeats is returned when a guarded seat decrement matches nothing.
	ErrInsufficientSeats = errors.New("not enough available seats")
)
