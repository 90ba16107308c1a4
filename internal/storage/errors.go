package storage

import (
	"errors"
	"fmt"
)

// Storage errors.
var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when the underlying store is unreachable
	// or rejects a write. Fatal to the run, unlike per-source errors.
	ErrUnavailable = errors.New("store unavailable")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)

// Unavailable tags err so errors.Is(err, ErrUnavailable) holds, keeping the
// cause message for logs.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
