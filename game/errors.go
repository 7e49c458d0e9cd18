package game

import "errors"

// Error kinds wrapped by every hard failure so callers can dispatch with
// errors.Is. Soft edge cases (collection misses, empty-deck draws, rejected
// moves) are reported as values, never through these.
var (
	// ErrStateConflict marks an operation attempted from the wrong
	// lifecycle state or against a player in the wrong status.
	ErrStateConflict = errors.New("state conflict")

	// ErrNotFound marks a lookup of an unknown player or entity.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument marks an out-of-range or malformed argument.
	ErrInvalidArgument = errors.New("invalid argument")
)
