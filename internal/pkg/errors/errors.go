package errors

import "errors"

var (
	// ErrNotFound is returned when a mutation or lookup targets a missing id.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedContent marks a block payload that could not be parsed.
	ErrMalformedContent = errors.New("malformed content")
	// ErrDanglingReference marks a block whose data_id no longer resolves and
	// which carries no usable snapshot.
	ErrDanglingReference = errors.New("dangling reference")
	// ErrEmptyComposition is returned by the snapshot pipeline when there is
	// nothing resolvable to capture.
	ErrEmptyComposition = errors.New("empty composition")
	// ErrPersistenceFailure wraps save errors. The attempted change stays in
	// local state.
	ErrPersistenceFailure = errors.New("persistence failure")
	// ErrSuperseded is returned to a load that lost to a newer one.
	ErrSuperseded = errors.New("superseded")
)
