// Package model defines the persistent domain records and the shared
// error taxonomy.  Records carry no behavior beyond simple predicates;
// all transition logic and locking lives in the service layer.
package model

import "errors"

// Error taxonomy shared by all layers.  Services wrap these sentinels
// with context via fmt.Errorf("%w: ...") and callers match them with
// errors.Is.  Handlers translate them to HTTP status codes.
var (
	// ErrNotFound is returned when an entity id or code does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned when an operation is attempted from a
	// state that forbids it, e.g. confirming a cancelled reservation.
	ErrInvalidState = errors.New("invalid state")

	// ErrConflict is returned when a concurrent mutation is detected:
	// the seat is no longer available or a duplicate active reservation
	// exists for the same flight.
	ErrConflict = errors.New("conflict")

	// ErrValidation is returned on malformed input such as a past
	// departure date, a non-positive price or a missing required field.
	ErrValidation = errors.New("validation failed")

	// ErrExpired is returned when a reservation's confirmation deadline
	// has passed at confirm time.  The confirm path only refuses the
	// request; the sweeper performs the actual expiry.
	ErrExpired = errors.New("reservation expired")
)
