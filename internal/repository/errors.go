// Package repository implements MySQL persistence for the airline
// domain.  Repositories are thin structs over *sql.DB; methods with a
// Tx suffix run inside a caller-supplied transaction and are the only
// ones allowed to take row locks.  Entity-specific sentinel errors are
// defined next to their repositories; this file holds the ones shared
// across several of them.
package repository

import "errors"

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint, such as a reservation code or a passenger document
// number that already exists.  Callers decide whether to retry with a
// new value or to surface a conflict.
var ErrDuplicate = errors.New("duplicate key")
