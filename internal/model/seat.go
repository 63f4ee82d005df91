package model

import "time"

// Seat statuses.  A seat's status must reflect its active reservation:
// AVAILABLE when none exists, HELD while exactly one PENDING reservation
// references it, OCCUPIED while exactly one CONFIRMED reservation does.
// MAINTENANCE removes the seat from sale entirely.
const (
	SeatAvailable   = "AVAILABLE"
	SeatHeld        = "HELD"
	SeatOccupied    = "OCCUPIED"
	SeatMaintenance = "MAINTENANCE"
)

// Seat classes, ordered from cheapest to most expensive.
const (
	SeatClassEconomy = "ECONOMY"
	SeatClassPremium = "PREMIUM"
	SeatClassFirst   = "FIRST"
)

// Seat describes a physical seat on an aircraft.  Seats are uniquely
// identified within their aircraft by row and column; Number is the
// human-readable label composed of both (e.g. "12C").  The status field
// is the single shared resource contended by concurrent reservation
// attempts and must only change under a row lock.
//
// Fields:
//  ID         – primary key identifier.
//  AircraftID – aircraft to which this seat belongs.
//  Number     – seat label, row number followed by column letter.
//  Row        – 1-based row number.
//  Column     – column letter (A, B, C, ...).
//  Class      – cabin class (ECONOMY, PREMIUM, FIRST).
//  Status     – current status (AVAILABLE, HELD, OCCUPIED, MAINTENANCE).
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Seat struct {
	ID         uint64    // seats.id
	AircraftID uint64    // seats.aircraft_id
	Number     string    // seats.number
	Row        uint32    // seats.seat_row
	Column     string    // seats.seat_column
	Class      string    // seats.class
	Status     string    // seats.status
	CreatedAt  time.Time // seats.created_at
	UpdatedAt  time.Time // seats.updated_at
}
