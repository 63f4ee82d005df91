package model

import "time"

// Reservation statuses.  PENDING transitions to CONFIRMED, CANCELLED or
// EXPIRED; CONFIRMED transitions to CANCELLED or COMPLETED.  All other
// states are terminal.  A reservation is "active" while PENDING or
// CONFIRMED; active reservations occupy the (flight, seat) uniqueness
// invariant.
const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
	ReservationCompleted = "COMPLETED"
	ReservationExpired   = "EXPIRED"
)

// Reservation links a passenger to a specific seat on a specific flight.
// It is created PENDING with a 24 hour confirmation deadline; the seat is
// HELD for the lifetime of the pending reservation and released when the
// reservation is cancelled or expires.
//
// Fields:
//  ID          – primary key identifier.
//  Code        – unique 8-character uppercase booking code.
//  FlightID    – flight being reserved.
//  PassengerID – passenger travelling.
//  SeatID      – seat assigned.
//  Status      – current status.
//  PriceCents  – final price in cents.
//  Notes       – free-form remarks (nullable).
//  ExpiresAt   – confirmation deadline for PENDING reservations.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Reservation struct {
	ID          uint64    // reservations.id
	Code        string    // reservations.code
	FlightID    uint64    // reservations.flight_id
	PassengerID uint64    // reservations.passenger_id
	SeatID      uint64    // reservations.seat_id
	Status      string    // reservations.status
	PriceCents  uint32    // reservations.price_cents
	Notes       *string   // reservations.notes (nullable)
	ExpiresAt   time.Time // reservations.expires_at
	CreatedAt   time.Time // reservations.created_at
	UpdatedAt   time.Time // reservations.updated_at
}

// IsActive reports whether the reservation currently occupies its seat.
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}

// CanCancel reports whether cancellation is legal from the current state.
// The flight-departure check is enforced separately by the service.
func (r *Reservation) CanCancel() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}

// IsExpired reports whether the confirmation deadline has passed.
func (r *Reservation) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
