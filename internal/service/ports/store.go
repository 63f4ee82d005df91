// Package ports declares the persistence contracts consumed by the
// service layer.  The MySQL implementation lives in the repository
// package; tests substitute in-memory fakes.  Keeping the contracts
// here lets the reservation state machine be exercised without a
// database while the production implementation retains real row locks.
package ports

import (
	"context"
	"time"

	"github.com/iliyamo/airline-reservation/internal/model"
)

// ReservationFilter narrows ListReservations.  Zero values mean "no
// constraint" for that field.
type ReservationFilter struct {
	FlightID    uint64
	PassengerID uint64
	Status      string
}

// ReservationStore provides read access and transactional scopes over
// the reservation ledger and its collaborators.  Lookups return
// model.ErrNotFound (possibly wrapped) when the id does not resolve.
type ReservationStore interface {
	// InTx runs fn inside a single database transaction.  The
	// transaction commits only when fn returns nil; any error rolls
	// back every write made through the ReservationTx.  All
	// lock-recheck-act sequences of the ledger go through here.
	InTx(ctx context.Context, fn func(tx ReservationTx) error) error

	GetFlight(ctx context.Context, id uint64) (*model.Flight, error)
	GetSeat(ctx context.Context, id uint64) (*model.Seat, error)
	GetPassenger(ctx context.Context, id uint64) (*model.Passenger, error)
	GetReservation(ctx context.Context, id uint64) (*model.Reservation, error)
	GetReservationByCode(ctx context.Context, code string) (*model.Reservation, error)
	ListReservations(ctx context.Context, f ReservationFilter) ([]model.Reservation, error)

	// ListPendingExpiredBefore returns ids of PENDING reservations whose
	// deadline passed at or before the cutoff, oldest first.  Used by the
	// sweeper to build its work set outside any transaction; each item
	// is then re-checked under lock.
	ListPendingExpiredBefore(ctx context.Context, cutoff time.Time) ([]uint64, error)

	GetTicketByReservation(ctx context.Context, reservationID uint64) (*model.Ticket, error)
}

// ReservationTx is the set of operations available inside a store
// transaction.  ForUpdate lookups take an exclusive row lock so that
// the caller may re-validate preconditions before acting ("lock, then
// recheck, then act").
type ReservationTx interface {
	FlightForUpdate(ctx context.Context, id uint64) (*model.Flight, error)
	SeatForUpdate(ctx context.Context, id uint64) (*model.Seat, error)
	ReservationForUpdate(ctx context.Context, id uint64) (*model.Reservation, error)

	// SeatHasActiveReservation reports whether any PENDING or CONFIRMED
	// reservation references the (flight, seat) pair.
	SeatHasActiveReservation(ctx context.Context, flightID, seatID uint64) (bool, error)

	// PassengerHasActiveReservation reports whether the passenger
	// already holds a PENDING or CONFIRMED reservation on the flight.
	PassengerHasActiveReservation(ctx context.Context, flightID, passengerID uint64) (bool, error)

	// InsertReservation persists a new reservation and populates its ID.
	// A duplicate code violates a unique constraint and is reported as
	// model.ErrConflict so the caller can regenerate and retry.
	InsertReservation(ctx context.Context, r *model.Reservation) error

	UpdateReservationStatus(ctx context.Context, id uint64, status string) error
	UpdateSeatStatus(ctx context.Context, seatID uint64, status string) error

	TicketByReservation(ctx context.Context, reservationID uint64) (*model.Ticket, error)
	InsertTicket(ctx context.Context, t *model.Ticket) error
	UpdateTicketStatus(ctx context.Context, id uint64, status string) error
}
