// Package service holds the business rules of the airline.  Services
// validate inputs, enforce state machines and orchestrate transactions;
// they never parse HTTP or build SQL themselves.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/service/ports"
)

// codeAttempts bounds booking-code and barcode regeneration when an
// insert collides with an existing value.
const codeAttempts = 5

// DefaultHoldTTL is the confirmation window granted to a new
// reservation.
const DefaultHoldTTL = 24 * time.Hour

// refundCutoff separates generous from reduced refunds.  Cancelling a
// confirmed reservation more than this long before departure refunds
// 80% of the fare, later cancellations refund 50%.
const refundCutoff = 24 * time.Hour

// CreateReservationInput carries the validated parameters for booking a
// seat.
type CreateReservationInput struct {
	FlightID    uint64
	PassengerID uint64
	SeatID      uint64
	Notes       *string
}

// ConfirmResult bundles the outcome of a confirmation: the reservation
// in its new state plus the ticket issued (or already held, when the
// call was an idempotent retry).
type ConfirmResult struct {
	Reservation *model.Reservation
	Ticket      *model.Ticket
	Flight      *model.Flight
	Passenger   *model.Passenger
	Seat        *model.Seat
	// AlreadyConfirmed is true when the reservation was CONFIRMED
	// before this call; no state changed.
	AlreadyConfirmed bool
}

// CancelResult reports a cancellation and the refund owed.  Refunds
// apply only to confirmed reservations; cancelling a pending hold owes
// nothing.
type CancelResult struct {
	Reservation *model.Reservation
	RefundCents uint32
}

// ReservationService implements the reservation lifecycle: create a
// pending hold, confirm it into a ticket, cancel with refund, complete
// after the flight.  Every state change runs as lock, recheck, act
// inside a single store transaction.
type ReservationService struct {
	store   ports.ReservationStore
	holdTTL time.Duration
	now     func() time.Time
}

// NewReservationService constructs a ReservationService.  A zero
// holdTTL falls back to DefaultHoldTTL.
func NewReservationService(store ports.ReservationStore, holdTTL time.Duration) *ReservationService {
	if holdTTL <= 0 {
		holdTTL = DefaultHoldTTL
	}
	return &ReservationService{store: store, holdTTL: holdTTL, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the service clock.  Tests use this to pin time.
func (s *ReservationService) WithClock(now func() time.Time) *ReservationService {
	s.now = now
	return s
}

// Create books a seat for a passenger on a flight.  The reservation
// starts PENDING with a confirmation deadline, and the seat moves to
// HELD.  The seat's availability is re-validated under a row lock, so
// of any number of concurrent attempts on the same seat exactly one
// succeeds.
func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (*model.Reservation, error) {
	now := s.now()

	// Friendly pre-checks outside the transaction.  Everything decided
	// here is re-validated under lock before acting.
	flight, err := s.store.GetFlight(ctx, in.FlightID)
	if err != nil {
		return nil, err
	}
	seat, err := s.store.GetSeat(ctx, in.SeatID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetPassenger(ctx, in.PassengerID); err != nil {
		return nil, err
	}
	if seat.AircraftID != flight.AircraftID {
		return nil, fmt.Errorf("seat %s does not belong to the flight's aircraft: %w", seat.Number, model.ErrValidation)
	}
	if !flight.IsBookable(now) {
		return nil, fmt.Errorf("flight %d is not open for booking: %w", flight.ID, model.ErrInvalidState)
	}
	if seat.Status == model.SeatMaintenance {
		return nil, fmt.Errorf("seat %s is under maintenance: %w", seat.Number, model.ErrInvalidState)
	}

	var created *model.Reservation
	err = s.store.InTx(ctx, func(tx ports.ReservationTx) error {
		// Lock order: flight row first, then seat row.
		f, err := tx.FlightForUpdate(ctx, in.FlightID)
		if err != nil {
			return err
		}
		if !f.IsBookable(now) {
			return fmt.Errorf("flight %d is not open for booking: %w", f.ID, model.ErrInvalidState)
		}
		st, err := tx.SeatForUpdate(ctx, in.SeatID)
		if err != nil {
			return err
		}
		if st.Status != model.SeatAvailable {
			return fmt.Errorf("seat %s is %s: %w", st.Number, st.Status, model.ErrConflict)
		}
		taken, err := tx.SeatHasActiveReservation(ctx, f.ID, st.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("seat %s already has an active reservation: %w", st.Number, model.ErrConflict)
		}
		booked, err := tx.PassengerHasActiveReservation(ctx, f.ID, in.PassengerID)
		if err != nil {
			return err
		}
		if booked {
			return fmt.Errorf("passenger %d already holds a reservation on flight %d: %w", in.PassengerID, f.ID, model.ErrConflict)
		}

		res := &model.Reservation{
			FlightID:    f.ID,
			PassengerID: in.PassengerID,
			SeatID:      st.ID,
			Status:      model.ReservationPending,
			PriceCents:  f.PriceForClass(st.Class),
			Notes:       in.Notes,
			ExpiresAt:   now.Add(s.holdTTL),
		}
		for attempt := 0; ; attempt++ {
			res.Code = NewBookingCode()
			err = tx.InsertReservation(ctx, res)
			if err == nil {
				break
			}
			if !errors.Is(err, model.ErrConflict) || attempt+1 >= codeAttempts {
				return err
			}
		}
		if err := tx.UpdateSeatStatus(ctx, st.ID, model.SeatHeld); err != nil {
			return err
		}
		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Confirm promotes a pending reservation to CONFIRMED, moves the seat
// to OCCUPIED and issues the ticket, all in one transaction.  Calling
// it on an already confirmed reservation is a no-op returning the
// existing ticket.  A reservation past its deadline is refused with
// model.ErrExpired; expiring it is the sweeper's job, so the hold
// stays PENDING and the seat HELD.
func (s *ReservationService) Confirm(ctx context.Context, id uint64) (*ConfirmResult, error) {
	now := s.now()

	var out ConfirmResult
	err := s.store.InTx(ctx, func(tx ports.ReservationTx) error {
		res, err := tx.ReservationForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if res.Status == model.ReservationConfirmed {
			t, err := tx.TicketByReservation(ctx, res.ID)
			if err != nil {
				return err
			}
			out = ConfirmResult{Reservation: res, Ticket: t, AlreadyConfirmed: true}
			return nil
		}
		if res.Status != model.ReservationPending {
			return fmt.Errorf("reservation %s is %s: %w", res.Code, res.Status, model.ErrInvalidState)
		}
		if res.IsExpired(now) {
			// Refuse so a slow client cannot resurrect a dead hold.
			// The sweeper owns the actual expiry.
			return fmt.Errorf("reservation %s missed its confirmation deadline: %w", res.Code, model.ErrExpired)
		}

		if err := tx.UpdateReservationStatus(ctx, res.ID, model.ReservationConfirmed); err != nil {
			return err
		}
		if err := tx.UpdateSeatStatus(ctx, res.SeatID, model.SeatOccupied); err != nil {
			return err
		}

		ticket := &model.Ticket{
			ReservationID: res.ID,
			Status:        model.TicketIssued,
		}
		for attempt := 0; ; attempt++ {
			ticket.Barcode = NewTicketBarcode()
			err = tx.InsertTicket(ctx, ticket)
			if err == nil {
				break
			}
			if !errors.Is(err, model.ErrConflict) || attempt+1 >= codeAttempts {
				return err
			}
		}
		confirmed := *res
		confirmed.Status = model.ReservationConfirmed
		out = ConfirmResult{Reservation: &confirmed, Ticket: ticket}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Denormalized context for event publishing and responses; reads
	// happen after commit so a failure here cannot undo the confirm.
	if !out.AlreadyConfirmed {
		if f, err := s.store.GetFlight(ctx, out.Reservation.FlightID); err == nil {
			out.Flight = f
		}
		if p, err := s.store.GetPassenger(ctx, out.Reservation.PassengerID); err == nil {
			out.Passenger = p
		}
		if st, err := s.store.GetSeat(ctx, out.Reservation.SeatID); err == nil {
			out.Seat = st
		}
	}
	return &out, nil
}

// Cancel releases a pending or confirmed reservation.  The seat returns
// to AVAILABLE, any issued ticket is cancelled, and for confirmed
// reservations a refund is computed against the flight's departure
// time.  Cancellation is rejected once the flight has departed.
func (s *ReservationService) Cancel(ctx context.Context, id uint64) (*CancelResult, error) {
	now := s.now()

	var out CancelResult
	err := s.store.InTx(ctx, func(tx ports.ReservationTx) error {
		res, err := tx.ReservationForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !res.CanCancel() {
			return fmt.Errorf("reservation %s is %s: %w", res.Code, res.Status, model.ErrInvalidState)
		}
		f, err := tx.FlightForUpdate(ctx, res.FlightID)
		if err != nil {
			return err
		}
		if !now.Before(f.DepartureAt) {
			return fmt.Errorf("flight %d has already departed: %w", f.ID, model.ErrInvalidState)
		}
		wasConfirmed := res.Status == model.ReservationConfirmed

		if err := tx.UpdateReservationStatus(ctx, res.ID, model.ReservationCancelled); err != nil {
			return err
		}
		if err := tx.UpdateSeatStatus(ctx, res.SeatID, model.SeatAvailable); err != nil {
			return err
		}
		if wasConfirmed {
			t, err := tx.TicketByReservation(ctx, res.ID)
			if err == nil {
				if err := tx.UpdateTicketStatus(ctx, t.ID, model.TicketCancelled); err != nil {
					return err
				}
			} else if !errors.Is(err, model.ErrNotFound) {
				return err
			}
		}

		cancelled := *res
		cancelled.Status = model.ReservationCancelled
		out.Reservation = &cancelled
		if wasConfirmed {
			out.RefundCents = RefundAmount(res.PriceCents, f.DepartureAt, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Complete marks a confirmed reservation COMPLETED after the passenger
// has flown.  This is an explicit operator action, never automatic.
// The ticket is marked USED.
func (s *ReservationService) Complete(ctx context.Context, id uint64) (*model.Reservation, error) {
	var completed *model.Reservation
	err := s.store.InTx(ctx, func(tx ports.ReservationTx) error {
		res, err := tx.ReservationForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if res.Status != model.ReservationConfirmed {
			return fmt.Errorf("reservation %s is %s: %w", res.Code, res.Status, model.ErrInvalidState)
		}
		if err := tx.UpdateReservationStatus(ctx, res.ID, model.ReservationCompleted); err != nil {
			return err
		}
		t, err := tx.TicketByReservation(ctx, res.ID)
		if err == nil {
			if t.Status == model.TicketIssued {
				if err := tx.UpdateTicketStatus(ctx, t.ID, model.TicketUsed); err != nil {
					return err
				}
			}
		} else if !errors.Is(err, model.ErrNotFound) {
			return err
		}
		done := *res
		done.Status = model.ReservationCompleted
		completed = &done
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

// Get retrieves a reservation by id.
func (s *ReservationService) Get(ctx context.Context, id uint64) (*model.Reservation, error) {
	return s.store.GetReservation(ctx, id)
}

// GetByCode retrieves a reservation by booking code, case-insensitive.
func (s *ReservationService) GetByCode(ctx context.Context, code string) (*model.Reservation, error) {
	return s.store.GetReservationByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

// List returns reservations matching the filter.
func (s *ReservationService) List(ctx context.Context, f ports.ReservationFilter) ([]model.Reservation, error) {
	return s.store.ListReservations(ctx, f)
}

// Ticket retrieves the ticket attached to a reservation.
func (s *ReservationService) Ticket(ctx context.Context, reservationID uint64) (*model.Ticket, error) {
	return s.store.GetTicketByReservation(ctx, reservationID)
}

// RefundAmount computes the refund for cancelling a confirmed
// reservation: 80% of the fare when more than 24 hours remain before
// departure, 50% afterwards.
func RefundAmount(priceCents uint32, departureAt, now time.Time) uint32 {
	if departureAt.Sub(now) > refundCutoff {
		return priceCents * 80 / 100
	}
	return priceCents * 50 / 100
}

// NewBookingCode generates an 8-character uppercase booking code.
// Uniqueness is enforced by the database; callers retry on collision.
func NewBookingCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:8])
}

// NewTicketBarcode generates a barcode of the form "BOL" followed by 12
// uppercase hex characters.
func NewTicketBarcode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "BOL" + strings.ToUpper(raw[:12])
}
