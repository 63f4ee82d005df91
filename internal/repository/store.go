package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/service/ports"
)

// Store is the MySQL implementation of ports.ReservationStore.  It
// stitches the entity repositories together and translates their
// sentinel errors into the model taxonomy the service layer matches on.
type Store struct {
	db           *sql.DB
	flights      *FlightRepo
	seats        *SeatRepo
	passengers   *PassengerRepo
	reservations *ReservationRepo
	tickets      *TicketRepo
}

// NewStore constructs a Store over the given DB handle.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		flights:      NewFlightRepo(db),
		seats:        NewSeatRepo(db),
		passengers:   NewPassengerRepo(db),
		reservations: NewReservationRepo(db),
		tickets:      NewTicketRepo(db),
	}
}

var _ ports.ReservationStore = (*Store)(nil)

// notFound wraps a repository miss as model.ErrNotFound while keeping
// the entity name in the message.
func notFound(entity string, id interface{}) error {
	return fmt.Errorf("%s %v: %w", entity, id, model.ErrNotFound)
}

// InTx opens a transaction, runs fn against it and commits only when fn
// returns nil.  Any error, including a panic unwinding through the
// defer, rolls the transaction back.
func (s *Store) InTx(ctx context.Context, fn func(tx ports.ReservationTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&storeTx{store: s, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetFlight retrieves a flight by id.
func (s *Store) GetFlight(ctx context.Context, id uint64) (*model.Flight, error) {
	f, err := s.flights.GetByID(ctx, id)
	if errors.Is(err, ErrFlightNotFound) {
		return nil, notFound("flight", id)
	}
	return f, err
}

// GetSeat retrieves a seat by id.
func (s *Store) GetSeat(ctx context.Context, id uint64) (*model.Seat, error) {
	st, err := s.seats.GetByID(ctx, id)
	if errors.Is(err, ErrSeatNotFound) {
		return nil, notFound("seat", id)
	}
	return st, err
}

// GetPassenger retrieves a passenger by id.
func (s *Store) GetPassenger(ctx context.Context, id uint64) (*model.Passenger, error) {
	p, err := s.passengers.GetByID(ctx, id)
	if errors.Is(err, ErrPassengerNotFound) {
		return nil, notFound("passenger", id)
	}
	return p, err
}

// GetReservation retrieves a reservation by id.
func (s *Store) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if errors.Is(err, ErrReservationNotFound) {
		return nil, notFound("reservation", id)
	}
	return res, err
}

// GetReservationByCode retrieves a reservation by its booking code.
func (s *Store) GetReservationByCode(ctx context.Context, code string) (*model.Reservation, error) {
	res, err := s.reservations.GetByCode(ctx, code)
	if errors.Is(err, ErrReservationNotFound) {
		return nil, notFound("reservation", code)
	}
	return res, err
}

// ListReservations returns reservations matching the filter.
func (s *Store) ListReservations(ctx context.Context, f ports.ReservationFilter) ([]model.Reservation, error) {
	return s.reservations.List(ctx, f)
}

// ListPendingExpiredBefore returns ids of overdue PENDING reservations.
func (s *Store) ListPendingExpiredBefore(ctx context.Context, cutoff time.Time) ([]uint64, error) {
	return s.reservations.ListPendingExpiredBefore(ctx, cutoff)
}

// GetTicketByReservation retrieves the ticket attached to a reservation.
func (s *Store) GetTicketByReservation(ctx context.Context, reservationID uint64) (*model.Ticket, error) {
	t, err := s.tickets.GetByReservation(ctx, reservationID)
	if errors.Is(err, ErrTicketNotFound) {
		return nil, notFound("ticket for reservation", reservationID)
	}
	return t, err
}

// storeTx adapts a live *sql.Tx to ports.ReservationTx.
type storeTx struct {
	store *Store
	tx    *sql.Tx
}

var _ ports.ReservationTx = (*storeTx)(nil)

func (t *storeTx) FlightForUpdate(ctx context.Context, id uint64) (*model.Flight, error) {
	f, err := t.store.flights.GetForUpdateTx(ctx, t.tx, id)
	if errors.Is(err, ErrFlightNotFound) {
		return nil, notFound("flight", id)
	}
	return f, err
}

func (t *storeTx) SeatForUpdate(ctx context.Context, id uint64) (*model.Seat, error) {
	s, err := t.store.seats.GetForUpdateTx(ctx, t.tx, id)
	if errors.Is(err, ErrSeatNotFound) {
		return nil, notFound("seat", id)
	}
	return s, err
}

func (t *storeTx) ReservationForUpdate(ctx context.Context, id uint64) (*model.Reservation, error) {
	r, err := t.store.reservations.GetForUpdateTx(ctx, t.tx, id)
	if errors.Is(err, ErrReservationNotFound) {
		return nil, notFound("reservation", id)
	}
	return r, err
}

func (t *storeTx) SeatHasActiveReservation(ctx context.Context, flightID, seatID uint64) (bool, error) {
	return t.store.reservations.SeatHasActiveTx(ctx, t.tx, flightID, seatID)
}

func (t *storeTx) PassengerHasActiveReservation(ctx context.Context, flightID, passengerID uint64) (bool, error) {
	return t.store.reservations.PassengerHasActiveTx(ctx, t.tx, flightID, passengerID)
}

func (t *storeTx) InsertReservation(ctx context.Context, r *model.Reservation) error {
	err := t.store.reservations.InsertTx(ctx, t.tx, r)
	if errors.Is(err, ErrDuplicate) {
		return fmt.Errorf("reservation code %s: %w", r.Code, model.ErrConflict)
	}
	return err
}

func (t *storeTx) UpdateReservationStatus(ctx context.Context, id uint64, status string) error {
	err := t.store.reservations.UpdateStatusTx(ctx, t.tx, id, status)
	if errors.Is(err, ErrReservationNotFound) {
		return notFound("reservation", id)
	}
	return err
}

func (t *storeTx) UpdateSeatStatus(ctx context.Context, seatID uint64, status string) error {
	err := t.store.seats.UpdateStatusTx(ctx, t.tx, seatID, status)
	if errors.Is(err, ErrSeatNotFound) {
		return notFound("seat", seatID)
	}
	return err
}

func (t *storeTx) TicketByReservation(ctx context.Context, reservationID uint64) (*model.Ticket, error) {
	tk, err := t.store.tickets.GetByReservationTx(ctx, t.tx, reservationID)
	if errors.Is(err, ErrTicketNotFound) {
		return nil, notFound("ticket for reservation", reservationID)
	}
	return tk, err
}

func (t *storeTx) InsertTicket(ctx context.Context, tk *model.Ticket) error {
	err := t.store.tickets.InsertTx(ctx, t.tx, tk)
	if errors.Is(err, ErrDuplicate) {
		return fmt.Errorf("ticket barcode %s: %w", tk.Barcode, model.ErrConflict)
	}
	return err
}

func (t *storeTx) UpdateTicketStatus(ctx context.Context, id uint64, status string) error {
	err := t.store.tickets.UpdateStatusTx(ctx, t.tx, id, status)
	if errors.Is(err, ErrTicketNotFound) {
		return notFound("ticket", id)
	}
	return err
}
