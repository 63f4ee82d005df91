package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/service/ports"
)

// fakeStore is an in-memory ports.ReservationStore.  A single mutex
// serializes transactions, which models the row-lock exclusion the
// MySQL implementation gets from SELECT ... FOR UPDATE; writes are
// rolled back by snapshot when the transaction function errors.
type fakeStore struct {
	mu           sync.Mutex
	flights      map[uint64]model.Flight
	seats        map[uint64]model.Seat
	passengers   map[uint64]model.Passenger
	reservations map[uint64]model.Reservation
	tickets      map[uint64]model.Ticket
	nextRes      uint64
	nextTicket   uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		flights:      map[uint64]model.Flight{},
		seats:        map[uint64]model.Seat{},
		passengers:   map[uint64]model.Passenger{},
		reservations: map[uint64]model.Reservation{},
		tickets:      map[uint64]model.Ticket{},
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *fakeStore) InTx(ctx context.Context, fn func(tx ports.ReservationTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seats := copyMap(s.seats)
	reservations := copyMap(s.reservations)
	tickets := copyMap(s.tickets)
	nextRes, nextTicket := s.nextRes, s.nextTicket

	if err := fn(&fakeTx{s: s}); err != nil {
		s.seats = seats
		s.reservations = reservations
		s.tickets = tickets
		s.nextRes, s.nextTicket = nextRes, nextTicket
		return err
	}
	return nil
}

func (s *fakeStore) GetFlight(ctx context.Context, id uint64) (*model.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flights[id]
	if !ok {
		return nil, fmt.Errorf("flight %d: %w", id, model.ErrNotFound)
	}
	return &f, nil
}

func (s *fakeStore) GetSeat(ctx context.Context, id uint64) (*model.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.seats[id]
	if !ok {
		return nil, fmt.Errorf("seat %d: %w", id, model.ErrNotFound)
	}
	return &st, nil
}

func (s *fakeStore) GetPassenger(ctx context.Context, id uint64) (*model.Passenger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.passengers[id]
	if !ok {
		return nil, fmt.Errorf("passenger %d: %w", id, model.ErrNotFound)
	}
	return &p, nil
}

func (s *fakeStore) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return nil, fmt.Errorf("reservation %d: %w", id, model.ErrNotFound)
	}
	return &r, nil
}

func (s *fakeStore) GetReservationByCode(ctx context.Context, code string) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reservations {
		if r.Code == code {
			r := r
			return &r, nil
		}
	}
	return nil, fmt.Errorf("reservation %s: %w", code, model.ErrNotFound)
}

func (s *fakeStore) ListReservations(ctx context.Context, f ports.ReservationFilter) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Reservation
	for _, r := range s.reservations {
		if f.FlightID != 0 && r.FlightID != f.FlightID {
			continue
		}
		if f.PassengerID != 0 && r.PassengerID != f.PassengerID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *fakeStore) ListPendingExpiredBefore(ctx context.Context, cutoff time.Time) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uint64
	for id, r := range s.reservations {
		if r.Status == model.ReservationPending && !r.ExpiresAt.After(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *fakeStore) GetTicketByReservation(ctx context.Context, reservationID uint64) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticketByReservation(reservationID)
}

func (s *fakeStore) ticketByReservation(reservationID uint64) (*model.Ticket, error) {
	for _, t := range s.tickets {
		if t.ReservationID == reservationID {
			t := t
			return &t, nil
		}
	}
	return nil, fmt.Errorf("ticket for reservation %d: %w", reservationID, model.ErrNotFound)
}

// fakeTx operates on the store under the mutex held by InTx.
type fakeTx struct {
	s *fakeStore
}

func (t *fakeTx) FlightForUpdate(ctx context.Context, id uint64) (*model.Flight, error) {
	f, ok := t.s.flights[id]
	if !ok {
		return nil, fmt.Errorf("flight %d: %w", id, model.ErrNotFound)
	}
	return &f, nil
}

func (t *fakeTx) SeatForUpdate(ctx context.Context, id uint64) (*model.Seat, error) {
	st, ok := t.s.seats[id]
	if !ok {
		return nil, fmt.Errorf("seat %d: %w", id, model.ErrNotFound)
	}
	return &st, nil
}

func (t *fakeTx) ReservationForUpdate(ctx context.Context, id uint64) (*model.Reservation, error) {
	r, ok := t.s.reservations[id]
	if !ok {
		return nil, fmt.Errorf("reservation %d: %w", id, model.ErrNotFound)
	}
	return &r, nil
}

func (t *fakeTx) SeatHasActiveReservation(ctx context.Context, flightID, seatID uint64) (bool, error) {
	for _, r := range t.s.reservations {
		if r.FlightID == flightID && r.SeatID == seatID && r.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTx) PassengerHasActiveReservation(ctx context.Context, flightID, passengerID uint64) (bool, error) {
	for _, r := range t.s.reservations {
		if r.FlightID == flightID && r.PassengerID == passengerID && r.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTx) InsertReservation(ctx context.Context, r *model.Reservation) error {
	for _, existing := range t.s.reservations {
		if existing.Code == r.Code {
			return fmt.Errorf("reservation code %s: %w", r.Code, model.ErrConflict)
		}
	}
	t.s.nextRes++
	r.ID = t.s.nextRes
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	t.s.reservations[r.ID] = *r
	return nil
}

func (t *fakeTx) UpdateReservationStatus(ctx context.Context, id uint64, status string) error {
	r, ok := t.s.reservations[id]
	if !ok {
		return fmt.Errorf("reservation %d: %w", id, model.ErrNotFound)
	}
	r.Status = status
	t.s.reservations[id] = r
	return nil
}

func (t *fakeTx) UpdateSeatStatus(ctx context.Context, seatID uint64, status string) error {
	st, ok := t.s.seats[seatID]
	if !ok {
		return fmt.Errorf("seat %d: %w", seatID, model.ErrNotFound)
	}
	st.Status = status
	t.s.seats[seatID] = st
	return nil
}

func (t *fakeTx) TicketByReservation(ctx context.Context, reservationID uint64) (*model.Ticket, error) {
	return t.s.ticketByReservation(reservationID)
}

func (t *fakeTx) InsertTicket(ctx context.Context, tk *model.Ticket) error {
	for _, existing := range t.s.tickets {
		if existing.Barcode == tk.Barcode || existing.ReservationID == tk.ReservationID {
			return fmt.Errorf("ticket barcode %s: %w", tk.Barcode, model.ErrConflict)
		}
	}
	t.s.nextTicket++
	tk.ID = t.s.nextTicket
	tk.IssuedAt = time.Now().UTC()
	t.s.tickets[tk.ID] = *tk
	return nil
}

func (t *fakeTx) UpdateTicketStatus(ctx context.Context, id uint64, status string) error {
	tk, ok := t.s.tickets[id]
	if !ok {
		return fmt.Errorf("ticket %d: %w", id, model.ErrNotFound)
	}
	tk.Status = status
	t.s.tickets[id] = tk
	return nil
}
