package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/repository"
)

// flightTransitions is the legal flight status machine.  COMPLETED and
// CANCELLED are terminal.
var flightTransitions = map[string][]string{
	model.FlightScheduled: {model.FlightBoarding, model.FlightCancelled},
	model.FlightBoarding:  {model.FlightCompleted, model.FlightCancelled},
}

// CreateFlightInput carries the parameters for scheduling a flight.
type CreateFlightInput struct {
	AircraftID     uint64
	Origin         string
	Destination    string
	DepartureAt    time.Time
	ArrivalAt      time.Time
	BasePriceCents uint32
}

// FlightService schedules flights and drives their status machine.
type FlightService struct {
	flights  *repository.FlightRepo
	aircraft *repository.AircraftRepo
	seats    *repository.SeatRepo
	now      func() time.Time
}

// NewFlightService constructs a FlightService.
func NewFlightService(flights *repository.FlightRepo, aircraft *repository.AircraftRepo, seats *repository.SeatRepo) *FlightService {
	return &FlightService{flights: flights, aircraft: aircraft, seats: seats, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the service clock.  Tests use this to pin time.
func (s *FlightService) WithClock(now func() time.Time) *FlightService {
	s.now = now
	return s
}

// Create schedules a flight.  The aircraft must be ACTIVE with a
// generated seat grid, the departure in the future and before the
// arrival, origin and destination distinct, and the aircraft free of
// other flights on the same UTC day.
func (s *FlightService) Create(ctx context.Context, in CreateFlightInput) (*model.Flight, error) {
	if in.Origin == "" || in.Destination == "" {
		return nil, fmt.Errorf("origin and destination are required: %w", model.ErrValidation)
	}
	if strings.EqualFold(in.Origin, in.Destination) {
		return nil, fmt.Errorf("origin and destination must differ: %w", model.ErrValidation)
	}
	if in.BasePriceCents == 0 {
		return nil, fmt.Errorf("base price must be positive: %w", model.ErrValidation)
	}
	now := s.now()
	if !in.DepartureAt.After(now) {
		return nil, fmt.Errorf("departure must be in the future: %w", model.ErrValidation)
	}
	if !in.ArrivalAt.After(in.DepartureAt) {
		return nil, fmt.Errorf("arrival must be after departure: %w", model.ErrValidation)
	}

	a, err := s.aircraft.GetByID(ctx, in.AircraftID)
	if err != nil {
		if err == repository.ErrAircraftNotFound {
			return nil, fmt.Errorf("aircraft %d: %w", in.AircraftID, model.ErrNotFound)
		}
		return nil, err
	}
	if a.Status != model.AircraftActive {
		return nil, fmt.Errorf("aircraft %d is %s: %w", a.ID, a.Status, model.ErrInvalidState)
	}
	seatCount, err := s.seats.CountByAircraft(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if seatCount == 0 {
		return nil, fmt.Errorf("aircraft %d has no seat grid: %w", a.ID, model.ErrInvalidState)
	}
	busy, err := s.flights.HasFlightOnDay(ctx, a.ID, in.DepartureAt)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, fmt.Errorf("aircraft %d already flies that day: %w", a.ID, model.ErrConflict)
	}

	f := &model.Flight{
		AircraftID:     in.AircraftID,
		Origin:         in.Origin,
		Destination:    in.Destination,
		DepartureAt:    in.DepartureAt.UTC(),
		ArrivalAt:      in.ArrivalAt.UTC(),
		Status:         model.FlightScheduled,
		BasePriceCents: in.BasePriceCents,
	}
	if err := s.flights.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Get retrieves a flight by id.
func (s *FlightService) Get(ctx context.Context, id uint64) (*model.Flight, error) {
	f, err := s.flights.GetByID(ctx, id)
	if err == repository.ErrFlightNotFound {
		return nil, fmt.Errorf("flight %d: %w", id, model.ErrNotFound)
	}
	return f, err
}

// List returns flights matching the optional origin, destination and
// status filters.
func (s *FlightService) List(ctx context.Context, origin, destination, status string) ([]model.Flight, error) {
	return s.flights.List(ctx, origin, destination, status)
}

// Transition moves a flight to a new status, validating the move
// against the status machine.
func (s *FlightService) Transition(ctx context.Context, id uint64, target string) (*model.Flight, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(f.Status, target) {
		return nil, fmt.Errorf("flight %d cannot move %s to %s: %w", id, f.Status, target, model.ErrInvalidState)
	}
	if err := s.flights.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	f.Status = target
	return f, nil
}

// AvailableSeats returns the flight's seats annotated against its
// active reservations: a seat row with no PENDING or CONFIRMED
// reservation and an AVAILABLE status is open for sale.
func (s *FlightService) AvailableSeats(ctx context.Context, flightID uint64) ([]model.Seat, error) {
	f, err := s.Get(ctx, flightID)
	if err != nil {
		return nil, err
	}
	seats, err := s.seats.GetByAircraft(ctx, f.AircraftID)
	if err != nil {
		return nil, err
	}
	open := make([]model.Seat, 0, len(seats))
	for _, seat := range seats {
		if seat.Status == model.SeatAvailable {
			open = append(open, seat)
		}
	}
	return open, nil
}

func transitionAllowed(from, to string) bool {
	for _, t := range flightTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
