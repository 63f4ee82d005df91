package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/repository"
)

// Seat grid limits.  Columns map to letters A..J.
const (
	maxSeatRows    = 100
	maxSeatColumns = 10
)

// Cabin class bands by row: the first two rows are FIRST, rows three
// through six PREMIUM, everything behind is ECONOMY.
const (
	firstClassLastRow   = 2
	premiumClassLastRow = 6
)

// CreateAircraftInput carries the parameters for registering a plane.
type CreateAircraftInput struct {
	Model   string
	Rows    uint32
	Columns uint32
}

// AircraftService manages the fleet and its seat grids.  Seat layouts
// are generated once per aircraft and become immutable as soon as any
// flight references the aircraft.
type AircraftService struct {
	aircraft *repository.AircraftRepo
	seats    *repository.SeatRepo
	flights  *repository.FlightRepo
}

// NewAircraftService constructs an AircraftService.
func NewAircraftService(aircraft *repository.AircraftRepo, seats *repository.SeatRepo, flights *repository.FlightRepo) *AircraftService {
	return &AircraftService{aircraft: aircraft, seats: seats, flights: flights}
}

// Create registers an aircraft.  Capacity is derived from the grid; the
// seat rows themselves are generated by a separate explicit call.
func (s *AircraftService) Create(ctx context.Context, in CreateAircraftInput) (*model.Aircraft, error) {
	if in.Model == "" {
		return nil, fmt.Errorf("model is required: %w", model.ErrValidation)
	}
	if in.Rows == 0 || in.Rows > maxSeatRows {
		return nil, fmt.Errorf("rows must be between 1 and %d: %w", maxSeatRows, model.ErrValidation)
	}
	if in.Columns == 0 || in.Columns > maxSeatColumns {
		return nil, fmt.Errorf("columns must be between 1 and %d: %w", maxSeatColumns, model.ErrValidation)
	}
	a := &model.Aircraft{
		Model:    in.Model,
		Rows:     in.Rows,
		Columns:  in.Columns,
		Capacity: in.Rows * in.Columns,
		Status:   model.AircraftActive,
	}
	if err := s.aircraft.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Get retrieves an aircraft by id.
func (s *AircraftService) Get(ctx context.Context, id uint64) (*model.Aircraft, error) {
	a, err := s.aircraft.GetByID(ctx, id)
	if err == repository.ErrAircraftNotFound {
		return nil, fmt.Errorf("aircraft %d: %w", id, model.ErrNotFound)
	}
	return a, err
}

// List returns aircraft, optionally filtered by operational status.
func (s *AircraftService) List(ctx context.Context, status string) ([]model.Aircraft, error) {
	return s.aircraft.List(ctx, status)
}

// SetStatus changes an aircraft's operational status.
func (s *AircraftService) SetStatus(ctx context.Context, id uint64, status string) error {
	switch status {
	case model.AircraftActive, model.AircraftMaintenance, model.AircraftRetired:
	default:
		return fmt.Errorf("unknown aircraft status %q: %w", status, model.ErrValidation)
	}
	err := s.aircraft.UpdateStatus(ctx, id, status)
	if err == repository.ErrAircraftNotFound {
		return fmt.Errorf("aircraft %d: %w", id, model.ErrNotFound)
	}
	return err
}

// GenerateSeats builds the full seat grid for an aircraft.  Existing
// seats are replaced only while no flight has ever referenced the
// aircraft; once a flight exists the layout is frozen and regeneration
// is refused outright.
func (s *AircraftService) GenerateSeats(ctx context.Context, aircraftID uint64) ([]model.Seat, error) {
	a, err := s.Get(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	flights, err := s.flights.CountByAircraft(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	if flights > 0 {
		return nil, fmt.Errorf("aircraft %d has flights; seat layout is frozen: %w", aircraftID, model.ErrInvalidState)
	}
	existing, err := s.seats.CountByAircraft(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		if err := s.seats.DeleteByAircraft(ctx, aircraftID); err != nil {
			return nil, err
		}
	}

	seats := BuildSeatGrid(a)
	if err := s.seats.CreateBulk(ctx, seats); err != nil {
		return nil, err
	}
	return s.seats.GetByAircraft(ctx, aircraftID)
}

// Seats returns the aircraft's seats in cabin walk order.
func (s *AircraftService) Seats(ctx context.Context, aircraftID uint64) ([]model.Seat, error) {
	if _, err := s.Get(ctx, aircraftID); err != nil {
		return nil, err
	}
	return s.seats.GetByAircraft(ctx, aircraftID)
}

// SetSeatMaintenance toggles a seat in or out of MAINTENANCE.  Seats
// with an active reservation (HELD or OCCUPIED) cannot be taken out of
// service from here.
func (s *AircraftService) SetSeatMaintenance(ctx context.Context, seatID uint64, underMaintenance bool) (*model.Seat, error) {
	seat, err := s.seats.GetByID(ctx, seatID)
	if err != nil {
		if err == repository.ErrSeatNotFound {
			return nil, fmt.Errorf("seat %d: %w", seatID, model.ErrNotFound)
		}
		return nil, err
	}
	if underMaintenance {
		if seat.Status != model.SeatAvailable {
			return nil, fmt.Errorf("seat %s is %s: %w", seat.Number, seat.Status, model.ErrInvalidState)
		}
		seat.Status = model.SeatMaintenance
	} else {
		if seat.Status != model.SeatMaintenance {
			return nil, fmt.Errorf("seat %s is %s: %w", seat.Number, seat.Status, model.ErrInvalidState)
		}
		seat.Status = model.SeatAvailable
	}
	if err := s.seats.SetStatus(ctx, seatID, seat.Status); err != nil {
		return nil, err
	}
	return seat, nil
}

// BuildSeatGrid expands an aircraft's grid definition into seat rows.
// Column letters run A, B, C, ... and the class follows the row bands.
func BuildSeatGrid(a *model.Aircraft) []model.Seat {
	seats := make([]model.Seat, 0, a.Rows*a.Columns)
	for row := uint32(1); row <= a.Rows; row++ {
		for col := uint32(0); col < a.Columns; col++ {
			letter := string(rune('A' + col))
			seats = append(seats, model.Seat{
				AircraftID: a.ID,
				Number:     fmt.Sprintf("%d%s", row, letter),
				Row:        row,
				Column:     letter,
				Class:      ClassForRow(row),
				Status:     model.SeatAvailable,
			})
		}
	}
	return seats
}

// ClassForRow maps a row number to its cabin class band.
func ClassForRow(row uint32) string {
	switch {
	case row <= firstClassLastRow:
		return model.SeatClassFirst
	case row <= premiumClassLastRow:
		return model.SeatClassPremium
	default:
		return model.SeatClassEconomy
	}
}
