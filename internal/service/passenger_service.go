package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/repository"
)

// PassengerInput carries the writable passenger fields.
type PassengerInput struct {
	FirstName      string
	LastName       string
	DocumentType   string
	DocumentNumber string
	Email          *string
	Phone          *string
	BirthDate      *time.Time
}

// PassengerService manages passenger records.
type PassengerService struct {
	passengers *repository.PassengerRepo
}

// NewPassengerService constructs a PassengerService.
func NewPassengerService(passengers *repository.PassengerRepo) *PassengerService {
	return &PassengerService{passengers: passengers}
}

func validatePassenger(in PassengerInput) error {
	if in.FirstName == "" || in.LastName == "" {
		return fmt.Errorf("first and last name are required: %w", model.ErrValidation)
	}
	if in.DocumentType == "" || in.DocumentNumber == "" {
		return fmt.Errorf("document type and number are required: %w", model.ErrValidation)
	}
	return nil
}

// Create registers a passenger.  The document pair must be unique.
func (s *PassengerService) Create(ctx context.Context, in PassengerInput) (*model.Passenger, error) {
	if err := validatePassenger(in); err != nil {
		return nil, err
	}
	p := &model.Passenger{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
		Email:          in.Email,
		Phone:          in.Phone,
		BirthDate:      in.BirthDate,
	}
	if err := s.passengers.Create(ctx, p); err != nil {
		if err == repository.ErrDuplicate {
			return nil, fmt.Errorf("document %s %s already registered: %w", in.DocumentType, in.DocumentNumber, model.ErrConflict)
		}
		return nil, err
	}
	return p, nil
}

// Get retrieves a passenger by id.
func (s *PassengerService) Get(ctx context.Context, id uint64) (*model.Passenger, error) {
	p, err := s.passengers.GetByID(ctx, id)
	if err == repository.ErrPassengerNotFound {
		return nil, fmt.Errorf("passenger %d: %w", id, model.ErrNotFound)
	}
	return p, err
}

// List returns all passengers.
func (s *PassengerService) List(ctx context.Context) ([]model.Passenger, error) {
	return s.passengers.List(ctx)
}

// Update rewrites a passenger's mutable fields.
func (s *PassengerService) Update(ctx context.Context, id uint64, in PassengerInput) (*model.Passenger, error) {
	if err := validatePassenger(in); err != nil {
		return nil, err
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.DocumentType = in.DocumentType
	p.DocumentNumber = in.DocumentNumber
	p.Email = in.Email
	p.Phone = in.Phone
	p.BirthDate = in.BirthDate
	if err := s.passengers.Update(ctx, p); err != nil {
		if err == repository.ErrDuplicate {
			return nil, fmt.Errorf("document %s %s already registered: %w", in.DocumentType, in.DocumentNumber, model.ErrConflict)
		}
		if err == repository.ErrPassengerNotFound {
			return nil, fmt.Errorf("passenger %d: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a passenger.  Deletion is refused while the passenger
// holds any CONFIRMED reservation.
func (s *PassengerService) Delete(ctx context.Context, id uint64) error {
	confirmed, err := s.passengers.CountReservationsByStatus(ctx, id, model.ReservationConfirmed)
	if err != nil {
		return err
	}
	if confirmed > 0 {
		return fmt.Errorf("passenger %d has %d confirmed reservations: %w", id, confirmed, model.ErrInvalidState)
	}
	err = s.passengers.Delete(ctx, id)
	if err == repository.ErrPassengerNotFound {
		return fmt.Errorf("passenger %d: %w", id, model.ErrNotFound)
	}
	return err
}
