package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/repository"
)

// TicketService handles gate-side ticket operations after issuance.
// Issuance itself happens inside reservation confirmation.
type TicketService struct {
	tickets      *repository.TicketRepo
	reservations *repository.ReservationRepo
}

// NewTicketService constructs a TicketService.
func NewTicketService(tickets *repository.TicketRepo, reservations *repository.ReservationRepo) *TicketService {
	return &TicketService{tickets: tickets, reservations: reservations}
}

// Get retrieves a ticket by id.
func (s *TicketService) Get(ctx context.Context, id uint64) (*model.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, id)
	if err == repository.ErrTicketNotFound {
		return nil, fmt.Errorf("ticket %d: %w", id, model.ErrNotFound)
	}
	return t, err
}

// GetByBarcode retrieves a ticket scanned at the gate.
func (s *TicketService) GetByBarcode(ctx context.Context, barcode string) (*model.Ticket, error) {
	t, err := s.tickets.GetByBarcode(ctx, strings.ToUpper(strings.TrimSpace(barcode)))
	if err == repository.ErrTicketNotFound {
		return nil, fmt.Errorf("ticket %q: %w", barcode, model.ErrNotFound)
	}
	return t, err
}

// MarkUsed records a boarding.  Only ISSUED tickets whose reservation
// is still CONFIRMED can board.
func (s *TicketService) MarkUsed(ctx context.Context, id uint64) (*model.Ticket, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.reservations.GetByID(ctx, t.ReservationID)
	if err != nil {
		return nil, err
	}
	if res.Status != model.ReservationConfirmed {
		return nil, fmt.Errorf("reservation %s is %s: %w", res.Code, res.Status, model.ErrInvalidState)
	}
	return s.mark(ctx, id, model.TicketUsed)
}

// MarkLost voids a ticket reported lost so the barcode cannot board.
func (s *TicketService) MarkLost(ctx context.Context, id uint64) (*model.Ticket, error) {
	return s.mark(ctx, id, model.TicketLost)
}

func (s *TicketService) mark(ctx context.Context, id uint64, status string) (*model.Ticket, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != model.TicketIssued {
		return nil, fmt.Errorf("ticket %s is %s: %w", t.Barcode, t.Status, model.ErrInvalidState)
	}
	if err := s.tickets.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	t.Status = status
	return t, nil
}

// AssignGate sets the boarding gate and time on an issued ticket.
func (s *TicketService) AssignGate(ctx context.Context, id uint64, gate string, boardingAt *time.Time) (*model.Ticket, error) {
	if gate == "" {
		return nil, fmt.Errorf("gate is required: %w", model.ErrValidation)
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != model.TicketIssued {
		return nil, fmt.Errorf("ticket %s is %s: %w", t.Barcode, t.Status, model.ErrInvalidState)
	}
	if err := s.tickets.AssignGate(ctx, id, gate, boardingAt); err != nil {
		return nil, err
	}
	t.Gate = &gate
	t.BoardingAt = boardingAt
	return t, nil
}
