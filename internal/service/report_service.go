package service

import (
	"context"

	"github.com/iliyamo/airline-reservation/internal/repository"
)

// Overview aggregates the headline numbers for the operations
// dashboard.
type Overview struct {
	Aircraft             int                          `json:"aircraft"`
	Flights              int                          `json:"flights"`
	Passengers           int                          `json:"passengers"`
	Reservations         int                          `json:"reservations"`
	Tickets              int                          `json:"tickets"`
	ReservationsByStatus map[string]int               `json:"reservations_by_status"`
	FlightsByStatus      map[string]int               `json:"flights_by_status"`
	RevenueCents         uint64                       `json:"revenue_cents"`
	Occupancy            []repository.FlightOccupancy `json:"occupancy"`
}

// ReportService produces read-only statistics.
type ReportService struct {
	reports *repository.ReportRepo
}

// NewReportService constructs a ReportService.
func NewReportService(reports *repository.ReportRepo) *ReportService {
	return &ReportService{reports: reports}
}

// Overview gathers entity totals, status breakdowns, confirmed revenue
// and per-flight occupancy in one pass.
func (s *ReportService) Overview(ctx context.Context) (*Overview, error) {
	var o Overview
	var err error

	counts := []struct {
		table string
		dst   *int
	}{
		{"aircraft", &o.Aircraft},
		{"flights", &o.Flights},
		{"passengers", &o.Passengers},
		{"reservations", &o.Reservations},
		{"tickets", &o.Tickets},
	}
	for _, c := range counts {
		if *c.dst, err = s.reports.CountRows(ctx, c.table); err != nil {
			return nil, err
		}
	}
	if o.ReservationsByStatus, err = s.reports.CountByStatus(ctx, "reservations"); err != nil {
		return nil, err
	}
	if o.FlightsByStatus, err = s.reports.CountByStatus(ctx, "flights"); err != nil {
		return nil, err
	}
	if o.RevenueCents, err = s.reports.ConfirmedRevenueCents(ctx); err != nil {
		return nil, err
	}
	if o.Occupancy, err = s.reports.Occupancy(ctx); err != nil {
		return nil, err
	}
	return &o, nil
}
