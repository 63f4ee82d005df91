package model

import "time"

// Flight statuses.  Legal transitions are SCHEDULED→{BOARDING,CANCELLED}
// and BOARDING→{COMPLETED,CANCELLED}; COMPLETED and CANCELLED are
// terminal.  New reservations are accepted only while SCHEDULED and the
// departure is still in the future.
const (
	FlightScheduled = "SCHEDULED"
	FlightBoarding  = "BOARDING"
	FlightCompleted = "COMPLETED"
	FlightCancelled = "CANCELLED"
)

// Flight describes a scheduled trip flown by a specific aircraft.
// BasePriceCents is the economy fare; premium and first class fares are
// derived from it via class multipliers.  All timestamps are UTC.
//
// Fields:
//  ID             – primary key identifier.
//  AircraftID     – aircraft assigned to this flight.
//  Origin         – departure city.
//  Destination    – arrival city.
//  DepartureAt    – scheduled departure time.
//  ArrivalAt      – scheduled arrival time (always after departure).
//  Status         – current status (SCHEDULED, BOARDING, COMPLETED, CANCELLED).
//  BasePriceCents – economy fare in cents.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Flight struct {
	ID             uint64    // flights.id
	AircraftID     uint64    // flights.aircraft_id
	Origin         string    // flights.origin
	Destination    string    // flights.destination
	DepartureAt    time.Time // flights.departure_at
	ArrivalAt      time.Time // flights.arrival_at
	Status         string    // flights.status
	BasePriceCents uint32    // flights.base_price_cents
	CreatedAt      time.Time // flights.created_at
	UpdatedAt      time.Time // flights.updated_at
}

// Duration returns the scheduled flight time.
func (f *Flight) Duration() time.Duration {
	return f.ArrivalAt.Sub(f.DepartureAt)
}

// IsBookable reports whether new reservations may be created for this
// flight at the given instant.
func (f *Flight) IsBookable(now time.Time) bool {
	return f.Status == FlightScheduled && f.DepartureAt.After(now)
}

// PriceForClass derives the fare for a cabin class from the economy
// base price.  PREMIUM costs 1.5x, FIRST 2x; unknown classes fall back
// to the base price.
func (f *Flight) PriceForClass(class string) uint32 {
	switch class {
	case SeatClassPremium:
		return f.BasePriceCents + f.BasePriceCents/2
	case SeatClassFirst:
		return f.BasePriceCents * 2
	default:
		return f.BasePriceCents
	}
}
