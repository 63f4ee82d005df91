package repository

import (
	"context"
	"database/sql"
)

// ReportRepo runs the read-only aggregate queries behind the statistics
// endpoints.  Nothing here mutates state, so no transactions are used.
type ReportRepo struct {
	db *sql.DB
}

// NewReportRepo constructs a ReportRepo with the given DB handle.
func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

// CountRows returns COUNT(*) for one of the known tables.  The table
// name is always a compile-time constant at call sites, never user
// input.
func (r *ReportRepo) CountRows(ctx context.Context, table string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n)
	return n, err
}

// CountByStatus returns a status to count map for the given table.
func (r *ReportRepo) CountByStatus(ctx context.Context, table string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM `+table+` GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		result[status] = n
	}
	return result, rows.Err()
}

// ConfirmedRevenueCents sums the fares of CONFIRMED and COMPLETED
// reservations.
func (r *ReportRepo) ConfirmedRevenueCents(ctx context.Context) (uint64, error) {
	var total sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT SUM(price_cents) FROM reservations WHERE status IN ('CONFIRMED', 'COMPLETED')`).
		Scan(&total)
	if err != nil {
		return 0, err
	}
	if !total.Valid {
		return 0, nil
	}
	return uint64(total.Int64), nil
}

// FlightOccupancy holds per-flight seat usage.
type FlightOccupancy struct {
	FlightID    uint64
	Origin      string
	Destination string
	Capacity    int
	Active      int // PENDING plus CONFIRMED reservations
}

// Occupancy returns active reservation counts against capacity for
// every non-cancelled flight.
func (r *ReportRepo) Occupancy(ctx context.Context) ([]FlightOccupancy, error) {
	const q = `SELECT f.id, f.origin, f.destination, a.capacity,
	                  (SELECT COUNT(*) FROM reservations res
	                   WHERE res.flight_id = f.id AND res.status IN ('PENDING', 'CONFIRMED'))
	           FROM flights f
	           JOIN aircraft a ON a.id = f.aircraft_id
	           WHERE f.status <> 'CANCELLED'
	           ORDER BY f.departure_at`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []FlightOccupancy
	for rows.Next() {
		var o FlightOccupancy
		if err := rows.Scan(&o.FlightID, &o.Origin, &o.Destination, &o.Capacity, &o.Active); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}
