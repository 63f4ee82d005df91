package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/airline-reservation/internal/model"
)

// ErrFlightNotFound is returned when a flight lookup yields no rows.
var ErrFlightNotFound = errors.New("flight not found")

// FlightRepo provides data access to the flights table.  All timestamps
// are stored and compared in UTC.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo constructs a FlightRepo with the given DB handle.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// DB exposes the underlying handle so orchestrating code can open
// transactions spanning flights, seats and reservations.
func (r *FlightRepo) DB() *sql.DB { return r.db }

const flightColumns = `id, aircraft_id, origin, destination, departure_at, arrival_at, status, base_price_cents, created_at, updated_at`

func scanFlight(row *sql.Row) (*model.Flight, error) {
	var f model.Flight
	err := row.Scan(&f.ID, &f.AircraftID, &f.Origin, &f.Destination, &f.DepartureAt,
		&f.ArrivalAt, &f.Status, &f.BasePriceCents, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

// Create inserts a new flight.  On success the ID is populated.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight) error {
	const q = `INSERT INTO flights (aircraft_id, origin, destination, departure_at, arrival_at, status, base_price_cents)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, f.AircraftID, f.Origin, f.Destination,
		f.DepartureAt.UTC(), f.ArrivalAt.UTC(), f.Status, f.BasePriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// GetByID retrieves a flight by its id.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (*model.Flight, error) {
	return scanFlight(r.db.QueryRowContext(ctx,
		`SELECT `+flightColumns+` FROM flights WHERE id = ?`, id))
}

// List returns flights matching the optional filters, soonest departure
// first.  Empty strings / zero values disable a filter.
func (r *FlightRepo) List(ctx context.Context, origin, destination, status string) ([]model.Flight, error) {
	q := `SELECT ` + flightColumns + ` FROM flights WHERE 1=1`
	args := []interface{}{}
	if origin != "" {
		q += ` AND origin = ?`
		args = append(args, origin)
	}
	if destination != "" {
		q += ` AND destination = ?`
		args = append(args, destination)
	}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY departure_at`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Flight
	for rows.Next() {
		var f model.Flight
		if err := rows.Scan(&f.ID, &f.AircraftID, &f.Origin, &f.Destination, &f.DepartureAt,
			&f.ArrivalAt, &f.Status, &f.BasePriceCents, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus writes a new flight status.  Transition legality is the
// flight service's responsibility.
func (r *FlightRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE flights SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFlightNotFound
	}
	return nil
}

// HasFlightOnDay reports whether the aircraft already has a
// non-cancelled flight departing on the same UTC calendar day.  Used to
// enforce one flight per aircraft per day when scheduling.
func (r *FlightRepo) HasFlightOnDay(ctx context.Context, aircraftID uint64, departure time.Time) (bool, error) {
	day := departure.UTC().Truncate(24 * time.Hour)
	const q = `SELECT COUNT(*) FROM flights
	           WHERE aircraft_id = ? AND status <> ? AND departure_at >= ? AND departure_at < ?`
	var n int
	err := r.db.QueryRowContext(ctx, q, aircraftID, model.FlightCancelled,
		day, day.Add(24*time.Hour)).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountByAircraft returns how many flights (any status) reference the
// aircraft.  Seat regeneration is forbidden once this is non-zero.
func (r *FlightRepo) CountByAircraft(ctx context.Context, aircraftID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM flights WHERE aircraft_id = ?`, aircraftID).Scan(&n)
	return n, err
}

// GetForUpdateTx loads a flight with SELECT ... FOR UPDATE.  The
// reservation protocol locks the flight row before the seat row so all
// writers acquire locks in the same order.
func (r *FlightRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Flight, error) {
	var f model.Flight
	err := tx.QueryRowContext(ctx,
		`SELECT `+flightColumns+` FROM flights WHERE id = ? FOR UPDATE`, id).
		Scan(&f.ID, &f.AircraftID, &f.Origin, &f.Destination, &f.DepartureAt,
			&f.ArrivalAt, &f.Status, &f.BasePriceCents, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}
