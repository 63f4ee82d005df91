package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/service/ports"
)

// ErrReservationNotFound is returned when a reservation lookup yields
// no rows.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepo provides data access to the reservations table.  All
// writes that participate in the seat protocol are Tx methods; the
// caller owns the transaction and the lock order (flight, then seat,
// then reservation).
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo constructs a ReservationRepo with the given DB handle.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, code, flight_id, passenger_id, seat_id, status, price_cents, notes, expires_at, created_at, updated_at`

func scanReservation(scan func(dest ...interface{}) error) (*model.Reservation, error) {
	var res model.Reservation
	var notes sql.NullString
	err := scan(&res.ID, &res.Code, &res.FlightID, &res.PassengerID, &res.SeatID,
		&res.Status, &res.PriceCents, &notes, &res.ExpiresAt, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		v := notes.String
		res.Notes = &v
	}
	return &res, nil
}

// InsertTx persists a new reservation within the provided transaction
// and populates its generated ID and timestamps.  A duplicate booking
// code violates the unique index and is reported as ErrDuplicate so the
// caller can regenerate the code and retry.
func (r *ReservationRepo) InsertTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (code, flight_id, passenger_id, seat_id, status, price_cents, notes, expires_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.Code, res.FlightID, res.PassengerID,
		res.SeatID, res.Status, res.PriceCents, res.Notes, res.ExpiresAt.UTC())
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicate
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the row to populate DB-assigned timestamps.
	row := tx.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, res.ID)
	full, err := scanReservation(row.Scan)
	if err != nil {
		return err
	}
	*res = *full
	return nil
}

// GetByID retrieves a reservation by its id.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	res, err := scanReservation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

// GetByCode retrieves a reservation by its booking code.
func (r *ReservationRepo) GetByCode(ctx context.Context, code string) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE code = ?`, code)
	res, err := scanReservation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

// List returns reservations matching the filter, newest first.
func (r *ReservationRepo) List(ctx context.Context, f ports.ReservationFilter) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	args := []interface{}{}
	if f.FlightID != 0 {
		q += ` AND flight_id = ?`
		args = append(args, f.FlightID)
	}
	if f.PassengerID != 0 {
		q += ` AND passenger_id = ?`
		args = append(args, f.PassengerID)
	}
	if f.Status != "" {
		q += ` AND status = ?`
		args = append(args, f.Status)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListPendingExpiredBefore returns ids of PENDING reservations whose
// deadline passed at or before the cutoff, oldest deadline first.  The
// sweeper re-checks each one under a row lock before expiring it.
func (r *ReservationRepo) ListPendingExpiredBefore(ctx context.Context, cutoff time.Time) ([]uint64, error) {
	const q = `SELECT id FROM reservations
	           WHERE status = ? AND expires_at <= ?
	           ORDER BY expires_at`
	rows, err := r.db.QueryContext(ctx, q, model.ReservationPending, cutoff.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetForUpdateTx loads a reservation with SELECT ... FOR UPDATE so that
// confirm, cancel and sweep serialize on the same row.
func (r *ReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ? FOR UPDATE`, id)
	res, err := scanReservation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

// UpdateStatusTx writes a reservation status within the provided
// transaction.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	const q = `UPDATE reservations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// SeatHasActiveTx reports whether any PENDING or CONFIRMED reservation
// references the (flight, seat) pair.  Runs inside the caller's
// transaction after the seat row lock has been taken, which closes the
// check-then-act race on seat availability.
func (r *ReservationRepo) SeatHasActiveTx(ctx context.Context, tx *sql.Tx, flightID, seatID uint64) (bool, error) {
	const q = `SELECT COUNT(*) FROM reservations
	           WHERE flight_id = ? AND seat_id = ? AND status IN (?, ?)`
	var n int
	err := tx.QueryRowContext(ctx, q, flightID, seatID,
		model.ReservationPending, model.ReservationConfirmed).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// PassengerHasActiveTx reports whether the passenger already holds an
// active reservation on the flight, regardless of seat.
func (r *ReservationRepo) PassengerHasActiveTx(ctx context.Context, tx *sql.Tx, flightID, passengerID uint64) (bool, error) {
	const q = `SELECT COUNT(*) FROM reservations
	           WHERE flight_id = ? AND passenger_id = ? AND status IN (?, ?)`
	var n int
	err := tx.QueryRowContext(ctx, q, flightID, passengerID,
		model.ReservationPending, model.ReservationConfirmed).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
