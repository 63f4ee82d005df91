package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/airline-reservation/internal/model"
)

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// SeatRepo provides data access to the seats table.  Status writes that
// participate in the reservation protocol happen through the Tx
// variants so they share the caller's transaction and row locks.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// CreateBulk inserts multiple seats in a single statement.  Used by
// seat generation; timestamps default in the DB.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (aircraft_id, number, seat_row, seat_column, class, status) VALUES `
	args := make([]interface{}, 0, len(seats)*6)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, s.AircraftID, s.Number, s.Row, s.Column, s.Class, s.Status)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, aircraft_id, number, seat_row, seat_column, class, status, created_at, updated_at
	           FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.AircraftID, &s.Number, &s.Row, &s.Column, &s.Class, &s.Status,
			&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByAircraft retrieves all seats of an aircraft ordered by row then
// column, which yields the natural cabin walk order.
func (r *SeatRepo) GetByAircraft(ctx context.Context, aircraftID uint64) ([]model.Seat, error) {
	const q = `SELECT id, aircraft_id, number, seat_row, seat_column, class, status, created_at, updated_at
	           FROM seats
	           WHERE aircraft_id = ?
	           ORDER BY seat_row, seat_column`
	rows, err := r.db.QueryContext(ctx, q, aircraftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.AircraftID, &s.Number, &s.Row, &s.Column, &s.Class,
			&s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountByAircraft returns how many seats exist for an aircraft.
func (r *SeatRepo) CountByAircraft(ctx context.Context, aircraftID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seats WHERE aircraft_id = ?`, aircraftID).Scan(&n)
	return n, err
}

// DeleteByAircraft removes all seat rows for an aircraft.  Callers must
// have verified that no flight exists for the aircraft; deleting seats
// that reservations still reference would orphan them.
func (r *SeatRepo) DeleteByAircraft(ctx context.Context, aircraftID uint64) error {
	const q = `DELETE FROM seats WHERE aircraft_id = ?`
	_, err := r.db.ExecContext(ctx, q, aircraftID)
	return err
}

// SetStatus writes a seat status outside any reservation transaction.
// Only maintenance toggling goes through here; the reservation protocol
// uses UpdateStatusTx under a row lock.
func (r *SeatRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE seats SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// GetForUpdateTx loads a seat with SELECT ... FOR UPDATE, taking an
// exclusive row lock for the lifetime of the transaction.  Every
// status recheck in the reservation protocol starts here.
func (r *SeatRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Seat, error) {
	const q = `SELECT id, aircraft_id, number, seat_row, seat_column, class, status, created_at, updated_at
	           FROM seats WHERE id = ? FOR UPDATE`
	var s model.Seat
	err := tx.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.AircraftID, &s.Number, &s.Row, &s.Column, &s.Class, &s.Status,
			&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdateStatusTx writes a seat status within the provided transaction.
// The caller must already hold the row lock via GetForUpdateTx.
func (r *SeatRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	const q = `UPDATE seats SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}
