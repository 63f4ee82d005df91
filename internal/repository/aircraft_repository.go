package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/airline-reservation/internal/model"
)

// ErrAircraftNotFound is returned when an aircraft lookup yields no rows.
var ErrAircraftNotFound = errors.New("aircraft not found")

// AircraftRepo provides data access to the aircraft table.
type AircraftRepo struct {
	db *sql.DB
}

// NewAircraftRepo constructs an AircraftRepo with the given DB handle.
func NewAircraftRepo(db *sql.DB) *AircraftRepo { return &AircraftRepo{db: db} }

// DB exposes the underlying handle so orchestrating code can open
// transactions spanning aircraft and seats.
func (r *AircraftRepo) DB() *sql.DB { return r.db }

// Create inserts a single aircraft record.  On success the ID is
// populated on the passed struct.
func (r *AircraftRepo) Create(ctx context.Context, a *model.Aircraft) error {
	const q = `INSERT INTO aircraft (model, seat_rows, seat_columns, capacity, status)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Model, a.Rows, a.Columns, a.Capacity, a.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID retrieves an aircraft by its id.
func (r *AircraftRepo) GetByID(ctx context.Context, id uint64) (*model.Aircraft, error) {
	const q = `SELECT id, model, seat_rows, seat_columns, capacity, status, created_at, updated_at
	           FROM aircraft WHERE id = ?`
	var a model.Aircraft
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&a.ID, &a.Model, &a.Rows, &a.Columns, &a.Capacity, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAircraftNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns all aircraft ordered by model then id.  The optional
// status filters to a single operational status when non-empty.
func (r *AircraftRepo) List(ctx context.Context, status string) ([]model.Aircraft, error) {
	q := `SELECT id, model, seat_rows, seat_columns, capacity, status, created_at, updated_at
	      FROM aircraft`
	args := []interface{}{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY model, id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Aircraft
	for rows.Next() {
		var a model.Aircraft
		if err := rows.Scan(&a.ID, &a.Model, &a.Rows, &a.Columns, &a.Capacity, &a.Status,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus writes a new operational status.  Returns
// ErrAircraftNotFound when the id does not exist.
func (r *AircraftRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE aircraft SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAircraftNotFound
	}
	return nil
}
