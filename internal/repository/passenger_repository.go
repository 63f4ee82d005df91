package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/airline-reservation/internal/model"
)

// ErrPassengerNotFound is returned when a passenger lookup yields no rows.
var ErrPassengerNotFound = errors.New("passenger not found")

// PassengerRepo provides data access to the passengers table.
type PassengerRepo struct {
	db *sql.DB
}

// NewPassengerRepo constructs a PassengerRepo with the given DB handle.
func NewPassengerRepo(db *sql.DB) *PassengerRepo { return &PassengerRepo{db: db} }

const passengerColumns = `id, first_name, last_name, document_type, document_number, email, phone, birth_date, created_at, updated_at`

func scanPassenger(scan func(dest ...interface{}) error) (*model.Passenger, error) {
	var p model.Passenger
	var email, phone sql.NullString
	var birth sql.NullTime
	err := scan(&p.ID, &p.FirstName, &p.LastName, &p.DocumentType, &p.DocumentNumber,
		&email, &phone, &birth, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if email.Valid {
		v := email.String
		p.Email = &v
	}
	if phone.Valid {
		v := phone.String
		p.Phone = &v
	}
	if birth.Valid {
		v := birth.Time
		p.BirthDate = &v
	}
	return &p, nil
}

// Create inserts a passenger.  The (document_type, document_number)
// pair is unique; violations are reported as ErrDuplicate.
func (r *PassengerRepo) Create(ctx context.Context, p *model.Passenger) error {
	const q = `INSERT INTO passengers (first_name, last_name, document_type, document_number, email, phone, birth_date)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.FirstName, p.LastName, p.DocumentType,
		p.DocumentNumber, p.Email, p.Phone, p.BirthDate)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID retrieves a passenger by its id.
func (r *PassengerRepo) GetByID(ctx context.Context, id uint64) (*model.Passenger, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+passengerColumns+` FROM passengers WHERE id = ?`, id)
	p, err := scanPassenger(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPassengerNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns all passengers ordered by last then first name.
func (r *PassengerRepo) List(ctx context.Context) ([]model.Passenger, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+passengerColumns+` FROM passengers ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Passenger
	for rows.Next() {
		p, err := scanPassenger(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites the mutable passenger fields.
func (r *PassengerRepo) Update(ctx context.Context, p *model.Passenger) error {
	const q = `UPDATE passengers
	           SET first_name = ?, last_name = ?, document_type = ?, document_number = ?,
	               email = ?, phone = ?, birth_date = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.FirstName, p.LastName, p.DocumentType,
		p.DocumentNumber, p.Email, p.Phone, p.BirthDate, p.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPassengerNotFound
	}
	return nil
}

// Delete removes a passenger.  The service layer blocks deletion while
// the passenger has a CONFIRMED reservation.
func (r *PassengerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM passengers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPassengerNotFound
	}
	return nil
}

// CountReservationsByStatus returns how many reservations with the
// given status reference the passenger.
func (r *PassengerRepo) CountReservationsByStatus(ctx context.Context, passengerID uint64, status string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE passenger_id = ? AND status = ?`,
		passengerID, status).Scan(&n)
	return n, err
}
