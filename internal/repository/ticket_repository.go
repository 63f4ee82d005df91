package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/airline-reservation/internal/model"
)

// ErrTicketNotFound is returned when a ticket lookup yields no rows.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketRepo provides data access to the tickets table.  Issuance and
// cancellation happen inside the reservation transaction; gate updates
// and status marks after the fact do not.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketColumns = `id, reservation_id, barcode, status, gate, boarding_at, issued_at`

func scanTicket(scan func(dest ...interface{}) error) (*model.Ticket, error) {
	var t model.Ticket
	var gate sql.NullString
	var boarding sql.NullTime
	err := scan(&t.ID, &t.ReservationID, &t.Barcode, &t.Status, &gate, &boarding, &t.IssuedAt)
	if err != nil {
		return nil, err
	}
	if gate.Valid {
		v := gate.String
		t.Gate = &v
	}
	if boarding.Valid {
		v := boarding.Time
		t.BoardingAt = &v
	}
	return &t, nil
}

// InsertTx persists a new ticket within the provided transaction.  The
// barcode and the reservation id are both unique; either collision is
// reported as ErrDuplicate.
func (r *TicketRepo) InsertTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
	const q = `INSERT INTO tickets (reservation_id, barcode, status, gate, boarding_at)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, t.ReservationID, t.Barcode, t.Status, t.Gate, t.BoardingAt)
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
	t.ID = uint64(id)
	row := tx.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, t.ID)
	full, err := scanTicket(row.Scan)
	if err != nil {
		return err
	}
	*t = *full
	return nil
}

// GetByID retrieves a ticket by its id.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id)
	t, err := scanTicket(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetByBarcode retrieves a ticket by its barcode, the lookup used at
// the gate.
func (r *TicketRepo) GetByBarcode(ctx context.Context, barcode string) (*model.Ticket, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE barcode = ?`, barcode)
	t, err := scanTicket(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetByReservation retrieves the ticket attached to a reservation.
func (r *TicketRepo) GetByReservation(ctx context.Context, reservationID uint64) (*model.Ticket, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE reservation_id = ?`, reservationID)
	t, err := scanTicket(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetByReservationTx is GetByReservation inside the caller's transaction.
func (r *TicketRepo) GetByReservationTx(ctx context.Context, tx *sql.Tx, reservationID uint64) (*model.Ticket, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE reservation_id = ?`, reservationID)
	t, err := scanTicket(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

// UpdateStatus writes a ticket status outside any reservation
// transaction.  Used for gate-side marks (USED, LOST).
func (r *TicketRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE tickets SET status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// UpdateStatusTx writes a ticket status within the provided transaction.
func (r *TicketRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	const q = `UPDATE tickets SET status = ? WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// AssignGate sets the boarding gate and time on an issued ticket.
func (r *TicketRepo) AssignGate(ctx context.Context, id uint64, gate string, boardingAt *time.Time) error {
	const q = `UPDATE tickets SET gate = ?, boarding_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, gate, boardingAt, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTicketNotFound
	}
	return nil
}
