package model

import "time"

// Ticket statuses.  A ticket starts ISSUED; USED, CANCELLED and LOST are
// all terminal.
const (
	TicketIssued    = "ISSUED"
	TicketUsed      = "USED"
	TicketCancelled = "CANCELLED"
	TicketLost      = "LOST"
)

// Ticket is the boarding document derived from a confirmed reservation.
// Exactly one ticket exists per confirmed reservation; it is issued as a
// side effect of confirmation and cancelled when the reservation is.
// Barcode format: "BOL" followed by 12 uppercase hex characters.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – owning reservation (one-to-one).
//  Barcode       – unique barcode string.
//  Status        – current status (ISSUED, USED, CANCELLED, LOST).
//  Gate          – boarding gate, assigned later (nullable).
//  BoardingAt    – boarding time, assigned later (nullable).
//  IssuedAt      – issuance timestamp.
type Ticket struct {
	ID            uint64     // tickets.id
	ReservationID uint64     // tickets.reservation_id
	Barcode       string     // tickets.barcode
	Status        string     // tickets.status
	Gate          *string    // tickets.gate (nullable)
	BoardingAt    *time.Time // tickets.boarding_at (nullable)
	IssuedAt      time.Time  // tickets.issued_at
}
