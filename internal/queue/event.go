// Package queue defines message payloads exchanged over the message
// broker plus the publisher and consumer that move them.
package queue

// ReservationConfirmedEvent is published when a reservation is
// confirmed and its ticket issued.  It carries enough denormalized
// detail for downstream consumers to log or notify without querying
// the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	Code          string `json:"code"`
	FlightID      uint64 `json:"flight_id"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureAt   string `json:"departure_at"`
	PassengerID   uint64 `json:"passenger_id"`
	PassengerName string `json:"passenger_name"`
	SeatNumber    string `json:"seat_number"`
	SeatClass     string `json:"seat_class"`
	PriceCents    uint32 `json:"price_cents"`
	TicketBarcode string `json:"ticket_barcode"`
	ConfirmedAt   string `json:"confirmed_at"`
}
