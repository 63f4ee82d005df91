package model

import "time"

// Aircraft operational statuses.  An aircraft accepts new flights only
// while ACTIVE; MAINTENANCE and RETIRED aircraft are excluded from
// scheduling.
const (
	AircraftActive      = "ACTIVE"
	AircraftMaintenance = "MAINTENANCE"
	AircraftRetired     = "RETIRED"
)

// Aircraft describes a plane in the fleet.  The seat grid is defined by
// Rows and Columns; Capacity is derived from them when not supplied
// explicitly.  Seats are generated once from the grid and the layout is
// immutable afterwards except for the operational status.
//
// Fields:
//  ID        – primary key identifier.
//  Model     – manufacturer model name (e.g. "Boeing 737").
//  Rows      – number of seat rows.
//  Columns   – number of seat columns per row.
//  Capacity  – total passenger capacity (rows × columns by default).
//  Status    – operational status (ACTIVE, MAINTENANCE, RETIRED).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Aircraft struct {
	ID        uint64    // aircraft.id
	Model     string    // aircraft.model
	Rows      uint32    // aircraft.seat_rows
	Columns   uint32    // aircraft.seat_columns
	Capacity  uint32    // aircraft.capacity
	Status    string    // aircraft.status
	CreatedAt time.Time // aircraft.created_at
	UpdatedAt time.Time // aircraft.updated_at
}
