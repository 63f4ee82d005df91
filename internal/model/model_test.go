package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlightIsBookable(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := Flight{Status: FlightScheduled, DepartureAt: now.Add(time.Hour)}

	assert.True(t, f.IsBookable(now))

	f.Status = FlightBoarding
	assert.False(t, f.IsBookable(now), "boarding flights are closed for booking")

	f.Status = FlightScheduled
	assert.False(t, f.IsBookable(now.Add(2*time.Hour)), "departed flights are closed")
	assert.False(t, f.IsBookable(f.DepartureAt), "departure instant itself is closed")
}

func TestFlightPriceForClass(t *testing.T) {
	f := Flight{BasePriceCents: 10000}
	assert.Equal(t, uint32(10000), f.PriceForClass(SeatClassEconomy))
	assert.Equal(t, uint32(15000), f.PriceForClass(SeatClassPremium))
	assert.Equal(t, uint32(20000), f.PriceForClass(SeatClassFirst))
	assert.Equal(t, uint32(10000), f.PriceForClass("OTHER"))
}

func TestReservationStates(t *testing.T) {
	r := Reservation{Status: ReservationPending}
	assert.True(t, r.IsActive())
	assert.True(t, r.CanCancel())

	r.Status = ReservationConfirmed
	assert.True(t, r.IsActive())
	assert.True(t, r.CanCancel())

	for _, terminal := range []string{ReservationCancelled, ReservationCompleted, ReservationExpired} {
		r.Status = terminal
		assert.False(t, r.IsActive(), terminal)
		assert.False(t, r.CanCancel(), terminal)
	}
}

func TestReservationIsExpired(t *testing.T) {
	deadline := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	r := Reservation{ExpiresAt: deadline}

	assert.False(t, r.IsExpired(deadline.Add(-time.Second)))
	assert.False(t, r.IsExpired(deadline), "deadline instant is still valid")
	assert.True(t, r.IsExpired(deadline.Add(time.Second)))
}

func TestPassengerFullName(t *testing.T) {
	p := Passenger{FirstName: "Ana", LastName: "Rojas"}
	assert.Equal(t, "Ana Rojas", p.FullName())
}
