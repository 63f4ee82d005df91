package service

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/service/ports"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func seedStore() *fakeStore {
	s := newFakeStore()
	s.flights[1] = model.Flight{
		ID:             1,
		AircraftID:     1,
		Origin:         "BOG",
		Destination:    "MDE",
		DepartureAt:    testNow.Add(72 * time.Hour),
		ArrivalAt:      testNow.Add(73 * time.Hour),
		Status:         model.FlightScheduled,
		BasePriceCents: 10000,
	}
	s.seats[10] = model.Seat{ID: 10, AircraftID: 1, Number: "1A", Row: 1, Column: "A", Class: model.SeatClassFirst, Status: model.SeatAvailable}
	s.seats[20] = model.Seat{ID: 20, AircraftID: 1, Number: "4C", Row: 4, Column: "C", Class: model.SeatClassPremium, Status: model.SeatAvailable}
	s.seats[30] = model.Seat{ID: 30, AircraftID: 1, Number: "12D", Row: 12, Column: "D", Class: model.SeatClassEconomy, Status: model.SeatAvailable}
	s.passengers[100] = model.Passenger{ID: 100, FirstName: "Ana", LastName: "Rojas", DocumentType: "PASSPORT", DocumentNumber: "X1"}
	s.passengers[101] = model.Passenger{ID: 101, FirstName: "Luis", LastName: "Marin", DocumentType: "PASSPORT", DocumentNumber: "X2"}
	return s
}

func newTestService(s *fakeStore) *ReservationService {
	return NewReservationService(s, 24*time.Hour).WithClock(func() time.Time { return testNow })
}

func TestCreateReservation(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)

	res, err := svc.Create(context.Background(), CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	require.NoError(t, err)

	assert.Equal(t, model.ReservationPending, res.Status)
	assert.Equal(t, uint32(10000), res.PriceCents, "economy seat sells at base price")
	assert.Equal(t, testNow.Add(24*time.Hour), res.ExpiresAt)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{8}$`), res.Code)
	assert.Equal(t, model.SeatHeld, s.seats[30].Status)
}

func TestCreateReservationClassPricing(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 10})
	require.NoError(t, err)
	assert.Equal(t, uint32(20000), first.PriceCents)

	premium, err := svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 101, SeatID: 20})
	require.NoError(t, err)
	assert.Equal(t, uint32(15000), premium.PriceCents)
}

func TestCreateReservationSeatTaken(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 101, SeatID: 30})
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestCreateReservationPassengerAlreadyBooked(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 20})
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestCreateReservationFlightNotBookable(t *testing.T) {
	s := seedStore()
	f := s.flights[1]
	f.Status = model.FlightBoarding
	s.flights[1] = f

	_, err := newTestService(s).Create(context.Background(), CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	assert.ErrorIs(t, err, model.ErrInvalidState)
}

func TestCreateReservationSeatWrongAircraft(t *testing.T) {
	s := seedStore()
	s.seats[99] = model.Seat{ID: 99, AircraftID: 2, Number: "1A", Status: model.SeatAvailable}

	_, err := newTestService(s).Create(context.Background(), CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 99})
	assert.ErrorIs(t, err, model.ErrValidation)
}

// Many goroutines race for the same seat; exactly one may win.
func TestCreateReservationConcurrentSingleWinner(t *testing.T) {
	s := seedStore()
	for i := uint64(0); i < 32; i++ {
		s.passengers[200+i] = model.Passenger{ID: 200 + i, FirstName: "P", LastName: "N", DocumentType: "DNI", DocumentNumber: string(rune('A' + i))}
	}
	svc := newTestService(s)

	var wg sync.WaitGroup
	errs := make([]error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), CreateReservationInput{
				FlightID:    1,
				PassengerID: 200 + uint64(i),
				SeatID:      30,
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, model.ErrConflict)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, model.SeatHeld, s.seats[30].Status)
}

func TestConfirmIssuesTicket(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	require.NoError(t, err)

	result, err := svc.Confirm(ctx, res.ID)
	require.NoError(t, err)
	assert.False(t, result.AlreadyConfirmed)
	assert.Equal(t, model.ReservationConfirmed, result.Reservation.Status)
	assert.Equal(t, model.SeatOccupied, s.seats[30].Status)

	require.NotNil(t, result.Ticket)
	assert.Equal(t, model.TicketIssued, result.Ticket.Status)
	assert.Regexp(t, regexp.MustCompile(`^BOL[0-9A-F]{12}$`), result.Ticket.Barcode)
}

func TestConfirmIsIdempotent(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	require.NoError(t, err)

	first, err := svc.Confirm(ctx, res.ID)
	require.NoError(t, err)
	second, err := svc.Confirm(ctx, res.ID)
	require.NoError(t, err)

	assert.True(t, second.AlreadyConfirmed)
	assert.Equal(t, first.Ticket.Barcode, second.Ticket.Barcode)
	assert.Len(t, s.tickets, 1)
}

func TestConfirmPastDeadlineRefused(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	require.NoError(t, err)

	// Move the clock past the deadline.
	svc.WithClock(func() time.Time { return testNow.Add(25 * time.Hour) })

	_, err = svc.Confirm(ctx, res.ID)
	assert.ErrorIs(t, err, model.ErrExpired)

	// Expiry belongs to the sweeper; the refused confirm must not
	// touch the reservation or release the seat.
	assert.Equal(t, model.ReservationPending, s.reservations[res.ID].Status)
	assert.Equal(t, model.SeatHeld, s.seats[30].Status)
	assert.Empty(t, s.tickets, "no ticket for an overdue reservation")
}

func TestCancelPendingNoRefund(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	require.NoError(t, err)

	result, err := svc.Cancel(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, result.Reservation.Status)
	assert.Zero(t, result.RefundCents)
	assert.Equal(t, model.SeatAvailable, s.seats[30].Status)
}

func TestCancelConfirmedRefundTiers(t *testing.T) {
	ctx := context.Background()

	// Departure is 72h out: cancelling now is generous (80%).
	s := seedStore()
	svc := newTestService(s)
	res, err := svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, res.ID)
	require.NoError(t, err)

	result, err := svc.Cancel(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(8000), result.RefundCents)
	assert.Equal(t, model.TicketCancelled, s.tickets[1].Status)

	// Same flow but cancelled within 24h of departure: reduced (50%).
	s = seedStore()
	svc = newTestService(s)
	res, err = svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, res.ID)
	require.NoError(t, err)

	svc.WithClock(func() time.Time { return testNow.Add(50 * time.Hour) })
	result, err = svc.Cancel(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(5000), result.RefundCents)
}

func TestCancelAfterDepartureRejected(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, res.ID)
	require.NoError(t, err)

	// The flight departed 8 hours ago; no cancellation, no refund.
	svc.WithClock(func() time.Time { return testNow.Add(80 * time.Hour) })

	_, err = svc.Cancel(ctx, res.ID)
	assert.ErrorIs(t, err, model.ErrInvalidState)
	assert.Equal(t, model.ReservationConfirmed, s.reservations[res.ID].Status)
	assert.Equal(t, model.SeatOccupied, s.seats[30].Status)
	assert.Equal(t, model.TicketIssued, s.tickets[1].Status)
}

func TestCancelTerminalStateRejected(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, res.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, res.ID)
	assert.ErrorIs(t, err, model.ErrInvalidState)
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, res.ID)
	assert.ErrorIs(t, err, model.ErrInvalidState)

	_, err = svc.Confirm(ctx, res.ID)
	require.NoError(t, err)

	done, err := svc.Complete(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCompleted, done.Status)
	assert.Equal(t, model.TicketUsed, s.tickets[1].Status)
}

func TestRefundAmountBoundary(t *testing.T) {
	departure := testNow.Add(refundCutoff)

	// Exactly 24h before departure is not "more than", so reduced tier.
	assert.Equal(t, uint32(5000), RefundAmount(10000, departure, testNow))
	assert.Equal(t, uint32(8000), RefundAmount(10000, departure, testNow.Add(-time.Second)))
	assert.Equal(t, uint32(5000), RefundAmount(10000, departure, testNow.Add(time.Second)))
}

func TestBookingCodeShape(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z0-9]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := NewBookingCode()
		assert.Regexp(t, re, code)
		assert.False(t, seen[code], "codes should not repeat in a small sample")
		seen[code] = true
	}
}

func TestListReservationsFilter(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	r1, err := svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 101, SeatID: 20})
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, r1.ID)
	require.NoError(t, err)

	confirmed, err := svc.List(ctx, ports.ReservationFilter{Status: model.ReservationConfirmed})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, r1.ID, confirmed[0].ID)

	byPassenger, err := svc.List(ctx, ports.ReservationFilter{PassengerID: 101})
	require.NoError(t, err)
	assert.Len(t, byPassenger, 1)
}

func TestGetByCodeIsCaseInsensitive(t *testing.T) {
	s := seedStore()
	svc := newTestService(s)
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateReservationInput{FlightID: 1, PassengerID: 100, SeatID: 30})
	require.NoError(t, err)

	found, err := svc.GetByCode(ctx, "  "+res.Code+" ")
	require.NoError(t, err)
	assert.Equal(t, res.ID, found.ID)
}
