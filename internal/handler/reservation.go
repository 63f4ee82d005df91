package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-reservation/internal/queue"
	"github.com/iliyamo/airline-reservation/internal/service"
	"github.com/iliyamo/airline-reservation/internal/service/ports"
)

// ReservationHandler exposes the reservation lifecycle endpoints.
type ReservationHandler struct {
	Reservations *service.ReservationService
	// RabbitURL enables confirmation events when non-empty.
	RabbitURL string
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(r *service.ReservationService, rabbitURL string) *ReservationHandler {
	return &ReservationHandler{Reservations: r, RabbitURL: rabbitURL}
}

type createReservationReq struct {
	FlightID    uint64  `json:"flight_id"`
	PassengerID uint64  `json:"passenger_id"`
	SeatID      uint64  `json:"seat_id"`
	Notes       *string `json:"notes"`
}

// Create books a seat, returning the pending reservation with its
// confirmation deadline.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := h.Reservations.Create(c.Request().Context(), service.CreateReservationInput{
		FlightID:    req.FlightID,
		PassengerID: req.PassengerID,
		SeatID:      req.SeatID,
		Notes:       req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Confirm promotes a pending reservation and returns the issued ticket.
// On a fresh confirmation a reservation.confirmed event is published
// best-effort after the commit.
func (h *ReservationHandler) Confirm(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	result, err := h.Reservations.Confirm(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	if !result.AlreadyConfirmed && h.RabbitURL != "" {
		ev := queue.ReservationConfirmedEvent{
			ReservationID: result.Reservation.ID,
			Code:          result.Reservation.Code,
			FlightID:      result.Reservation.FlightID,
			PassengerID:   result.Reservation.PassengerID,
			PriceCents:    result.Reservation.PriceCents,
			TicketBarcode: result.Ticket.Barcode,
			ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if result.Flight != nil {
			ev.Origin = result.Flight.Origin
			ev.Destination = result.Flight.Destination
			ev.DepartureAt = result.Flight.DepartureAt.Format(time.RFC3339)
		}
		if result.Passenger != nil {
			ev.PassengerName = result.Passenger.FullName()
		}
		if result.Seat != nil {
			ev.SeatNumber = result.Seat.Number
			ev.SeatClass = result.Seat.Class
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = queue.PublishReservationConfirmed(ctx, h.RabbitURL, ev)
		}()
	}

	status := http.StatusOK
	if !result.AlreadyConfirmed {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{
		"reservation": result.Reservation,
		"ticket":      result.Ticket,
	})
}

// Cancel releases a reservation and reports the refund owed.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	result, err := h.Reservations.Cancel(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reservation":  result.Reservation,
		"refund_cents": result.RefundCents,
	})
}

// Complete closes a confirmed reservation after the flight.
func (h *ReservationHandler) Complete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	res, err := h.Reservations.Complete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Get returns one reservation.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	res, err := h.Reservations.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetByCode looks a reservation up by its booking code.
func (h *ReservationHandler) GetByCode(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}
	res, err := h.Reservations.GetByCode(c.Request().Context(), code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// List returns reservations filtered by the optional ?flight_id=,
// ?passenger_id= and ?status= query parameters.
func (h *ReservationHandler) List(c echo.Context) error {
	var f ports.ReservationFilter
	if v := c.QueryParam("flight_id"); v != "" {
		id, err := parseQueryID(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight_id"})
		}
		f.FlightID = id
	}
	if v := c.QueryParam("passenger_id"); v != "" {
		id, err := parseQueryID(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid passenger_id"})
		}
		f.PassengerID = id
	}
	f.Status = strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))

	list, err := h.Reservations.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Ticket returns the ticket attached to a reservation.
func (h *ReservationHandler) Ticket(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	t, err := h.Reservations.Ticket(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}
