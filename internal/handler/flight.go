package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-reservation/internal/service"
)

// FlightHandler exposes flight scheduling and browsing endpoints.
type FlightHandler struct {
	Flights *service.FlightService
}

// NewFlightHandler constructs a FlightHandler.
func NewFlightHandler(f *service.FlightService) *FlightHandler {
	return &FlightHandler{Flights: f}
}

type createFlightReq struct {
	AircraftID     uint64    `json:"aircraft_id"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureAt    time.Time `json:"departure_at"`
	ArrivalAt      time.Time `json:"arrival_at"`
	BasePriceCents uint32    `json:"base_price_cents"`
}

// Create schedules a flight.
func (h *FlightHandler) Create(c echo.Context) error {
	var req createFlightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	f, err := h.Flights.Create(c.Request().Context(), service.CreateFlightInput{
		AircraftID:     req.AircraftID,
		Origin:         strings.TrimSpace(req.Origin),
		Destination:    strings.TrimSpace(req.Destination),
		DepartureAt:    req.DepartureAt,
		ArrivalAt:      req.ArrivalAt,
		BasePriceCents: req.BasePriceCents,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

// Get returns one flight.
func (h *FlightHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	f, err := h.Flights.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

// List returns flights filtered by the optional ?origin=, ?destination=
// and ?status= query parameters.
func (h *FlightHandler) List(c echo.Context) error {
	list, err := h.Flights.List(c.Request().Context(),
		strings.TrimSpace(c.QueryParam("origin")),
		strings.TrimSpace(c.QueryParam("destination")),
		strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Transition moves a flight through its status machine.
func (h *FlightHandler) Transition(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	f, err := h.Flights.Transition(c.Request().Context(), id, strings.ToUpper(strings.TrimSpace(req.Status)))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

// AvailableSeats lists the seats still open for sale on a flight.
func (h *FlightHandler) AvailableSeats(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	seats, err := h.Flights.AvailableSeats(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, seats)
}
