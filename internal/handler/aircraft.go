package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-reservation/internal/service"
)

// AircraftHandler exposes fleet management endpoints.
type AircraftHandler struct {
	Aircraft *service.AircraftService
}

// NewAircraftHandler constructs an AircraftHandler.
func NewAircraftHandler(a *service.AircraftService) *AircraftHandler {
	return &AircraftHandler{Aircraft: a}
}

type createAircraftReq struct {
	Model   string `json:"model"`
	Rows    uint32 `json:"rows"`
	Columns uint32 `json:"columns"`
}

// Create registers an aircraft.
func (h *AircraftHandler) Create(c echo.Context) error {
	var req createAircraftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	a, err := h.Aircraft.Create(c.Request().Context(), service.CreateAircraftInput{
		Model:   strings.TrimSpace(req.Model),
		Rows:    req.Rows,
		Columns: req.Columns,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// Get returns one aircraft.
func (h *AircraftHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	a, err := h.Aircraft.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// List returns the fleet, optionally filtered by ?status=.
func (h *AircraftHandler) List(c echo.Context) error {
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	list, err := h.Aircraft.List(c.Request().Context(), status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

type statusReq struct {
	Status string `json:"status"`
}

// SetStatus changes an aircraft's operational status.
func (h *AircraftHandler) SetStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if err := h.Aircraft.SetStatus(c.Request().Context(), id, status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}

// GenerateSeats builds or rebuilds the seat grid for an aircraft.
func (h *AircraftHandler) GenerateSeats(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	seats, err := h.Aircraft.GenerateSeats(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"aircraft_id": id, "seats": len(seats)})
}

// Seats lists the aircraft's seat grid.
func (h *AircraftHandler) Seats(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	seats, err := h.Aircraft.Seats(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, seats)
}

type maintenanceReq struct {
	UnderMaintenance bool `json:"under_maintenance"`
}

// SetSeatMaintenance toggles a seat in or out of MAINTENANCE.
func (h *AircraftHandler) SetSeatMaintenance(c echo.Context) error {
	seatID, err := paramID(c, "seat_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req maintenanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	seat, err := h.Aircraft.SetSeatMaintenance(c.Request().Context(), seatID, req.UnderMaintenance)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, seat)
}
