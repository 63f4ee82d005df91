package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-reservation/internal/service"
)

// TicketHandler exposes gate-side ticket endpoints.
type TicketHandler struct {
	Tickets *service.TicketService
}

// NewTicketHandler constructs a TicketHandler.
func NewTicketHandler(t *service.TicketService) *TicketHandler {
	return &TicketHandler{Tickets: t}
}

// Get returns one ticket.
func (h *TicketHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	t, err := h.Tickets.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// GetByBarcode resolves a scanned barcode.
func (h *TicketHandler) GetByBarcode(c echo.Context) error {
	barcode := strings.TrimSpace(c.Param("barcode"))
	if barcode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "barcode required"})
	}
	t, err := h.Tickets.GetByBarcode(c.Request().Context(), barcode)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// MarkUsed records a boarding.
func (h *TicketHandler) MarkUsed(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	t, err := h.Tickets.MarkUsed(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// MarkLost voids a ticket reported lost.
func (h *TicketHandler) MarkLost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	t, err := h.Tickets.MarkLost(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

type assignGateReq struct {
	Gate       string     `json:"gate"`
	BoardingAt *time.Time `json:"boarding_at"`
}

// AssignGate sets the boarding gate and time.
func (h *TicketHandler) AssignGate(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req assignGateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	t, err := h.Tickets.AssignGate(c.Request().Context(), id, strings.ToUpper(strings.TrimSpace(req.Gate)), req.BoardingAt)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}
