package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-reservation/internal/service"
)

// PassengerHandler exposes passenger CRUD endpoints.
type PassengerHandler struct {
	Passengers *service.PassengerService
}

// NewPassengerHandler constructs a PassengerHandler.
func NewPassengerHandler(p *service.PassengerService) *PassengerHandler {
	return &PassengerHandler{Passengers: p}
}

type passengerReq struct {
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	DocumentType   string     `json:"document_type"`
	DocumentNumber string     `json:"document_number"`
	Email          *string    `json:"email"`
	Phone          *string    `json:"phone"`
	BirthDate      *time.Time `json:"birth_date"`
}

func (r passengerReq) toInput() service.PassengerInput {
	return service.PassengerInput{
		FirstName:      strings.TrimSpace(r.FirstName),
		LastName:       strings.TrimSpace(r.LastName),
		DocumentType:   strings.ToUpper(strings.TrimSpace(r.DocumentType)),
		DocumentNumber: strings.TrimSpace(r.DocumentNumber),
		Email:          r.Email,
		Phone:          r.Phone,
		BirthDate:      r.BirthDate,
	}
}

// Create registers a passenger.
func (h *PassengerHandler) Create(c echo.Context) error {
	var req passengerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p, err := h.Passengers.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// Get returns one passenger.
func (h *PassengerHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	p, err := h.Passengers.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// List returns all passengers.
func (h *PassengerHandler) List(c echo.Context) error {
	list, err := h.Passengers.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Update rewrites a passenger's fields.
func (h *PassengerHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req passengerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p, err := h.Passengers.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Delete removes a passenger unless they hold a confirmed reservation.
func (h *PassengerHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Passengers.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
