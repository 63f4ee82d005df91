// Package router wires handlers, middleware and route groups onto the
// Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/airline-reservation/internal/config"
	"github.com/iliyamo/airline-reservation/internal/handler"
	"github.com/iliyamo/airline-reservation/internal/middleware"
	"github.com/iliyamo/airline-reservation/internal/model"
)

// Handlers collects every handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Aircraft     *handler.AircraftHandler
	Flights      *handler.FlightHandler
	Passengers   *handler.PassengerHandler
	Reservations *handler.ReservationHandler
	Tickets      *handler.TicketHandler
	Reports      *handler.ReportHandler
}

// Register mounts all routes.  Public browse endpoints carry the Redis
// response cache; booking endpoints carry the rate limiter; staff
// endpoints require the matching roles.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Auth endpoints need no session.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Public browse: flight search and seat availability.
	pub := e.Group("/v1")
	pub.GET("/flights", h.Flights.List, cache)
	pub.GET("/flights/:id", h.Flights.Get, cache)
	pub.GET("/flights/:id/seats", h.Flights.AvailableSeats)
	pub.GET("/reservations/code/:code", h.Reservations.GetByCode)

	// Everything below requires a valid access token.
	v1 := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	v1.GET("/me", h.Auth.Me)

	staff := middleware.RequireRole(model.RoleAdmin, model.RoleEmployee)
	admin := middleware.RequireRole(model.RoleAdmin)

	// Fleet management is admin-only.
	v1.POST("/aircraft", h.Aircraft.Create, admin)
	v1.GET("/aircraft", h.Aircraft.List, staff)
	v1.GET("/aircraft/:id", h.Aircraft.Get, staff)
	v1.PATCH("/aircraft/:id/status", h.Aircraft.SetStatus, admin)
	v1.POST("/aircraft/:id/seats", h.Aircraft.GenerateSeats, admin)
	v1.GET("/aircraft/:id/seats", h.Aircraft.Seats, staff)
	v1.PATCH("/seats/:seat_id/maintenance", h.Aircraft.SetSeatMaintenance, staff)

	// Flight scheduling and lifecycle.
	v1.POST("/flights", h.Flights.Create, staff)
	v1.PATCH("/flights/:id/status", h.Flights.Transition, staff)

	// Passengers.
	v1.POST("/passengers", h.Passengers.Create)
	v1.GET("/passengers", h.Passengers.List, staff)
	v1.GET("/passengers/:id", h.Passengers.Get)
	v1.PUT("/passengers/:id", h.Passengers.Update)
	v1.DELETE("/passengers/:id", h.Passengers.Delete, staff)

	// Reservation lifecycle.  Booking endpoints are rate limited.
	v1.POST("/reservations", h.Reservations.Create, limiter)
	v1.POST("/reservations/:id/confirm", h.Reservations.Confirm, limiter)
	v1.POST("/reservations/:id/cancel", h.Reservations.Cancel)
	v1.POST("/reservations/:id/complete", h.Reservations.Complete, staff)
	v1.GET("/reservations", h.Reservations.List)
	v1.GET("/reservations/:id", h.Reservations.Get)
	v1.GET("/reservations/:id/ticket", h.Reservations.Ticket)

	// Gate-side ticket operations.
	v1.GET("/tickets/:id", h.Tickets.Get, staff)
	v1.GET("/tickets/barcode/:barcode", h.Tickets.GetByBarcode, staff)
	v1.POST("/tickets/:id/use", h.Tickets.MarkUsed, staff)
	v1.POST("/tickets/:id/lost", h.Tickets.MarkLost, staff)
	v1.PATCH("/tickets/:id/gate", h.Tickets.AssignGate, staff)

	// Statistics.
	v1.GET("/reports/overview", h.Reports.Overview, staff)
}
