package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/airline-reservation/internal/config"
	"github.com/iliyamo/airline-reservation/internal/database"
	"github.com/iliyamo/airline-reservation/internal/handler"
	"github.com/iliyamo/airline-reservation/internal/queue"
	"github.com/iliyamo/airline-reservation/internal/repository"
	"github.com/iliyamo/airline-reservation/internal/router"
	"github.com/iliyamo/airline-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories.
	aircraftRepo := repository.NewAircraftRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	flightRepo := repository.NewFlightRepo(db)
	passengerRepo := repository.NewPassengerRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	reportRepo := repository.NewReportRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	store := repository.NewStore(db)

	// Services.
	aircraftSvc := service.NewAircraftService(aircraftRepo, seatRepo, flightRepo)
	flightSvc := service.NewFlightService(flightRepo, aircraftRepo, seatRepo)
	passengerSvc := service.NewPassengerService(passengerRepo)
	reservationSvc := service.NewReservationService(store, cfg.HoldTTL)
	ticketSvc := service.NewTicketService(ticketRepo, reservationRepo)
	reportSvc := service.NewReportService(reportRepo)

	// Redis backs the response cache and the rate limiter; nil degrades
	// both to pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	if cfg.RabbitURL != "" {
		go func() {
			if err := queue.StartReservationConsumer(cfg.RabbitURL); err != nil {
				log.Printf("reservation consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, cfg, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, userRepo, tokenRepo),
		Aircraft:     handler.NewAircraftHandler(aircraftSvc),
		Flights:      handler.NewFlightHandler(flightSvc),
		Passengers:   handler.NewPassengerHandler(passengerSvc),
		Reservations: handler.NewReservationHandler(reservationSvc, cfg.RabbitURL),
		Tickets:      handler.NewTicketHandler(ticketSvc),
		Reports:      handler.NewReportHandler(reportSvc),
	}, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
