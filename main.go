package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/venuebook/venue-service/config"
	"github.com/venuebook/venue-service/internal/handler"
	"github.com/venuebook/venue-service/internal/middleware"
	"github.com/venuebook/venue-service/internal/repository"
	"github.com/venuebook/venue-service/internal/service"
	"github.com/venuebook/venue-service/pkg/database"
	"github.com/venuebook/venue-service/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Notifications are optional; the service runs without a broker.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	// Repositories
	venueRepo := repository.NewVenueRepository(db)
	availRepo := repository.NewAvailabilityRepository(db)
	rentalRepo := repository.NewRentalRepository(db)
	eventRepo := repository.NewEventRepository(db)
	inviteRepo := repository.NewInvitationRepository(db)

	// Services
	venueSvc := service.NewVenueService(venueRepo)
	bookingSvc := service.NewBookingService(rentalRepo, venueRepo, availRepo, publisher)
	availSvc := service.NewAvailabilityService(availRepo, venueRepo)
	eventSvc := service.NewEventService(eventRepo, venueRepo)
	inviteSvc := service.NewInvitationService(inviteRepo, eventRepo, venueRepo, publisher)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "venue-service"})
	})

	handler.NewVenueHandler(venueSvc).RegisterRoutes(e)
	handler.NewAvailabilityHandler(availSvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewEventHandler(eventSvc).RegisterRoutes(e)
	handler.NewInvitationHandler(inviteSvc).RegisterRoutes(e)

	log.Printf("Venue Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
