package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/workstation-booking/internal/catalog"
	"github.com/iliyamo/workstation-booking/internal/config"
	"github.com/iliyamo/workstation-booking/internal/database"
	"github.com/iliyamo/workstation-booking/internal/handler"
	"github.com/iliyamo/workstation-booking/internal/notifier"
	"github.com/iliyamo/workstation-booking/internal/queue"
	"github.com/iliyamo/workstation-booking/internal/repository"
	"github.com/iliyamo/workstation-booking/internal/router"
	queue_publisher "github.com/iliyamo/workstation-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migrate failed: %v", err)
	}

	// Redis is optional: a nil client disables rate limiting and the
	// response cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	cat := catalog.New()
	cancels := notifier.New(notifier.DefaultCapacity)
	events := queue_publisher.New(cfg.AMQPURL)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	bookings := repository.NewBookingRepo(db)

	h := router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users, tokens),
		Bookings:      handler.NewBookingHandler(cat, bookings, users, cancels, events),
		Seats:         handler.NewSeatHandler(bookings),
		Notifications: handler.NewNotificationHandler(cancels),
		Admin:         handler.NewAdminHandler(bookings, users, events),
		JWTSecret:     cfg.JWTSecret,
		Redis:         rdb,
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, h)

	// The notification consumer reconnects on its own; it never brings
	// the API down.
	go func() {
		if err := queue.StartNotificationConsumer(cfg.AMQPURL); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
