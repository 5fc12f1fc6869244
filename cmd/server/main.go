package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mzanotti/restaurant-seating/internal/assign"
	"github.com/mzanotti/restaurant-seating/internal/config"
	"github.com/mzanotti/restaurant-seating/internal/database"
	"github.com/mzanotti/restaurant-seating/internal/handler"
	"github.com/mzanotti/restaurant-seating/internal/middleware"
	"github.com/mzanotti/restaurant-seating/internal/queue"
	"github.com/mzanotti/restaurant-seating/internal/repository"
	"github.com/mzanotti/restaurant-seating/internal/router"
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

	// Redis is optional: with no client the limiter and cache become
	// pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	rooms := repository.NewRoomRepo(db)
	tables := repository.NewTableRepo(db)
	reservations := repository.NewReservationRepo(db)
	waitlist := repository.NewWaitlistRepo(db)
	settings := repository.NewSettingsRepo(db)
	customers := repository.NewCustomerRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	coordinator := assign.NewCoordinator(db, tables, reservations, waitlist, settings)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterStaff(e, router.StaffHandlers{
		Rooms:        handler.NewRoomHandler(rooms),
		Tables:       handler.NewTableHandler(tables, rooms),
		Reservations: handler.NewReservationHandler(reservations, customers),
		Waitlist:     handler.NewWaitlistHandler(waitlist),
		Occupancy:    handler.NewOccupancyHandler(tables, reservations, settings),
		Assign:       handler.NewAssignHandler(coordinator, tables),
		Settings:     handler.NewSettingsHandler(settings),
		Customers:    handler.NewCustomerHandler(customers),
		Diagnostics:  handler.NewDiagnosticsHandler(reservations),
	}, cfg.JWTSecret, rateLimit, cache)

	// The audit consumer keeps its own connection and reconnect loop.
	go func() {
		if err := queue.StartAssignmentConsumer(); err != nil {
			log.Printf("assignment consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
