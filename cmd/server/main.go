package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/restobook/restaurant-reservation/internal/booking"
	"github.com/restobook/restaurant-reservation/internal/config"
	"github.com/restobook/restaurant-reservation/internal/database"
	"github.com/restobook/restaurant-reservation/internal/handler"
	"github.com/restobook/restaurant-reservation/internal/middleware"
	"github.com/restobook/restaurant-reservation/internal/queue"
	"github.com/restobook/restaurant-reservation/internal/repository"
	"github.com/restobook/restaurant-reservation/internal/router"
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

	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	tables := repository.NewTableRepo(db)
	customers := repository.NewCustomerRepo(db)
	reservations := repository.NewReservationRepo(db)

	seedAdmin(users, cfg)

	svc := booking.NewService(reservations, tables, customers, nil)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	restaurantH := handler.NewRestaurantHandler(restaurants)
	tableH := handler.NewTableHandler(tables, restaurants)
	customerH := handler.NewCustomerHandler(customers)
	reservationH := handler.NewReservationHandler(svc)

	// Confirmation events are consumed out of process; the consumer
	// keeps retrying on broker outages and never blocks startup.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBooking(e, cfg.JWTSecret, restaurantH, tableH, customerH, reservationH, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// seedAdmin ensures the configured admin account exists so a fresh
// deployment can log in and create staff users.
func seedAdmin(users *repository.UserRepo, cfg config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := users.GetByUsername(ctx, cfg.AdminUser)
	if err == nil {
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Fatalf("seed admin: lookup failed: %v", err)
	}
	if _, err := users.Create(ctx, cfg.AdminUser, cfg.AdminPass, "ADMIN", cfg.BcryptCost); err != nil {
		log.Fatalf("seed admin: create failed: %v", err)
	}
	log.Printf("seeded admin user %q", cfg.AdminUser)
}
