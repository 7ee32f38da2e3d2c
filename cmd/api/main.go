package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"staybook/auth"
	"staybook/booking"
	"staybook/config"
	"staybook/db"
	"staybook/httpapi"
	"staybook/listing"
	"staybook/review"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("bootstrap database pool: %v", err)
	}
	defer pool.Close()

	authService := auth.NewService(auth.NewRepository(pool), cfg.JWTSecret)
	listingService := listing.NewService(pool, listing.NewRepository(pool))
	bookingService := booking.NewService(pool, booking.NewRepository(pool))
	reviewService := review.NewService(review.NewRepository(pool))

	server := httpapi.NewServer(listingService, bookingService, reviewService, authService, authService)

	e := echo.New()
	e.HideBanner = true
	server.RegisterRoutes(e)

	log.Printf("listening on :%s (env %s)", cfg.Port, cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
