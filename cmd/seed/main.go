// Command seed loads the development dataset and prints a bearer token per
// seeded user so the API can be exercised immediately.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"staybook/auth"
	"staybook/config"
	"staybook/db"
	"staybook/seed"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("bootstrap database pool: %v", err)
	}
	defer pool.Close()

	result, err := seed.Run(ctx, pool)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	authService := auth.NewService(auth.NewRepository(pool), cfg.JWTSecret)

	for email, id := range result.UserIDs {
		user, err := authService.GetUserByID(ctx, id)
		if err != nil {
			log.Fatalf("load seeded user %s: %v", email, err)
		}
		token, err := authService.MintToken(user.ID, user.IsAdmin, 24*time.Hour)
		if err != nil {
			log.Fatalf("mint token for %s: %v", email, err)
		}
		fmt.Printf("%s\t%s\n", email, token)
	}

	for title, id := range result.ListingIDs {
		fmt.Printf("listing %q\t%s\n", title, id)
	}
}
