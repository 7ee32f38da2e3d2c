// Package seed loads a small development dataset. Running it twice is safe:
// users are keyed on email and listings on title plus owner, so existing rows
// are reused instead of duplicated.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"staybook/money"
)

type userSeed struct {
	Email    string
	Username string
	Password string
	IsAdmin  bool
}

type listingSeed struct {
	Title         string
	Description   string
	PricePerNight money.Cents
	OwnerEmail    string
}

var users = []userSeed{
	{Email: "user1@example.com", Username: "user1", Password: "user1-password"},
	{Email: "user2@example.com", Username: "user2", Password: "user2-password"},
	{Email: "admin@example.com", Username: "admin", Password: "admin-password", IsAdmin: true},
}

var listings = []listingSeed{
	{
		Title:         "Cozy Beach House",
		Description:   "Two bedrooms, steps from the sand.",
		PricePerNight: money.Cents(15000),
		OwnerEmail:    "user1@example.com",
	},
	{
		Title:         "Mountain Cabin",
		Description:   "Quiet cabin with a wood stove and trail access.",
		PricePerNight: money.Cents(10000),
		OwnerEmail:    "user2@example.com",
	},
}

// Result reports what the seeder ensured, keyed by email and title.
type Result struct {
	UserIDs    map[string]string
	ListingIDs map[string]string
}

// Run makes the development users and listings exist.
func Run(ctx context.Context, pool *pgxpool.Pool) (Result, error) {
	result := Result{
		UserIDs:    make(map[string]string),
		ListingIDs: make(map[string]string),
	}

	for _, u := range users {
		id, err := ensureUser(ctx, pool, u)
		if err != nil {
			return Result{}, fmt.Errorf("seed: user %s: %w", u.Email, err)
		}
		result.UserIDs[u.Email] = id
	}

	for _, l := range listings {
		ownerID, ok := result.UserIDs[l.OwnerEmail]
		if !ok {
			return Result{}, fmt.Errorf("seed: listing %q references unknown owner %s", l.Title, l.OwnerEmail)
		}
		id, err := ensureListing(ctx, pool, l, ownerID)
		if err != nil {
			return Result{}, fmt.Errorf("seed: listing %q: %w", l.Title, err)
		}
		result.ListingIDs[l.Title] = id
	}

	return result, nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, u.Email).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, u.Email, u.Username, string(hash), u.IsAdmin).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert: %w", err)
	}
	return id, nil
}

func ensureListing(ctx context.Context, pool *pgxpool.Pool, l listingSeed, ownerID string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `SELECT id FROM listings WHERE title = $1 AND owner_id = $2`, l.Title, ownerID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("lookup: %w", err)
	}

	err = pool.QueryRow(ctx, `
		INSERT INTO listings (title, description, price_per_night_cents, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, l.Title, l.Description, l.PricePerNight, ownerID).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert: %w", err)
	}
	return id, nil
}
