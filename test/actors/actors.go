// Package actors holds the concurrent workload roles for the stress test.
// Each actor loops until stopped, hammering the real services against a live
// database. Individual operation errors are expected under contention and
// chaos and are swallowed; only context cancellation ends a loop early.
package actors

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"staybook/auth"
	"staybook/booking"
	"staybook/listing"
	"staybook/review"
)

func pause(minMS, spreadMS int) {
	time.Sleep(time.Duration(minMS+rand.Intn(spreadMS)) * time.Millisecond)
}

func randomStay() (time.Time, time.Time) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rand.Intn(300))
	return start, start.AddDate(0, 0, 1+rand.Intn(13))
}

// Guest books random stays on the given listings as the given user.
func Guest(ctx context.Context, pool *pgxpool.Pool, guest auth.Principal, listingIDs []string, stop <-chan struct{}) error {
	svc := booking.NewService(pool, booking.NewRepository(pool))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		start, end := randomStay()
		_, err := svc.Create(ctx, guest, booking.CreateParams{
			ListingID: listingIDs[rand.Intn(len(listingIDs))],
			StartDate: start,
			EndDate:   end,
		})
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		pause(10, 20)
	}
}

// Rescheduler picks one of the guest's own bookings and moves its dates,
// forcing the total to be recomputed inside the update transaction.
func Rescheduler(ctx context.Context, pool *pgxpool.Pool, guest auth.Principal, stop <-chan struct{}) error {
	svc := booking.NewService(pool, booking.NewRepository(pool))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		result, err := svc.List(ctx, guest, booking.Filters{PageSize: 50})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			pause(20, 40)
			continue
		}
		if len(result.Items) > 0 {
			target := result.Items[rand.Intn(len(result.Items))]
			start, end := randomStay()
			_, err = svc.Update(ctx, guest, target.ID, booking.UpdateParams{
				StartDate: &start,
				EndDate:   &end,
			})
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
		}
		pause(20, 40)
	}
}

// Canceller deletes a random booking belonging to the guest.
func Canceller(ctx context.Context, pool *pgxpool.Pool, guest auth.Principal, stop <-chan struct{}) error {
	svc := booking.NewService(pool, booking.NewRepository(pool))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		result, err := svc.List(ctx, guest, booking.Filters{PageSize: 50})
		if err == nil && len(result.Items) > 0 {
			target := result.Items[rand.Intn(len(result.Items))]
			if err := svc.Delete(ctx, guest, target.ID); err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		pause(100, 100)
	}
}

// Reviewer posts ratings against random listings.
func Reviewer(ctx context.Context, pool *pgxpool.Pool, guest auth.Principal, listingIDs []string, stop <-chan struct{}) error {
	svc := review.NewService(review.NewRepository(pool))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		_, err := svc.Create(ctx, guest, review.CreateParams{
			ListingID: listingIDs[rand.Intn(len(listingIDs))],
			Rating:    1 + rand.Intn(5),
			Comment:   fmt.Sprintf("stay %d", rand.Int63()),
		})
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		pause(50, 80)
	}
}

// Host rewrites the titles and descriptions of its own listings while guests
// book them. Nightly rates stay fixed so booking totals remain checkable.
func Host(ctx context.Context, pool *pgxpool.Pool, owner auth.Principal, listingIDs []string, stop <-chan struct{}) error {
	svc := listing.NewService(pool, listing.NewRepository(pool))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		title := fmt.Sprintf("Listing rev %d", rand.Int63())
		desc := fmt.Sprintf("updated at %s", time.Now().Format(time.RFC3339Nano))
		_, err := svc.Update(ctx, owner, listingIDs[rand.Intn(len(listingIDs))], listing.UpdateParams{
			Title:       &title,
			Description: &desc,
		})
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		pause(30, 50)
	}
}
