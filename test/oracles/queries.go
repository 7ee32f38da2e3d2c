// Package oracles defines SQL invariant checks run while the stress workload
// is active. Each query returns rows only when its invariant is violated.
package oracles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Oracle struct {
	Name string
	SQL  string
}

func All() []Oracle {
	return []Oracle{
		{
			// Nightly rates are fixed during the run, so every surviving
			// booking must carry exactly nights times the current rate.
			Name: "O1_booking_total_matches_rate",
			SQL: `SELECT b.id, b.total_price_cents,
                         (b.end_date - b.start_date) * l.price_per_night_cents AS expected
                  FROM bookings b
                  JOIN listings l ON l.id = b.listing_id
                  WHERE b.total_price_cents <> (b.end_date - b.start_date) * l.price_per_night_cents`,
		},
		{
			Name: "O2_booking_dates_ordered",
			SQL:  `SELECT id, start_date, end_date FROM bookings WHERE end_date <= start_date`,
		},
		{
			Name: "O3_booking_total_nonnegative",
			SQL:  `SELECT id, total_price_cents FROM bookings WHERE total_price_cents < 0`,
		},
		{
			Name: "O4_review_rating_in_range",
			SQL:  `SELECT id, rating FROM reviews WHERE rating < 1 OR rating > 5`,
		},
		{
			Name: "O5_no_orphan_bookings",
			SQL: `SELECT b.id FROM bookings b
                  LEFT JOIN listings l ON l.id = b.listing_id
                  LEFT JOIN users u ON u.id = b.user_id
                  WHERE l.id IS NULL OR u.id IS NULL`,
		},
		{
			Name: "O6_no_orphan_reviews",
			SQL: `SELECT r.id FROM reviews r
                  LEFT JOIN listings l ON l.id = r.listing_id
                  WHERE l.id IS NULL`,
		},
		{
			Name: "O7_listing_price_nonnegative",
			SQL:  `SELECT id, price_per_night_cents FROM listings WHERE price_per_night_cents < 0`,
		},
		{
			Name: "O8_listing_title_present",
			SQL:  `SELECT id FROM listings WHERE length(trim(title)) = 0 OR length(title) > 200`,
		},
	}
}

// Run executes all oracles and returns the first failure (name and sample row text) or empty name if all pass.
func Run(ctx context.Context, pool *pgxpool.Pool) (string, string, error) {
	for _, o := range All() {
		rows, err := pool.Query(ctx, o.SQL)
		if err != nil {
			return o.Name, "", fmt.Errorf("oracle %s: %w", o.Name, err)
		}
		has := rows.Next()
		if has {
			vals, err := rows.Values()
			rows.Close()
			if err != nil {
				return o.Name, "", err
			}
			return o.Name, fmt.Sprintf("%v", vals), nil
		}
		rows.Close()
	}
	return "", "", nil
}
