package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines the data access required by the service.
type Repository interface {
	Create(ctx context.Context, rev Review) (Review, error)
	ListForListing(ctx context.Context, listingID string) ([]Review, error)
	GetByID(ctx context.Context, id string) (Review, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const reviewColumns = `id, listing_id, user_id, rating, comment, created_at`

func (r *PGRepository) Create(ctx context.Context, rev Review) (Review, error) {
	query := `
		INSERT INTO reviews (id, listing_id, user_id, rating, comment)
		VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5)
		RETURNING ` + reviewColumns

	row := r.pool.QueryRow(ctx, query, rev.ID, rev.ListingID, rev.UserID, rev.Rating, rev.Comment)
	created, err := scanReview(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Review{}, ErrListingNotFound
		}
		return Review{}, fmt.Errorf("review: insert: %w", err)
	}
	return created, nil
}

func (r *PGRepository) ListForListing(ctx context.Context, listingID string) ([]Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE listing_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("review: query list: %w", err)
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("review: scan: %w", err)
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("review: iterate: %w", err)
	}
	return out, nil
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	rev, err := scanReview(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		return Review{}, fmt.Errorf("review: get by id: %w", err)
	}
	return rev, nil
}

func scanReview(row pgx.Row) (Review, error) {
	var rev Review
	return rev, row.Scan(
		&rev.ID,
		&rev.ListingID,
		&rev.UserID,
		&rev.Rating,
		&rev.Comment,
		&rev.CreatedAt,
	)
}
