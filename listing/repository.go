package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines the data access required by the service.
type Repository interface {
	Create(ctx context.Context, l Listing) (Listing, error)
	List(ctx context.Context, filters Filters) ([]Listing, int, error)
	GetByID(ctx context.Context, id string) (Listing, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (Listing, error)
	Update(ctx context.Context, tx pgx.Tx, l Listing) (Listing, error)
	Delete(ctx context.Context, tx pgx.Tx, id string) error
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const listingColumns = `id, title, description, price_per_night_cents, owner_id, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, l Listing) (Listing, error) {
	query := `
		INSERT INTO listings (id, title, description, price_per_night_cents, owner_id)
		VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5)
		RETURNING ` + listingColumns

	row := r.pool.QueryRow(ctx, query, l.ID, l.Title, l.Description, l.PricePerNight, l.OwnerID)
	created, err := scanListing(row)
	if err != nil {
		return Listing{}, fmt.Errorf("listing: insert: %w", err)
	}
	return created, nil
}

func (r *PGRepository) List(ctx context.Context, filters Filters) ([]Listing, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 || filters.PageSize > 100 {
		filters.PageSize = 20
	}

	where := ""
	args := []any{}
	if filters.OwnerID != "" {
		where = " WHERE owner_id = $1"
		args = append(args, filters.OwnerID)
	}

	query := fmt.Sprintf(`SELECT %s FROM listings%s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		listingColumns, where, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing: query list: %w", err)
	}
	defer rows.Close()

	list := []Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("listing: scan: %w", err)
		}
		list = append(list, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("listing: iterate: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM listings" + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("listing: count list: %w", err)
	}

	return list, total, nil
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	l, err := scanListing(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Listing{}, ErrNotFound
		}
		return Listing{}, fmt.Errorf("listing: get by id: %w", err)
	}
	return l, nil
}

func (r *PGRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1 FOR UPDATE`

	l, err := scanListing(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Listing{}, ErrNotFound
		}
		return Listing{}, fmt.Errorf("listing: get for update: %w", err)
	}
	return l, nil
}

func (r *PGRepository) Update(ctx context.Context, tx pgx.Tx, l Listing) (Listing, error) {
	query := `
		UPDATE listings
		SET title = $2,
		    description = $3,
		    price_per_night_cents = $4,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + listingColumns

	row := tx.QueryRow(ctx, query, l.ID, l.Title, l.Description, l.PricePerNight)
	updated, err := scanListing(row)
	if err != nil {
		return Listing{}, fmt.Errorf("listing: update: %w", err)
	}
	return updated, nil
}

// Delete removes the listing row; dependent bookings and reviews go with it
// via ON DELETE CASCADE.
func (r *PGRepository) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("listing: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanListing(row pgx.Row) (Listing, error) {
	var l Listing
	return l, row.Scan(
		&l.ID,
		&l.Title,
		&l.Description,
		&l.PricePerNight,
		&l.OwnerID,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
}
