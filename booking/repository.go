package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"staybook/money"
)

// Repository defines the data access required by the service. Mutations run
// inside the caller's transaction; reads go straight to the pool.
type Repository interface {
	Create(ctx context.Context, tx pgx.Tx, b Booking) (Booking, error)
	List(ctx context.Context, filters Filters) ([]Booking, int, error)
	GetByID(ctx context.Context, id string) (Booking, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (Booking, error)
	Update(ctx context.Context, tx pgx.Tx, b Booking) (Booking, error)
	Delete(ctx context.Context, tx pgx.Tx, id string) error
	ListingRate(ctx context.Context, tx pgx.Tx, listingID string) (money.Cents, error)
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const bookingColumns = `id, listing_id, user_id, start_date, end_date, total_price_cents, created_at`

// ListingRate resolves the nightly rate for the referenced listing inside the
// booking transaction, so a concurrent price change cannot slip between the
// read and the insert.
func (r *PGRepository) ListingRate(ctx context.Context, tx pgx.Tx, listingID string) (money.Cents, error) {
	var rate money.Cents
	err := tx.QueryRow(ctx, `SELECT price_per_night_cents FROM listings WHERE id = $1`, listingID).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrListingNotFound
		}
		return 0, fmt.Errorf("booking: listing rate: %w", err)
	}
	return rate, nil
}

func (r *PGRepository) Create(ctx context.Context, tx pgx.Tx, b Booking) (Booking, error) {
	query := `
		INSERT INTO bookings (id, listing_id, user_id, start_date, end_date, total_price_cents)
		VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6)
		RETURNING ` + bookingColumns

	row := tx.QueryRow(ctx, query, b.ID, b.ListingID, b.UserID, b.StartDate, b.EndDate, b.TotalPrice)
	created, err := scanBooking(row)
	if err != nil {
		return Booking{}, fmt.Errorf("booking: insert: %w", err)
	}
	return created, nil
}

func (r *PGRepository) List(ctx context.Context, filters Filters) ([]Booking, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 || filters.PageSize > 100 {
		filters.PageSize = 20
	}

	where := []string{"1=1"}
	args := []any{}
	if filters.UserID != "" {
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)+1))
		args = append(args, filters.UserID)
	}
	if filters.ListingID != "" {
		where = append(where, fmt.Sprintf("listing_id = $%d", len(args)+1))
		args = append(args, filters.ListingID)
	}
	whereClause := " WHERE " + strings.Join(where, " AND ")

	query := fmt.Sprintf(`SELECT %s FROM bookings%s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		bookingColumns, whereClause, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("booking: query list: %w", err)
	}
	defer rows.Close()

	list := []Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("booking: scan: %w", err)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("booking: iterate: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM bookings" + whereClause
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("booking: count list: %w", err)
	}

	return list, total, nil
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, fmt.Errorf("booking: get by id: %w", err)
	}
	return b, nil
}

func (r *PGRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	b, err := scanBooking(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, fmt.Errorf("booking: get for update: %w", err)
	}
	return b, nil
}

func (r *PGRepository) Update(ctx context.Context, tx pgx.Tx, b Booking) (Booking, error) {
	query := `
		UPDATE bookings
		SET listing_id = $2,
		    start_date = $3,
		    end_date = $4,
		    total_price_cents = $5
		WHERE id = $1
		RETURNING ` + bookingColumns

	row := tx.QueryRow(ctx, query, b.ID, b.ListingID, b.StartDate, b.EndDate, b.TotalPrice)
	updated, err := scanBooking(row)
	if err != nil {
		return Booking{}, fmt.Errorf("booking: update: %w", err)
	}
	return updated, nil
}

func (r *PGRepository) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("booking: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	return b, row.Scan(
		&b.ID,
		&b.ListingID,
		&b.UserID,
		&b.StartDate,
		&b.EndDate,
		&b.TotalPrice,
		&b.CreatedAt,
	)
}
