package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"staybook/access"
	"staybook/auth"
)

// TxBeginner abstracts pgxpool.Pool for testability.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Service struct {
	pool        TxBeginner
	repo        Repository
	idGenerator func() string
}

type CreateParams struct {
	ListingID string
	StartDate time.Time
	EndDate   time.Time
}

// UpdateParams carries a partial update; nil fields keep the stored value.
// The total price is recomputed from the merged fields regardless of which
// field changed.
type UpdateParams struct {
	ListingID *string
	StartDate *time.Time
	EndDate   *time.Time
}

type ListResult struct {
	Items []Booking
	Total int
}

func NewService(pool TxBeginner, repo Repository) *Service {
	return &Service{
		pool:        pool,
		repo:        repo,
		idGenerator: func() string { return uuid.NewString() },
	}
}

func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.idGenerator = gen
	return s
}

// Create books a listing for the principal. Any authenticated principal may
// book any existing listing; the booking's user is always the caller.
func (s *Service) Create(ctx context.Context, p auth.Principal, params CreateParams) (Booking, error) {
	if params.ListingID == "" {
		return Booking{}, ErrListingNotFound
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Booking{}, fmt.Errorf("booking: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rate, err := s.repo.ListingRate(ctx, tx, params.ListingID)
	if err != nil {
		return Booking{}, err
	}

	total, err := TotalPrice(params.StartDate, params.EndDate, rate)
	if err != nil {
		return Booking{}, err
	}

	b := Booking{
		ID:         s.idGenerator(),
		ListingID:  params.ListingID,
		UserID:     p.ID,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		TotalPrice: total,
	}

	created, err := s.repo.Create(ctx, tx, b)
	if err != nil {
		return Booking{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Booking{}, fmt.Errorf("booking: commit tx: %w", err)
	}
	return created, nil
}

// List returns the bookings inside the principal's read scope.
func (s *Service) List(ctx context.Context, p auth.Principal, filters Filters) (ListResult, error) {
	owner, all := access.ReadScope(p)
	if !all {
		filters.UserID = owner
	} else {
		filters.UserID = ""
	}

	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: items, Total: total}, nil
}

// Get retrieves one booking, hiding rows outside the read scope as not found.
func (s *Service) Get(ctx context.Context, p auth.Principal, id string) (Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	if !access.CanRead(p, b) {
		return Booking{}, ErrNotFound
	}
	return b, nil
}

// Update applies a partial update after the owner-or-admin check and
// recomputes the total from the merged listing and dates, even when only one
// of them changed.
func (s *Service) Update(ctx context.Context, p auth.Principal, id string, params UpdateParams) (Booking, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Booking{}, fmt.Errorf("booking: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	existing, err := s.repo.GetForUpdate(ctx, tx, id)
	if err != nil {
		return Booking{}, err
	}
	if !access.CanWrite(p, existing) {
		return Booking{}, ErrForbidden
	}

	merged := existing
	if params.ListingID != nil {
		merged.ListingID = *params.ListingID
	}
	if params.StartDate != nil {
		merged.StartDate = *params.StartDate
	}
	if params.EndDate != nil {
		merged.EndDate = *params.EndDate
	}

	rate, err := s.repo.ListingRate(ctx, tx, merged.ListingID)
	if err != nil {
		return Booking{}, err
	}
	merged.TotalPrice, err = TotalPrice(merged.StartDate, merged.EndDate, rate)
	if err != nil {
		return Booking{}, err
	}

	updated, err := s.repo.Update(ctx, tx, merged)
	if err != nil {
		return Booking{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Booking{}, fmt.Errorf("booking: commit tx: %w", err)
	}
	return updated, nil
}

// Delete removes a booking after the owner-or-admin check.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("booking: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	existing, err := s.repo.GetForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}
	if !access.CanWrite(p, existing) {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("booking: commit tx: %w", err)
	}
	return nil
}
