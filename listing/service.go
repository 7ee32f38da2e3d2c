package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"staybook/access"
	"staybook/auth"
	"staybook/money"
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
	Title         string
	Description   string
	PricePerNight money.Cents
}

// UpdateParams carries a partial update; nil fields keep the stored value.
type UpdateParams struct {
	Title         *string
	Description   *string
	PricePerNight *money.Cents
}

type ListResult struct {
	Items []Listing
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

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len([]rune(title)) > MaxTitleLen {
		return ErrTitleTooLong
	}
	return nil
}

// Create persists a new listing owned by the principal. Whatever owner the
// payload claimed is irrelevant: ownership always lands on the caller.
func (s *Service) Create(ctx context.Context, p auth.Principal, params CreateParams) (Listing, error) {
	if err := validateTitle(params.Title); err != nil {
		return Listing{}, err
	}
	if params.PricePerNight < 0 {
		return Listing{}, ErrNegativePrice
	}

	l := Listing{
		ID:            s.idGenerator(),
		Title:         params.Title,
		Description:   params.Description,
		PricePerNight: params.PricePerNight,
		OwnerID:       p.ID,
	}

	return s.repo.Create(ctx, l)
}

// List returns the listings inside the principal's read scope.
func (s *Service) List(ctx context.Context, p auth.Principal, filters Filters) (ListResult, error) {
	owner, all := access.ReadScope(p)
	if !all {
		filters.OwnerID = owner
	} else {
		filters.OwnerID = ""
	}

	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: items, Total: total}, nil
}

// Get retrieves one listing. Rows outside the read scope surface as not
// found so their existence is never leaked.
func (s *Service) Get(ctx context.Context, p auth.Principal, id string) (Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Listing{}, err
	}
	if !access.CanRead(p, l) {
		return Listing{}, ErrNotFound
	}
	return l, nil
}

// Update applies a partial update after the owner-or-admin check. Validation
// runs against the merged record, so a payload that omits the title cannot
// dodge the non-empty rule.
func (s *Service) Update(ctx context.Context, p auth.Principal, id string, params UpdateParams) (Listing, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Listing{}, fmt.Errorf("listing: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	existing, err := s.repo.GetForUpdate(ctx, tx, id)
	if err != nil {
		return Listing{}, err
	}
	if !access.CanWrite(p, existing) {
		return Listing{}, ErrForbidden
	}

	merged := existing
	if params.Title != nil {
		merged.Title = *params.Title
	}
	if params.Description != nil {
		merged.Description = *params.Description
	}
	if params.PricePerNight != nil {
		merged.PricePerNight = *params.PricePerNight
	}

	if err := validateTitle(merged.Title); err != nil {
		return Listing{}, err
	}
	if merged.PricePerNight < 0 {
		return Listing{}, ErrNegativePrice
	}

	updated, err := s.repo.Update(ctx, tx, merged)
	if err != nil {
		return Listing{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Listing{}, fmt.Errorf("listing: commit tx: %w", err)
	}
	return updated, nil
}

// Delete removes a listing and, through the schema's cascade, its bookings
// and reviews.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("listing: begin tx: %w", err)
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
		return fmt.Errorf("listing: commit tx: %w", err)
	}
	return nil
}
