package review

import (
	"context"

	"github.com/google/uuid"

	"staybook/auth"
)

// Service exposes the review surface. Reviews are append-only: once posted
// they can be read but not edited or removed.
type Service struct {
	repo        Repository
	idGenerator func() string
}

type CreateParams struct {
	ListingID string
	Rating    int
	Comment   string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:        repo,
		idGenerator: func() string { return uuid.NewString() },
	}
}

func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.idGenerator = gen
	return s
}

// Create stores a review authored by the principal.
func (s *Service) Create(ctx context.Context, p auth.Principal, params CreateParams) (Review, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	if params.ListingID == "" {
		return Review{}, ErrListingNotFound
	}

	rev := Review{
		ID:        s.idGenerator(),
		ListingID: params.ListingID,
		UserID:    p.ID,
		Rating:    params.Rating,
		Comment:   params.Comment,
	}

	return s.repo.Create(ctx, rev)
}

// ListForListing returns all reviews of a listing, newest first.
func (s *Service) ListForListing(ctx context.Context, listingID string) ([]Review, error) {
	return s.repo.ListForListing(ctx, listingID)
}

// Get retrieves one review.
func (s *Service) Get(ctx context.Context, id string) (Review, error) {
	return s.repo.GetByID(ctx, id)
}
