package review

import (
	"context"
	"errors"
	"testing"

	"staybook/auth"
)

func TestCreate_ForcesUserToPrincipal(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo).WithIDGenerator(func() string { return "fixed-id" })

	created, err := svc.Create(context.Background(), auth.Principal{ID: "user-1"}, CreateParams{
		ListingID: "l1",
		Rating:    5,
		Comment:   "great stay",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.UserID != "user-1" {
		t.Fatalf("expected forced user user-1, got %q", created.UserID)
	}
	if created.ID != "fixed-id" {
		t.Fatalf("expected generated id, got %q", created.ID)
	}
}

func TestCreate_RatingBounds(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	p := auth.Principal{ID: "user-1"}

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := svc.Create(context.Background(), p, CreateParams{ListingID: "l1", Rating: rating})
		if !errors.Is(err, ErrInvalidRating) {
			t.Errorf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
	if repo.created {
		t.Fatal("expected nothing persisted on validation failure")
	}

	for rating := 1; rating <= 5; rating++ {
		if _, err := svc.Create(context.Background(), p, CreateParams{ListingID: "l1", Rating: rating}); err != nil {
			t.Errorf("rating %d: unexpected error: %v", rating, err)
		}
	}
}

func TestCreate_UnknownListing(t *testing.T) {
	repo := &fakeRepo{createErr: ErrListingNotFound}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), auth.Principal{ID: "user-1"}, CreateParams{ListingID: "missing", Rating: 4})
	if !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

type fakeRepo struct {
	stored    Review
	createErr error
	created   bool
}

func (f *fakeRepo) Create(_ context.Context, rev Review) (Review, error) {
	if f.createErr != nil {
		return Review{}, f.createErr
	}
	f.created = true
	f.stored = rev
	return rev, nil
}

func (f *fakeRepo) ListForListing(_ context.Context, _ string) ([]Review, error) {
	return []Review{f.stored}, nil
}

func (f *fakeRepo) GetByID(_ context.Context, _ string) (Review, error) {
	return f.stored, nil
}
