package review

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no review exists for the identifier.
	ErrNotFound = errors.New("review: not found")
	// ErrInvalidRating signals a rating outside 1..5.
	ErrInvalidRating = errors.New("review: rating must be between 1 and 5")
	// ErrListingNotFound signals a review that references a listing which
	// does not exist.
	ErrListingNotFound = errors.New("review: listing not found")
)

// Review mirrors the reviews table. The user field is always the requester;
// reviews are readable by anyone but expose no mutation operations.
type Review struct {
	ID        string
	ListingID string
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
