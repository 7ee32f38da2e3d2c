package listing

import (
	"errors"
	"time"

	"staybook/money"
)

// MaxTitleLen mirrors the 200-character column limit on listings.title.
const MaxTitleLen = 200

var (
	// ErrNotFound is returned when no listing is visible to the caller under
	// the given identifier.
	ErrNotFound = errors.New("listing: not found")
	// ErrForbidden signals a write attempt by a principal that is neither the
	// owner nor an admin.
	ErrForbidden = errors.New("listing: forbidden")
	// ErrEmptyTitle signals a title that is empty after trimming whitespace.
	ErrEmptyTitle = errors.New("listing: title must not be empty")
	// ErrTitleTooLong signals a title beyond the column limit.
	ErrTitleTooLong = errors.New("listing: title too long")
	// ErrNegativePrice signals a nightly rate below zero.
	ErrNegativePrice = errors.New("listing: price per night must not be negative")
)

// Listing mirrors the listings table.
type Listing struct {
	ID            string
	Title         string
	Description   string
	PricePerNight money.Cents
	OwnerID       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OwnedBy identifies the listing's owner for the shared authorization rule.
func (l Listing) OwnedBy() string { return l.OwnerID }

// Filters narrows list queries. OwnerID is set from the caller's read scope,
// not from client input.
type Filters struct {
	OwnerID  string
	Page     int
	PageSize int
}
