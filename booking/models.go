package booking

import (
	"errors"
	"time"

	"staybook/money"
)

var (
	// ErrNotFound is returned when no booking is visible to the caller under
	// the given identifier.
	ErrNotFound = errors.New("booking: not found")
	// ErrForbidden signals a write attempt by a principal that is neither the
	// booking's user nor an admin.
	ErrForbidden = errors.New("booking: forbidden")
	// ErrInvalidDateRange signals an end date on or before the start date.
	ErrInvalidDateRange = errors.New("booking: end date must be after start date")
	// ErrListingNotFound signals a booking that references a listing which
	// does not exist.
	ErrListingNotFound = errors.New("booking: listing not found")
)

// Booking mirrors the bookings table. Dates are calendar dates at UTC
// midnight; TotalPrice is always server-computed, never taken from a payload.
type Booking struct {
	ID         string
	ListingID  string
	UserID     string
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice money.Cents
	CreatedAt  time.Time
}

// OwnedBy identifies the booking's user for the shared authorization rule.
func (b Booking) OwnedBy() string { return b.UserID }

// Filters narrows list queries. UserID is set from the caller's read scope.
type Filters struct {
	UserID    string
	ListingID string
	Page      int
	PageSize  int
}
