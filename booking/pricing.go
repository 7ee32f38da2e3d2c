package booking

import (
	"time"

	"staybook/money"
)

// Nights returns the whole-day difference between two calendar dates. The
// inputs carry no time-of-day component, so plain division is exact.
func Nights(start, end time.Time) int {
	return int(end.Sub(start) / (24 * time.Hour))
}

// TotalPrice derives a booking's price from its date range and the listing's
// nightly rate. It re-checks the date order because partial updates may reach
// pricing with dates the field-level validation never saw together.
func TotalPrice(start, end time.Time, nightly money.Cents) (money.Cents, error) {
	nights := Nights(start, end)
	if nights <= 0 {
		return 0, ErrInvalidDateRange
	}
	return money.Cents(nights) * nightly, nil
}
