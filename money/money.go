package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents stores a monetary amount as an integer count of cents. Keeping prices
// in integer cents preserves the two-fractional-digit scale exactly across
// arithmetic, with no float rounding.
type Cents int64

// ErrInvalidAmount signals a string that cannot be read as a decimal amount
// with at most two fractional digits.
var ErrInvalidAmount = errors.New("money: invalid amount")

// Parse reads a decimal string like "150.00", "150.5" or "150" into Cents.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, ErrInvalidAmount
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: more than two fractional digits in %q", ErrInvalidAmount, s)
	}
	if whole == "" {
		whole = "0"
	}
	for len(frac) < 2 {
		frac += "0"
	}

	// ParseInt alone would admit a second sign inside either part.
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	cents64, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if units > (math.MaxInt64-cents64)/100 {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidAmount, s)
	}

	total := units*100 + cents64
	if neg {
		total = -total
	}
	return Cents(total), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String renders the amount with exactly two fractional digits.
func (c Cents) String() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON renders the amount as a decimal string, e.g. "150.00".
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

// UnmarshalJSON accepts either a quoted decimal string or a bare JSON number.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
