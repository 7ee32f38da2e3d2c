package money

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Cents
	}{
		{"150.00", 15000},
		{"100.00", 10000},
		{"150", 15000},
		{"150.5", 15050},
		{"0.99", 99},
		{"0", 0},
		{"-12.34", -1234},
		{"+7.00", 700},
		{" 42.10 ", 4210},
		{".50", 50},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsJunk(t *testing.T) {
	for _, in := range []string{
		"", "abc", "1.234", "10.0.0", "12,50", "1e3", ".",
		// signs are only legal as the very first character
		"1.-5", "7.+5", "--5", "+-5", "-+5", "5-", "1.5-",
		// int64 cents overflow
		"92233720368547758.08", "999999999999999999999",
	} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Parse(%q): expected ErrInvalidAmount, got %v", in, err)
		}
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		in   Cents
		want string
	}{
		{15000, "150.00"},
		{99, "0.99"},
		{0, "0.00"},
		{-1234, "-12.34"},
		{30000, "300.00"},
	}

	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("Cents(%d).String() = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	out, err := json.Marshal(Cents(15000))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"150.00"` {
		t.Fatalf("marshal: got %s", out)
	}

	var fromString Cents
	if err := json.Unmarshal([]byte(`"99.95"`), &fromString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if fromString != 9995 {
		t.Fatalf("unmarshal string: got %d", fromString)
	}

	var fromNumber Cents
	if err := json.Unmarshal([]byte(`150.00`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if fromNumber != 15000 {
		t.Fatalf("unmarshal number: got %d", fromNumber)
	}
}
