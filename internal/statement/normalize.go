package statement

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row-level normalization errors. These skip the row, they never abort the
// file.
var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrIncompleteRow = errors.New("row is missing date, description or amount")
)

// structuredDateLayouts are tried in order; the first structural match wins.
// Day always precedes month, so "01-02-2024" is February 1st, never
// January 2nd.
var structuredDateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
}

// genericDateLayouts is the fallback for dates that match none of the
// structured layouts.
var genericDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02.01.2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// ParseDate parses the heterogeneous date representations seen in statement
// exports into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	for _, layout := range structuredDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseAmount normalizes a raw amount string into a signed decimal. Every
// character except digits, '.', ',' and '-' is stripped, then the first
// remaining ',' becomes the decimal separator. Empty, non-numeric and
// exactly-zero results are row errors: a 0.00 line carries no financial
// information and usually signals a wrong column or a stray character.
func ParseAmount(s string) (decimal.Decimal, error) {
	stripped := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			return r
		}
		return -1
	}, s)

	if stripped == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: %q has no numeric content", ErrInvalidAmount, s)
	}

	normalized := strings.Replace(stripped, ",", ".", 1)

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsZero() {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is zero", ErrInvalidAmount, s)
	}
	return d, nil
}
