// Package core holds the domain model and the pure aggregation logic of the
// budget tracker.
//
// This file contains the Money representation and decimal parsing. Amounts
// are kept as integer cents internally so sums stay exact; the persisted
// form is a plain decimal number with two fractional digits.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Money is a monetary amount in cents of the selected currency. The currency
// itself is a display label held on AppState, never a conversion factor.
type Money struct {
	Cents int64
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns m - o. The result may be negative (net balance).
func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

// Decimal renders the amount as a plain decimal string with two fractional
// digits, e.g. "1200.00" or "-3.50".
func (m Money) Decimal() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
	if neg {
		return "-" + s
	}
	return s
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// MarshalJSON encodes the amount as an unquoted decimal number with two
// fractional digits, matching the persisted document layout.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string. Anything
// beyond two fractional digits is rounded half-up on the third.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		m.Cents = 0
		return nil
	}
	neg := strings.HasPrefix(s, "-")
	cents, err := parseAbsoluteCents(strings.TrimPrefix(s, "-"))
	if err != nil {
		return err
	}
	if neg {
		cents = -cents
	}
	m.Cents = cents
	return nil
}

// parseDecimalToCents converts a positive decimal string to cents with
// half-up rounding on the third decimal place. Both dot and comma decimal
// separators are accepted. Zero and negative values are rejected.
func parseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	cents, err := parseAbsoluteCents(s)
	if err != nil {
		return 0, err
	}
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

func parseAbsoluteCents(s string) (int64, error) {
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// First two fractional digits are cents; the third decides rounding.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}
