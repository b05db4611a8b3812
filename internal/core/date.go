package core

import (
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates, ISO 8601 without a time
// component.
const DateLayout = "2006-01-02"

// Date is a calendar date. The embedded time.Time is always midnight UTC so
// two Dates built from the same YYYY-MM-DD string compare equal.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Month returns the month as an int, 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// ISOWeek returns the ISO 8601 week and week-year the date falls in.
func (d Date) ISOWeek() (year, week int) {
	return d.Time.ISOWeek()
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON decodes a quoted YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
