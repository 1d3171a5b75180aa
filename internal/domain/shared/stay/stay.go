// Package stay models calendar nights and half-open stay intervals.
// A DateKey is a single calendar date: one bookable unit for a property.
package stay

import (
	"time"

	"dreamstay/internal/domain/shared/apperr"
)

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// DateKey is a calendar date pinned to UTC midnight.
type DateKey struct {
	t time.Time
}

// ParseDate parses a YYYY-MM-DD string into a DateKey.
func ParseDate(s string) (DateKey, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return DateKey{}, apperr.Validation("invalid date format, use YYYY-MM-DD")
	}
	return DateKey{t: t.UTC()}, nil
}

// DateOf truncates an instant to its UTC calendar date.
func DateOf(t time.Time) DateKey {
	t = t.UTC()
	return DateKey{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d DateKey) String() string {
	return d.t.Format(Layout)
}

func (d DateKey) Time() time.Time {
	return d.t
}

func (d DateKey) IsZero() bool {
	return d.t.IsZero()
}

func (d DateKey) Before(other DateKey) bool {
	return d.t.Before(other.t)
}

func (d DateKey) After(other DateKey) bool {
	return d.t.After(other.t)
}

func (d DateKey) Equal(other DateKey) bool {
	return d.t.Equal(other.t)
}

// Next returns the following calendar date.
func (d DateKey) Next() DateKey {
	return DateKey{t: d.t.AddDate(0, 0, 1)}
}

// Stay is a half-open interval [CheckIn, CheckOut): the check-out date itself
// is not a night of the stay.
type Stay struct {
	CheckIn  DateKey
	CheckOut DateKey
}

// New validates the interval. A zero-length or inverted range is rejected
// before any store access happens.
func New(checkIn, checkOut DateKey) (Stay, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return Stay{}, apperr.Validation("check_in and check_out are required")
	}
	if !checkOut.After(checkIn) {
		return Stay{}, apperr.Validation("check-out must be after check-in")
	}
	return Stay{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// ParseRange parses two date strings and validates them as a stay.
func ParseRange(checkIn, checkOut string) (Stay, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return Stay{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return Stay{}, err
	}
	return New(in, out)
}

// Nights is the number of date keys in the interval; a 3-night stay spans
// exactly 3 keys.
func (s Stay) Nights() int {
	return int(s.CheckOut.t.Sub(s.CheckIn.t).Hours() / 24)
}

// Dates enumerates the stay's nights in ascending order.
func (s Stay) Dates() []DateKey {
	nights := s.Nights()
	if nights <= 0 {
		return nil
	}
	dates := make([]DateKey, 0, nights)
	for d := s.CheckIn; d.Before(s.CheckOut); d = d.Next() {
		dates = append(dates, d)
	}
	return dates
}

func (s Stay) Overlaps(other Stay) bool {
	return s.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(s.CheckOut)
}
