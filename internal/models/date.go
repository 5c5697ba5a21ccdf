// Package models defines the data structures for the premium leave engine.
package models

import (
	"fmt"
	"time"
)

// Supported year range for parsed dates.
const (
	MinYear = 1900
	MaxYear = 2100
)

// Date is a calendar date without a time component.
// The zero value is not a valid date; use NewDate to construct one.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates the components and returns the date.
// It reports false when the year is outside [MinYear, MaxYear], the month is
// outside [1, 12] or the day does not exist in that month.
func NewDate(year int, month time.Month, day int) (Date, bool) {
	if year < MinYear || year > MaxYear {
		return Date{}, false
	}
	if month < time.January || month > time.December {
		return Date{}, false
	}
	if day < 1 || day > DaysIn(year, month) {
		return Date{}, false
	}
	return Date{Year: year, Month: month, Day: day}, true
}

// MustDate is NewDate for literals known to be valid. It panics otherwise.
func MustDate(year int, month time.Month, day int) Date {
	d, ok := NewDate(year, month, day)
	if !ok {
		panic(fmt.Sprintf("models: invalid date %04d-%02d-%02d", year, month, day))
	}
	return d
}

// DateFromTime truncates t to its calendar date in t's location.
func DateFromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days later (earlier when n is negative).
func (d Date) AddDays(n int) Date {
	return DateFromTime(d.Time().AddDate(0, 0, n))
}

// DaysSinceEpoch returns the number of days since 1970-01-01.
func (d Date) DaysSinceEpoch() int64 {
	return d.Time().Unix() / 86400
}

// DaysBetween returns to - from in whole days.
func DaysBetween(from, to Date) int {
	return int(to.DaysSinceEpoch() - from.DaysSinceEpoch())
}

func (d Date) Before(other Date) bool { return d.DaysSinceEpoch() < other.DaysSinceEpoch() }
func (d Date) After(other Date) bool  { return d.DaysSinceEpoch() > other.DaysSinceEpoch() }
func (d Date) Equal(other Date) bool  { return d == other }
func (d Date) IsZero() bool           { return d == Date{} }

// String formats the date as DD/MM/YYYY.
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// ISO formats the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText encodes the date in ISO form; the zero date encodes as "".
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.ISO()), nil
}

// UnmarshalText decodes an ISO date.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	t, err := time.Parse("2006-01-02", string(b))
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", string(b), err)
	}
	parsed, ok := NewDate(t.Year(), t.Month(), t.Day())
	if !ok {
		return fmt.Errorf("date %q out of supported range", string(b))
	}
	*d = parsed
	return nil
}
