package timetricks

import (
	"fmt"
	"iter"
	"time"
)

const dayFormat = "2006-01-02"

// Date is a calendar date with no time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{y, m, d}
}

// ParseDate parses an ISO-8601 date such as 2024-03-01.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("date %q not in fmt %q: %w", s, dayFormat, err)
	}
	return DateOf(t), nil
}

// Midnight returns the first instant of d in loc.
func (d Date) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the date n days after d. Month and year boundaries are
// handled by time.Date normalization, which is done in UTC so that DST
// transitions cannot shift the result.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Weekday returns the day of the week d falls on.
func (d Date) Weekday() time.Weekday {
	return d.Midnight(time.UTC).Weekday()
}

// String returns d in ISO-8601 form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Window yields the n consecutive dates starting at start. The sequence can
// be ranged over any number of times.
func Window(start Date, n int) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for i := 0; i < n; i++ {
			if !yield(start.AddDays(i)) {
				return
			}
		}
	}
}
