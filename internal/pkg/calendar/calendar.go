package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage layout for calendar dates.
const DateLayout = "2006-01-02"

// Date builds a calendar date at UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize drops the clock part of t, keeping its calendar date.
func Normalize(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Parse parses a YYYY-MM-DD date.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}

// DayNumber returns the number of days between the Unix epoch and the
// calendar date of t. Only differences between day numbers are meaningful.
func DayNumber(t time.Time) int {
	return int(Normalize(t).Unix() / 86400)
}

// DaysInclusive counts the calendar days in [start, end]. The result is
// zero or negative when end is before start.
func DaysInclusive(start, end time.Time) int {
	return DayNumber(end) - DayNumber(start) + 1
}

// Overlaps reports whether the inclusive ranges [aStart, aEnd] and
// [bStart, bEnd] share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !Normalize(aStart).After(Normalize(bEnd)) && !Normalize(aEnd).Before(Normalize(bStart))
}

// BeforeDate reports whether the calendar date of a is strictly before b's.
func BeforeDate(a, b time.Time) bool {
	return Normalize(a).Before(Normalize(b))
}
