// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// DayOf returns the calendar day of t as seen in loc, encoded as midnight UTC.
// Every `date` column is written and compared in this form so that the day
// boundary follows the business timezone while the stored value carries no
// offset.
func DayOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts "YYYY-MM-DD" or an RFC 3339 timestamp and returns the
// calendar day as midnight UTC. Timestamps keep the date of their own offset.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// ParseMonth turns "YYYY-MM" into the first and last calendar day of that month.
func ParseMonth(raw string) (time.Time, time.Time, error) {
	first, err := time.Parse(MonthLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", raw)
	}
	last := first.AddDate(0, 1, -1)
	return first, last, nil
}

// InclusiveDays counts calendar days from start to end, both included.
// Order does not matter.
func InclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	diff := e.Sub(s)
	if diff < 0 {
		diff = -diff
	}
	return int(diff/(24*time.Hour)) + 1
}

// Overlaps reports whether the closed day ranges [aStart, aEnd] and
// [bStart, bEnd] share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}
