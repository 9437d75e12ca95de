// Package dates holds the calendar helpers shared by the resolver, the API and
// the CLI. Date keys are the canonical identity for log and override lookups.
package dates

import (
	"fmt"
	"time"
)

const (
	KeyLayout   = "2006-01-02"
	MonthLayout = "2006-01"

	// GridCells is six full weeks.
	GridCells = 42
)

var Weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Key formats t as YYYY-MM-DD from t's own calendar fields; no timezone
// conversion is applied.
func Key(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseKey parses a strict YYYY-MM-DD key as midnight UTC.
func ParseKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	return t, nil
}

// ParseMonth parses YYYY-MM as the first of that month, UTC.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.ParseInLocation(MonthLayout, month, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse month %q: %w", month, err)
	}
	return t, nil
}

// MonthGrid returns 42 consecutive dates starting on the Sunday on or before the
// first of anchor's month, in anchor's location.
func MonthGrid(anchor time.Time) []time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]time.Time, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		cells = append(cells, start.AddDate(0, 0, i))
	}
	return cells
}

func WeekdayName(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return Weekdays[weekday]
}
