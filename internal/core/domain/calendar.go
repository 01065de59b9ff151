package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	DisplayLayout = "Mon, Jan 2"
	daysPerWeek   = 7
)

// ParseDate reads an API date (YYYY-MM-DD, surrounding spaces allowed) as UTC
// midnight. Malformed input wraps ErrInvalidArgument.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidArgument, s)
	}
	return t, nil
}

// TruncateDay returns midnight of t's calendar day, keeping t's location.
// time.Truncate works on absolute time and would cut at UTC midnight instead.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart returns the weekStartsOn day on or before t.
func WeekStart(t time.Time, weekStartsOn time.Weekday) time.Time {
	day := TruncateDay(t)
	diff := (int(day.Weekday()) - int(weekStartsOn) + daysPerWeek) % daysPerWeek
	return day.AddDate(0, 0, -diff)
}

// WeekEnd returns the Sunday closing the Monday-based week containing t.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t, time.Monday).AddDate(0, 0, daysPerWeek-1)
}

// WeekOf resolves the canonical Monday–Sunday window for an API date string.
func WeekOf(s string) (time.Time, time.Time, error) {
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return WeekStart(t, time.Monday), WeekEnd(t), nil
}

// DaysBetween counts calendar days from one date to another, ignoring time
// of day and DST shifts. The result is negative when to is before from.
func DaysBetween(from, to time.Time) int {
	return int(civil(to).Sub(civil(from)).Hours() / 24)
}

// FormatDate renders t as an API date, YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDisplayDate renders t for prompts and messages, e.g. "Mon, Jan 2".
func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayLayout)
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string {
	return civil(t).Format(DateLayout)
}
