// Package calendar normalizes timestamps to canonical calendar days.
// Every component that compares or walks days goes through it, so the
// whole engine shares a single day definition: midnight UTC.
package calendar

import "time"

// DateLayout is the wire format for day values.
const DateLayout = "2006-01-02"

// StartOfDay returns the canonical day value for t: midnight UTC of the
// calendar day t falls on. Two timestamps are the same day iff their
// StartOfDay values are equal.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the canonical value of the current day.
func Today() time.Time {
	return StartOfDay(time.Now())
}

// AddDays shifts a day value by n calendar days (n may be negative).
func AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// Range enumerates every day from start to end inclusive, ascending.
// Returns nil if start is after end.
func Range(start, end time.Time) []time.Time {
	start, end = StartOfDay(start), StartOfDay(end)
	if start.After(end) {
		return nil
	}
	var days []time.Time
	for d := start; !d.After(end); d = AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// WeekStart returns the Sunday beginning the week t falls in.
func WeekStart(t time.Time) time.Time {
	day := StartOfDay(t)
	return AddDays(day, -int(day.Weekday()))
}

// Format renders a day value as YYYY-MM-DD.
func Format(t time.Time) string {
	return StartOfDay(t).Format(DateLayout)
}
