// Package streak derives consecutive-day streaks from completion days.
package streak

import (
	"time"

	"habitflow/backend/core/calendar"
)

// MaxLookback bounds how many ledger rows callers should feed the
// calculator. A true streak longer than this is truncated; accepted
// approximation to keep the walk cheap.
const MaxLookback = 365

// Current returns the number of consecutive completed days ending at
// today. days must be ordered newest first; duplicates are tolerated.
//
// The walk keeps an expected day starting at today: a day equal to the
// expectation counts and moves it back by one, a strictly older day
// means a gap and ends the streak, a newer day (duplicate or stray
// future entry) is skipped.
func Current(days []time.Time, today time.Time) int {
	count := 0
	expected := calendar.StartOfDay(today)
	for _, d := range days {
		d = calendar.StartOfDay(d)
		switch {
		case d.Equal(expected):
			count++
			expected = calendar.AddDays(expected, -1)
		case d.Before(expected):
			return count
		}
	}
	return count
}
