package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 14, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), StartOfDay(ts))

	// Non-UTC inputs normalize to the UTC day they fall on.
	loc := time.FixedZone("UTC+5", 5*3600)
	early := time.Date(2025, 3, 14, 2, 0, 0, 0, loc) // 2025-03-13 21:00 UTC
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), StartOfDay(early))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 3, 14, 0, 0, 1, 0, time.UTC)
	b := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)
	c := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))
}

func TestRange(t *testing.T) {
	start := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 16, 4, 0, 0, 0, time.UTC)

	days := Range(start, end)
	assert.Len(t, days, 3)
	assert.Equal(t, "2025-03-14", Format(days[0]))
	assert.Equal(t, "2025-03-16", Format(days[2]))

	assert.Nil(t, Range(end, start))
	assert.Len(t, Range(start, start), 1)
}

func TestWeekStart(t *testing.T) {
	// 2025-03-14 is a Friday; the week starts Sunday 2025-03-09.
	friday := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-09", Format(WeekStart(friday)))

	sunday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, sunday, WeekStart(sunday))
}

func TestAddDays(t *testing.T) {
	day := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-01", Format(AddDays(day, 1)))
	assert.Equal(t, "2025-02-21", Format(AddDays(day, -7)))
}
