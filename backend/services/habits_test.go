package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitflow/backend/apperr"
	"habitflow/backend/core/calendar"
	"habitflow/backend/models"
)

func TestCreateHabitValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(db)
	user := createUser(t, db, "carol")

	_, err := svc.Create(user.ID, CreateHabitInput{Title: "Run", Frequency: "hourly"})
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	_, err = svc.Create(user.ID, CreateHabitInput{Frequency: "daily"})
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	habit, err := svc.Create(user.ID, CreateHabitInput{Title: "Run", Frequency: "daily", Tags: []string{"health"}})
	require.NoError(t, err)
	assert.Equal(t, user.ID, habit.UserID)
	assert.Equal(t, 0, habit.CompletedCount)
}

func TestListHabitsTagFilterAndPaging(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(db)
	user := createUser(t, db, "carol")

	_, err := svc.Create(user.ID, CreateHabitInput{Title: "Run", Frequency: "daily", Tags: []string{"health", "outdoors"}})
	require.NoError(t, err)
	_, err = svc.Create(user.ID, CreateHabitInput{Title: "Read", Frequency: "daily", Tags: []string{"mind"}})
	require.NoError(t, err)
	_, err = svc.Create(user.ID, CreateHabitInput{Title: "Swim", Frequency: "weekly", Tags: []string{"health"}})
	require.NoError(t, err)

	habits, total, err := svc.List(user.ID, "health", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, habits, 2)

	habits, total, err = svc.List(user.ID, "", 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, habits, 2)

	// Another user sees nothing.
	other := createUser(t, db, "dave")
	_, total, err = svc.List(other.ID, "", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTrackHabit(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(db)
	user := createUser(t, db, "carol")
	habit := createHabit(t, db, user.ID, "Run")

	entry, err := svc.Track(user.ID, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, habit.ID, entry.HabitID)
	assert.True(t, calendar.SameDay(entry.Day, calendar.Today()))

	var reloaded models.Habit
	require.NoError(t, db.First(&reloaded, habit.ID).Error)
	assert.Equal(t, 1, reloaded.CompletedCount)
	assert.Equal(t, 1, reloaded.LongestStreak)
}

func TestTrackHabitTwiceSameDayConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(db)
	user := createUser(t, db, "carol")
	habit := createHabit(t, db, user.ID, "Run")

	_, err := svc.Track(user.ID, habit.ID)
	require.NoError(t, err)

	_, err = svc.Track(user.ID, habit.ID)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// The failed attempt left no trace: one ledger row, counter still 1.
	var count int64
	require.NoError(t, db.Model(&models.TrackingLog{}).Where("habit_id = ?", habit.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var reloaded models.Habit
	require.NoError(t, db.First(&reloaded, habit.ID).Error)
	assert.Equal(t, 1, reloaded.CompletedCount)
}

func TestTrackHabitNotOwned(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(db)
	owner := createUser(t, db, "carol")
	stranger := createUser(t, db, "mallory")
	habit := createHabit(t, db, owner.ID, "Run")

	_, err := svc.Track(stranger.ID, habit.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestStreakAfterGapRestartsAtOne(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(db)
	user := createUser(t, db, "carol")
	habit := createHabit(t, db, user.ID, "Run")

	// Days 1,2,3 consecutive ending two days before today, then a gap.
	today := calendar.Today()
	for _, off := range []int{4, 3, 2} {
		require.NoError(t, db.Create(&models.TrackingLog{
			HabitID: habit.ID,
			Day:     calendar.AddDays(today, -off),
		}).Error)
	}

	_, err := svc.Track(user.ID, habit.ID)
	require.NoError(t, err)

	_, current, err := svc.Get(user.ID, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, current)
}

func TestLongestStreakHighWaterMark(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(db)
	user := createUser(t, db, "carol")
	habit := createHabit(t, db, user.ID, "Run")

	// Two days leading into today give a 3-day run once today is tracked.
	today := calendar.Today()
	for _, off := range []int{2, 1} {
		require.NoError(t, db.Create(&models.TrackingLog{
			HabitID: habit.ID,
			Day:     calendar.AddDays(today, -off),
		}).Error)
	}

	_, err := svc.Track(user.ID, habit.ID)
	require.NoError(t, err)

	var reloaded models.Habit
	require.NoError(t, db.First(&reloaded, habit.ID).Error)
	assert.Equal(t, 3, reloaded.LongestStreak)
}

func TestHistoryFixedWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(db)
	user := createUser(t, db, "carol")
	habit := createHabit(t, db, user.ID, "Run")

	today := calendar.Today()
	for _, off := range []int{0, 2, 9} { // the 9-days-ago log is outside the window
		require.NoError(t, db.Create(&models.TrackingLog{
			HabitID: habit.ID,
			Day:     calendar.AddDays(today, -off),
		}).Error)
	}

	history, err := svc.History(user.ID, habit.ID, 7)
	require.NoError(t, err)
	require.Len(t, history, 7)

	// Oldest first, ending at today.
	assert.Equal(t, calendar.Format(calendar.AddDays(today, -6)), history[0].Date)
	assert.Equal(t, calendar.Format(today), history[6].Date)
	assert.True(t, history[6].Completed)
	assert.True(t, history[4].Completed)
	assert.False(t, history[5].Completed)

	completed := 0
	for _, h := range history {
		if h.Completed {
			completed++
		}
	}
	assert.Equal(t, 2, completed)
}

func TestDeleteHabitCascadesLogs(t *testing.T) {
	db := newTestDB(t)
	svc := NewHabitService(db)
	user := createUser(t, db, "carol")
	habit := createHabit(t, db, user.ID, "Run")

	_, err := svc.Track(user.ID, habit.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID, habit.ID))

	var logs int64
	require.NoError(t, db.Model(&models.TrackingLog{}).Where("habit_id = ?", habit.ID).Count(&logs).Error)
	assert.Zero(t, logs)

	err = svc.Delete(user.ID, habit.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
