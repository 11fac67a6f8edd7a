package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"habitflow/backend/core/calendar"
	"habitflow/backend/models"
)

func trackOn(t *testing.T, db *gorm.DB, habitID uint, daysAgo int) {
	t.Helper()
	require.NoError(t, db.Create(&models.TrackingLog{
		HabitID: habitID,
		Day:     calendar.AddDays(calendar.Today(), -daysAgo),
	}).Error)
}

func TestOverview(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)
	user := createUser(t, db, "carol")
	run := createHabit(t, db, user.ID, "Run")
	read := createHabit(t, db, user.ID, "Read")

	// Cross-habit streak: run covers today and yesterday, read covers
	// today only. Both habits together give a 2-day streak.
	trackOn(t, db, run.ID, 0)
	trackOn(t, db, run.ID, 1)
	trackOn(t, db, read.ID, 0)

	challenge := models.Challenge{Title: "C", DurationDays: 7, RewardXP: 20}
	require.NoError(t, db.Create(&challenge).Error)
	require.NoError(t, db.Create(&models.UserChallenge{
		UserID:      user.ID,
		ChallengeID: challenge.ID,
		Status:      models.StatusOngoing,
		StartDate:   calendar.Today(),
		EndDate:     calendar.AddDays(calendar.Today(), 6),
	}).Error)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("total_xp", 120).Error)

	overview, err := svc.Overview(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, overview.TotalHabits)
	assert.EqualValues(t, 1, overview.ActiveChallenges)
	assert.Equal(t, 120, overview.TotalXP)
	assert.Equal(t, 2, overview.CurrentStreak)
}

func TestOverviewEmptyUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)
	user := createUser(t, db, "carol")

	overview, err := svc.Overview(user.ID)
	require.NoError(t, err)
	assert.Zero(t, overview.TotalHabits)
	assert.Zero(t, overview.ActiveChallenges)
	assert.Zero(t, overview.TotalXP)
	assert.Zero(t, overview.CurrentStreak)
}

func TestHabitsDailyZeroFilledBuckets(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)
	user := createUser(t, db, "carol")
	run := createHabit(t, db, user.ID, "Run")
	read := createHabit(t, db, user.ID, "Read")

	trackOn(t, db, run.ID, 0)
	trackOn(t, db, read.ID, 0)
	trackOn(t, db, run.ID, 3)
	trackOn(t, db, run.ID, 10) // outside a 7-day window

	buckets, err := svc.HabitsDaily(user.ID, 7)
	require.NoError(t, err)
	require.Len(t, buckets, 7)

	// Ascending dates, zero-filled gaps.
	for i := 1; i < len(buckets); i++ {
		assert.Less(t, buckets[i-1].Date, buckets[i].Date)
	}
	assert.Equal(t, 2, buckets[6].Count)
	assert.Equal(t, 1, buckets[3].Count)
	assert.Equal(t, 0, buckets[5].Count)
}

func TestHabitsDailyIgnoresOtherUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)
	user := createUser(t, db, "carol")
	other := createUser(t, db, "dave")
	theirs := createHabit(t, db, other.ID, "Run")
	trackOn(t, db, theirs.ID, 0)

	buckets, err := svc.HabitsDaily(user.ID, 7)
	require.NoError(t, err)
	require.Len(t, buckets, 7)
	for _, b := range buckets {
		assert.Zero(t, b.Count)
	}
}

func completeChallengeAt(t *testing.T, db *gorm.DB, userID uint, rewardXP int, completedAt time.Time) {
	t.Helper()
	challenge := models.Challenge{Title: "C", DurationDays: 1, RewardXP: rewardXP}
	require.NoError(t, db.Create(&challenge).Error)
	require.NoError(t, db.Create(&models.UserChallenge{
		UserID:        userID,
		ChallengeID:   challenge.ID,
		Status:        models.StatusCompleted,
		StartDate:     calendar.StartOfDay(completedAt),
		EndDate:       calendar.StartOfDay(completedAt),
		CompletedDays: 1,
		CompletedAt:   &completedAt,
	}).Error)
}

func TestXPWeeklyBuckets(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)
	user := createUser(t, db, "carol")

	thisWeek := calendar.WeekStart(calendar.Today())
	completeChallengeAt(t, db, user.ID, 50, thisWeek.Add(6*time.Hour))
	completeChallengeAt(t, db, user.ID, 20, thisWeek.Add(30*time.Hour))
	completeChallengeAt(t, db, user.ID, 100, calendar.AddDays(thisWeek, -7))
	// Far outside the window: excluded even though it exists.
	completeChallengeAt(t, db, user.ID, 999, calendar.AddDays(thisWeek, -70))

	buckets, err := svc.XPWeekly(user.ID, 4)
	require.NoError(t, err)
	require.Len(t, buckets, 4)

	assert.Equal(t, calendar.Format(calendar.AddDays(thisWeek, -21)), buckets[0].WeekStart)
	assert.Equal(t, calendar.Format(thisWeek), buckets[3].WeekStart)
	assert.Equal(t, 70, buckets[3].XP)
	assert.Equal(t, 100, buckets[2].XP)
	assert.Equal(t, 0, buckets[1].XP)
	assert.Equal(t, 0, buckets[0].XP)
}

func TestTopHabitsOrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)
	user := createUser(t, db, "carol")
	run := createHabit(t, db, user.ID, "Run")
	read := createHabit(t, db, user.ID, "Read")
	swim := createHabit(t, db, user.ID, "Swim")

	trackOn(t, db, read.ID, 0) // discovered first
	trackOn(t, db, run.ID, 0)
	trackOn(t, db, run.ID, 1)
	trackOn(t, db, run.ID, 2)
	trackOn(t, db, swim.ID, 1) // ties with read; read was seen first

	top, err := svc.TopHabits(user.ID, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Run", top[0].Title)
	assert.Equal(t, 3, top[0].Count)
	assert.Equal(t, "Read", top[1].Title)
	assert.Equal(t, 1, top[1].Count)
}

func TestTopHabitsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)
	user := createUser(t, db, "carol")

	top, err := svc.TopHabits(user.ID, 5)
	require.NoError(t, err)
	assert.Empty(t, top)
}
