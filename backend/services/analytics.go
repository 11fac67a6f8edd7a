package services

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"habitflow/backend/apperr"
	"habitflow/backend/core/calendar"
	"habitflow/backend/core/streak"
	"habitflow/backend/models"
)

// AnalyticsService replays the tracking ledger and the enrollment history
// into time-bucketed rollups. It never mutates anything.
type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

// overviewLookback bounds the ledger rows fed into the cross-habit streak.
const overviewLookback = 1000

type Overview struct {
	TotalHabits      int64 `json:"totalHabits"`
	ActiveChallenges int64 `json:"activeChallenges"`
	TotalXP          int   `json:"totalXP"`
	CurrentStreak    int   `json:"currentStreak"`
}

type DailyBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type WeeklyBucket struct {
	WeekStart string `json:"weekStart"`
	XP        int    `json:"xp"`
}

type TopHabit struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

// Overview is the dashboard snapshot. currentStreak here is the
// cross-habit "did something" streak: a day counts if any of the user's
// habits has a log on it.
func (s *AnalyticsService) Overview(userID uint) (*Overview, error) {
	var out Overview

	if err := s.DB.Model(&models.Habit{}).
		Where("user_id = ?", userID).
		Count(&out.TotalHabits).Error; err != nil {
		return nil, apperr.Internal("count habits", err)
	}

	if err := s.DB.Model(&models.UserChallenge{}).
		Where("user_id = ? AND status = ?", userID, models.StatusOngoing).
		Count(&out.ActiveChallenges).Error; err != nil {
		return nil, apperr.Internal("count challenges", err)
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal("load user", err)
		}
	}
	out.TotalXP = user.TotalXP

	var days []time.Time
	if err := s.DB.Model(&models.TrackingLog{}).
		Joins("JOIN habits ON habits.id = tracking_logs.habit_id").
		Where("habits.user_id = ?", userID).
		Order("tracking_logs.day DESC").
		Limit(overviewLookback).
		Pluck("tracking_logs.day", &days).Error; err != nil {
		return nil, apperr.Internal("load tracking days", err)
	}
	// Same-day logs from different habits show up as duplicates, which
	// the streak walk skips.
	out.CurrentStreak = streak.Current(days, calendar.Today())

	return &out, nil
}

// HabitsDaily counts the user's tracking logs per day over the last
// `days` days. Always exactly `days` buckets, oldest first, zero-filled.
func (s *AnalyticsService) HabitsDaily(userID uint, days int) ([]DailyBucket, error) {
	if days < 1 {
		days = 30
	}
	end := calendar.Today()
	start := calendar.AddDays(end, -(days - 1))

	var logDays []time.Time
	if err := s.DB.Model(&models.TrackingLog{}).
		Joins("JOIN habits ON habits.id = tracking_logs.habit_id").
		Where("habits.user_id = ? AND tracking_logs.day >= ?", userID, start).
		Pluck("tracking_logs.day", &logDays).Error; err != nil {
		return nil, apperr.Internal("load tracking days", err)
	}

	counts := make(map[string]int, len(logDays))
	for _, d := range logDays {
		counts[calendar.Format(d)]++
	}

	buckets := make([]DailyBucket, 0, days)
	for _, d := range calendar.Range(start, end) {
		key := calendar.Format(d)
		buckets = append(buckets, DailyBucket{Date: key, Count: counts[key]})
	}
	return buckets, nil
}

// XPWeekly sums the reward XP of completed challenges into fixed weekly
// buckets keyed by week start. Completions outside the window are
// dropped even though they exist.
func (s *AnalyticsService) XPWeekly(userID uint, weeks int) ([]WeeklyBucket, error) {
	if weeks < 1 {
		weeks = 8
	}
	currentWeek := calendar.WeekStart(calendar.Today())

	index := make(map[string]int, weeks)
	buckets := make([]WeeklyBucket, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		wk := calendar.Format(calendar.AddDays(currentWeek, -7*i))
		index[wk] = len(buckets)
		buckets = append(buckets, WeeklyBucket{WeekStart: wk})
	}

	var completed []models.UserChallenge
	if err := s.DB.Preload("Challenge").
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Find(&completed).Error; err != nil {
		return nil, apperr.Internal("load completed challenges", err)
	}

	for _, uc := range completed {
		if uc.CompletedAt == nil {
			continue
		}
		wk := calendar.Format(calendar.WeekStart(*uc.CompletedAt))
		if i, ok := index[wk]; ok {
			buckets[i].XP += uc.Challenge.RewardXP
		}
	}
	return buckets, nil
}

// TopHabits ranks the user's habits by all-time tracking-log count,
// descending, ties broken by the order the habit first appears in the
// ledger.
func (s *AnalyticsService) TopHabits(userID uint, limit int) ([]TopHabit, error) {
	if limit < 1 {
		limit = 5
	}

	var rows []struct {
		HabitID uint
		Title   string
	}
	if err := s.DB.Model(&models.TrackingLog{}).
		Select("tracking_logs.habit_id, habits.title").
		Joins("JOIN habits ON habits.id = tracking_logs.habit_id").
		Where("habits.user_id = ?", userID).
		Order("tracking_logs.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, apperr.Internal("load tracking logs", err)
	}

	counts := make(map[uint]int, len(rows))
	top := []TopHabit{}
	for _, r := range rows {
		if counts[r.HabitID] == 0 {
			top = append(top, TopHabit{ID: r.HabitID, Title: r.Title})
		}
		counts[r.HabitID]++
	}
	for i := range top {
		top[i].Count = counts[top[i].ID]
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}
