package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"habitflow/backend/apperr"
	"habitflow/backend/core/calendar"
	"habitflow/backend/core/streak"
	"habitflow/backend/models"
)

// HabitService owns the habit catalog and its tracking ledger. All
// completion writes go through Track so the counter updates and the
// longest-streak high-water mark move together.
type HabitService struct {
	DB *gorm.DB
}

func NewHabitService(db *gorm.DB) *HabitService {
	return &HabitService{DB: db}
}

type CreateHabitInput struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Frequency    string     `json:"frequency"`
	Tags         []string   `json:"tags"`
	ReminderTime *time.Time `json:"reminderTime"`
}

type UpdateHabitInput struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Frequency    *string    `json:"frequency"`
	Tags         *[]string  `json:"tags"`
	ReminderTime *time.Time `json:"reminderTime"`
}

// DayStatus is one entry of a habit's completion calendar.
type DayStatus struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

func (s *HabitService) Create(userID uint, in CreateHabitInput) (*models.Habit, error) {
	if in.Title == "" || in.Frequency == "" {
		return nil, apperr.InvalidInput("Missing fields")
	}
	if !models.ValidFrequency(in.Frequency) {
		return nil, apperr.InvalidInput("Invalid frequency")
	}

	habit := models.Habit{
		UserID:       userID,
		Title:        in.Title,
		Description:  in.Description,
		Frequency:    in.Frequency,
		Tags:         in.Tags,
		ReminderTime: in.ReminderTime,
	}
	if habit.Tags == nil {
		habit.Tags = []string{}
	}
	if err := s.DB.Create(&habit).Error; err != nil {
		return nil, apperr.Internal("create habit", err)
	}
	return &habit, nil
}

// List returns a page of the user's habits, newest first, optionally
// filtered by tag, along with the unpaginated total.
func (s *HabitService) List(userID uint, tag string, page, limit int) ([]models.Habit, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 6
	}

	query := s.DB.Model(&models.Habit{}).Where("user_id = ?", userID)
	if tag != "" {
		// Tags are stored as a JSON array; match the quoted element.
		query = query.Where("tags LIKE ?", `%"`+tag+`"%`)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("count habits", err)
	}

	habits := []models.Habit{}
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&habits).Error; err != nil {
		return nil, 0, apperr.Internal("list habits", err)
	}
	return habits, total, nil
}

// Get returns one habit with its logs (newest first) and the current
// streak derived from them.
func (s *HabitService) Get(userID, habitID uint) (*models.Habit, int, error) {
	var habit models.Habit
	err := s.DB.Preload("TrackingLogs", func(db *gorm.DB) *gorm.DB {
		return db.Order("day DESC")
	}).Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperr.NotFound("Habit not found")
		}
		return nil, 0, apperr.Internal("load habit", err)
	}

	current, err := s.currentStreak(s.DB, habitID, calendar.Today())
	if err != nil {
		return nil, 0, err
	}
	return &habit, current, nil
}

func (s *HabitService) Update(userID, habitID uint, in UpdateHabitInput) (*models.Habit, error) {
	var habit models.Habit
	if err := s.DB.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Habit not found")
		}
		return nil, apperr.Internal("load habit", err)
	}

	if in.Frequency != nil && !models.ValidFrequency(*in.Frequency) {
		return nil, apperr.InvalidInput("Invalid frequency")
	}

	if in.Title != nil {
		habit.Title = *in.Title
	}
	if in.Description != nil {
		habit.Description = *in.Description
	}
	if in.Frequency != nil {
		habit.Frequency = *in.Frequency
	}
	if in.Tags != nil {
		habit.Tags = *in.Tags
	}
	if in.ReminderTime != nil {
		habit.ReminderTime = in.ReminderTime
	}

	if err := s.DB.Save(&habit).Error; err != nil {
		return nil, apperr.Internal("update habit", err)
	}
	return &habit, nil
}

// Delete removes a habit and cascades its tracking logs.
func (s *HabitService) Delete(userID, habitID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var habit models.Habit
		if err := tx.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Habit not found")
			}
			return apperr.Internal("load habit", err)
		}
		if err := tx.Where("habit_id = ?", habitID).Delete(&models.TrackingLog{}).Error; err != nil {
			return apperr.Internal("delete tracking logs", err)
		}
		if err := tx.Delete(&habit).Error; err != nil {
			return apperr.Internal("delete habit", err)
		}
		return nil
	})
}

// Track records today's completion. The ledger insert, the counter
// increment and the longest-streak update commit together or not at all;
// the (habit_id, day) unique index turns a concurrent double-track into
// a Conflict for the loser.
func (s *HabitService) Track(userID, habitID uint) (*models.TrackingLog, error) {
	today := calendar.Today()
	var entry models.TrackingLog

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var habit models.Habit
		if err := tx.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Habit not found")
			}
			return apperr.Internal("load habit", err)
		}

		entry = models.TrackingLog{HabitID: habitID, Day: today}
		if err := tx.Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("Already tracked for today")
			}
			return apperr.Internal("create tracking log", err)
		}

		if err := tx.Model(&models.Habit{}).Where("id = ?", habitID).
			Update("completed_count", gorm.Expr("completed_count + 1")).Error; err != nil {
			return apperr.Internal("increment completed count", err)
		}

		current, err := s.currentStreak(tx, habitID, today)
		if err != nil {
			return err
		}
		if current > habit.LongestStreak {
			// Guarded update keeps the high-water mark monotonic even if
			// another transaction raised it first.
			if err := tx.Model(&models.Habit{}).
				Where("id = ? AND longest_streak < ?", habitID, current).
				Update("longest_streak", current).Error; err != nil {
				return apperr.Internal("update longest streak", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// History reports, for each of the last windowDays days (oldest first),
// whether the habit was completed. Always exactly windowDays entries.
func (s *HabitService) History(userID, habitID uint, windowDays int) ([]DayStatus, error) {
	var habit models.Habit
	if err := s.DB.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Habit not found")
		}
		return nil, apperr.Internal("load habit", err)
	}

	today := calendar.Today()
	from := calendar.AddDays(today, -(windowDays - 1))

	var days []time.Time
	if err := s.DB.Model(&models.TrackingLog{}).
		Where("habit_id = ? AND day >= ?", habitID, from).
		Pluck("day", &days).Error; err != nil {
		return nil, apperr.Internal("load tracking logs", err)
	}

	done := make(map[string]bool, len(days))
	for _, d := range days {
		done[calendar.Format(d)] = true
	}

	history := make([]DayStatus, 0, windowDays)
	for _, d := range calendar.Range(from, today) {
		key := calendar.Format(d)
		history = append(history, DayStatus{Date: key, Completed: done[key]})
	}
	return history, nil
}

func (s *HabitService) currentStreak(tx *gorm.DB, habitID uint, today time.Time) (int, error) {
	var days []time.Time
	if err := tx.Model(&models.TrackingLog{}).
		Where("habit_id = ?", habitID).
		Order("day DESC").
		Limit(streak.MaxLookback).
		Pluck("day", &days).Error; err != nil {
		return 0, apperr.Internal("load streak days", err)
	}
	return streak.Current(days, today), nil
}
