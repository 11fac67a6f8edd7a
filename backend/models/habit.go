package models

import "time"

// Frequencies accepted for a habit.
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

type Habit struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	UserID         uint          `gorm:"index;not null" json:"userId"`
	Title          string        `gorm:"not null" json:"title"`
	Description    string        `json:"description"`
	Frequency      string        `gorm:"not null" json:"frequency"` // daily, weekly
	Tags           []string      `gorm:"serializer:json" json:"tags"`
	ReminderTime   *time.Time    `json:"reminderTime"`
	CompletedCount int           `gorm:"default:0" json:"completedCount"`
	LongestStreak  int           `gorm:"default:0" json:"longestStreak"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	TrackingLogs   []TrackingLog `gorm:"foreignKey:HabitID" json:"trackingLogs,omitempty"`
}

// TrackingLog is one completion of a habit on one calendar day.
// The (habit_id, day) unique index is what makes double-tracking a
// storage-level conflict rather than a silent double count.
type TrackingLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HabitID   uint      `gorm:"not null;uniqueIndex:idx_tracking_habit_day" json:"habitId"`
	Day       time.Time `gorm:"not null;uniqueIndex:idx_tracking_habit_day" json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

func ValidFrequency(f string) bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}
