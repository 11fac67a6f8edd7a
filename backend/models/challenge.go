package models

import "time"

// UserChallenge statuses.
const (
	StatusOngoing   = "ONGOING"
	StatusCompleted = "COMPLETED"
)

// Challenge is a catalog entry, created by admins and read-only to users.
type Challenge struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Title        string      `gorm:"not null" json:"title"`
	Description  string      `json:"description"`
	Icon         string      `json:"icon"`
	DurationDays int         `gorm:"not null" json:"durationDays"`
	RewardXP     int         `gorm:"default:0" json:"rewardXP"`
	Milestones   []Milestone `gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE" json:"milestones"`
	CreatedAt    time.Time   `json:"createdAt"`
}

type Milestone struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ChallengeID uint   `gorm:"index;not null" json:"challengeId"`
	DayCount    int    `gorm:"not null" json:"dayCount"`
	Badge       string `gorm:"not null" json:"badge"`
}

// UserChallenge is one user's enrollment in one challenge. At most one
// ONGOING row may exist per (user, challenge) pair; completion is a
// one-way transition.
type UserChallenge struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	UserID        uint                `gorm:"index;not null" json:"userId"`
	ChallengeID   uint                `gorm:"index;not null" json:"challengeId"`
	Status        string              `gorm:"default:ONGOING" json:"status"`
	StartDate     time.Time           `json:"startDate"`
	EndDate       time.Time           `json:"endDate"`
	CompletedDays int                 `gorm:"default:0" json:"completedDays"`
	CompletedAt   *time.Time          `json:"completedAt"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	Challenge     Challenge           `gorm:"foreignKey:ChallengeID" json:"challenge"`
	ProgressLogs  []ChallengeProgress `gorm:"foreignKey:UserChallengeID" json:"progressLogs,omitempty"`
}

// ChallengeProgress is the challenge analogue of TrackingLog, unique per
// (user_challenge_id, day).
type ChallengeProgress struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserChallengeID uint      `gorm:"not null;uniqueIndex:idx_progress_enrollment_day" json:"userChallengeId"`
	Day             time.Time `gorm:"not null;uniqueIndex:idx_progress_enrollment_day" json:"date"`
	IsCompleted     bool      `gorm:"default:false" json:"isCompleted"`
	CreatedAt       time.Time `json:"createdAt"`
}
