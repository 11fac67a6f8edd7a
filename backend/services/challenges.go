package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"habitflow/backend/apperr"
	"habitflow/backend/core/calendar"
	"habitflow/backend/core/milestone"
	"habitflow/backend/models"
)

// ChallengeService is the challenge progress machine: it owns the
// catalog, enrollments (join / complete-today / end) and the milestone
// and XP side effects of completion.
type ChallengeService struct {
	DB *gorm.DB
	XP *XPLedger
}

func NewChallengeService(db *gorm.DB, xp *XPLedger) *ChallengeService {
	return &ChallengeService{DB: db, XP: xp}
}

type MilestoneInput struct {
	DayCount int    `json:"dayCount"`
	Badge    string `json:"badge"`
}

type CreateChallengeInput struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Icon         string           `json:"icon"`
	DurationDays int              `json:"durationDays"`
	RewardXP     int              `json:"rewardXP"`
	Milestones   []MilestoneInput `json:"milestones"`
}

// CompletionResult is what a single completed day yields: the new count,
// any milestones unlocked by exactly this count, and the terminal status
// when the challenge finished on this call (nil otherwise).
type CompletionResult struct {
	CompletedDays      int                `json:"completedDays"`
	UnlockedMilestones []models.Milestone `json:"unlockedMilestones"`
	Status             *string            `json:"status"`
}

func (s *ChallengeService) ListAll() ([]models.Challenge, error) {
	challenges := []models.Challenge{}
	if err := s.DB.Preload("Milestones").Find(&challenges).Error; err != nil {
		return nil, apperr.Internal("list challenges", err)
	}
	return challenges, nil
}

func (s *ChallengeService) Get(challengeID uint) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := s.DB.Preload("Milestones").First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Challenge not found")
		}
		return nil, apperr.Internal("load challenge", err)
	}
	return &challenge, nil
}

func (s *ChallengeService) Create(in CreateChallengeInput) (*models.Challenge, error) {
	if in.Title == "" || in.DurationDays <= 0 {
		return nil, apperr.InvalidInput("Missing required fields")
	}
	if in.RewardXP < 0 {
		return nil, apperr.InvalidInput("rewardXP cannot be negative")
	}
	for _, m := range in.Milestones {
		if m.DayCount <= 0 || m.Badge == "" {
			return nil, apperr.InvalidInput("Invalid milestone")
		}
	}

	challenge := models.Challenge{
		Title:        in.Title,
		Description:  in.Description,
		Icon:         in.Icon,
		DurationDays: in.DurationDays,
		RewardXP:     in.RewardXP,
	}
	for _, m := range in.Milestones {
		challenge.Milestones = append(challenge.Milestones, models.Milestone{
			DayCount: m.DayCount,
			Badge:    m.Badge,
		})
	}
	if err := s.DB.Create(&challenge).Error; err != nil {
		return nil, apperr.Internal("create challenge", err)
	}
	return &challenge, nil
}

// DeleteChallenge removes a catalog entry and its milestones. Existing
// enrollments are untouched: the catalog lifecycle is independent of them.
func (s *ChallengeService) DeleteChallenge(challengeID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var challenge models.Challenge
		if err := tx.First(&challenge, challengeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Challenge not found")
			}
			return apperr.Internal("load challenge", err)
		}
		if err := tx.Where("challenge_id = ?", challengeID).Delete(&models.Milestone{}).Error; err != nil {
			return apperr.Internal("delete milestones", err)
		}
		if err := tx.Delete(&challenge).Error; err != nil {
			return apperr.Internal("delete challenge", err)
		}
		return nil
	})
}

// Join enrolls the user. At most one ONGOING enrollment per (user,
// challenge) pair may exist.
func (s *ChallengeService) Join(userID, challengeID uint) (*models.UserChallenge, error) {
	var challenge models.Challenge
	if err := s.DB.First(&challenge, challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Challenge not found")
		}
		return nil, apperr.Internal("load challenge", err)
	}

	var existing models.UserChallenge
	err := s.DB.Where("user_id = ? AND challenge_id = ? AND status = ?",
		userID, challengeID, models.StatusOngoing).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("Already joined")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("check enrollment", err)
	}

	start := calendar.Today()
	uc := models.UserChallenge{
		UserID:      userID,
		ChallengeID: challengeID,
		Status:      models.StatusOngoing,
		StartDate:   start,
		EndDate:     calendar.AddDays(start, challenge.DurationDays-1),
	}
	if err := s.DB.Create(&uc).Error; err != nil {
		return nil, apperr.Internal("create enrollment", err)
	}
	uc.Challenge = challenge
	return &uc, nil
}

// UserChallenges returns the user's enrollments, newest first, with the
// challenge, its milestones and the progress history attached.
func (s *ChallengeService) UserChallenges(userID uint) ([]models.UserChallenge, error) {
	ucs := []models.UserChallenge{}
	if err := s.DB.Preload("Challenge.Milestones").Preload("ProgressLogs").
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&ucs).Error; err != nil {
		return nil, apperr.Internal("list enrollments", err)
	}
	return ucs, nil
}

// CompleteToday credits one day of progress. The progress row, the
// counter increment, the milestone evaluation and (on the final day) the
// status transition plus XP award form one atomic unit: either all of it
// is visible afterwards or none of it.
func (s *ChallengeService) CompleteToday(userID, userChallengeID uint) (*CompletionResult, error) {
	result := &CompletionResult{UnlockedMilestones: []models.Milestone{}}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var uc models.UserChallenge
		if err := tx.Preload("Challenge.Milestones").First(&uc, userChallengeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Not found")
			}
			return apperr.Internal("load enrollment", err)
		}
		if uc.UserID != userID {
			return apperr.NotFound("Not found")
		}
		if uc.Status != models.StatusOngoing {
			return apperr.Conflict("Challenge already completed")
		}

		today := calendar.Today()
		progress := models.ChallengeProgress{
			UserChallengeID: uc.ID,
			Day:             today,
			IsCompleted:     true,
		}
		if err := tx.Create(&progress).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("Already completed today")
			}
			return apperr.Internal("create progress", err)
		}

		if err := tx.Model(&models.UserChallenge{}).Where("id = ?", uc.ID).
			Update("completed_days", gorm.Expr("completed_days + 1")).Error; err != nil {
			return apperr.Internal("increment completed days", err)
		}

		var completedDays int
		if err := tx.Model(&models.UserChallenge{}).
			Select("completed_days").Where("id = ?", uc.ID).
			Scan(&completedDays).Error; err != nil {
			return apperr.Internal("reload completed days", err)
		}

		result.CompletedDays = completedDays
		result.UnlockedMilestones = milestone.Unlocked(uc.Challenge.Milestones, completedDays)

		if completedDays >= uc.Challenge.DurationDays {
			now := time.Now().UTC()
			if err := tx.Model(&models.UserChallenge{}).
				Where("id = ? AND status = ?", uc.ID, models.StatusOngoing).
				Updates(map[string]interface{}{
					"status":       models.StatusCompleted,
					"completed_at": now,
				}).Error; err != nil {
				return apperr.Internal("complete enrollment", err)
			}
			if err := s.XP.Award(tx, uc.UserID, uc.Challenge.RewardXP); err != nil {
				return err
			}
			status := models.StatusCompleted
			result.Status = &status
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// End deletes an ONGOING enrollment and all its progress, irreversibly.
// Completed enrollments cannot be ended and keep their XP.
func (s *ChallengeService) End(userID, challengeID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var uc models.UserChallenge
		err := tx.Where("user_id = ? AND challenge_id = ? AND status = ?",
			userID, challengeID, models.StatusOngoing).First(&uc).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Challenge not active")
			}
			return apperr.Internal("load enrollment", err)
		}
		if err := tx.Where("user_challenge_id = ?", uc.ID).Delete(&models.ChallengeProgress{}).Error; err != nil {
			return apperr.Internal("delete progress", err)
		}
		if err := tx.Delete(&uc).Error; err != nil {
			return apperr.Internal("delete enrollment", err)
		}
		return nil
	})
}

// History returns the last n progress entries of an enrollment, oldest
// first.
func (s *ChallengeService) History(userID, userChallengeID uint, n int) ([]models.ChallengeProgress, error) {
	var uc models.UserChallenge
	if err := s.DB.First(&uc, userChallengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Not found")
		}
		return nil, apperr.Internal("load enrollment", err)
	}
	if uc.UserID != userID {
		return nil, apperr.NotFound("Not found")
	}

	logs := []models.ChallengeProgress{}
	if err := s.DB.Where("user_challenge_id = ?", uc.ID).
		Order("day DESC").Limit(n).
		Find(&logs).Error; err != nil {
		return nil, apperr.Internal("load progress", err)
	}
	// Reverse to oldest-first for rendering.
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs, nil
}
