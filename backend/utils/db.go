package utils

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"habitflow/backend/config"
	"habitflow/backend/models"
)

// InitDB opens the Postgres connection and runs migrations. TranslateError
// is on so unique-index violations surface as gorm.ErrDuplicatedKey, which
// the services rely on for duplicate-completion conflicts.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates/updates the schema, including the load-bearing unique
// indexes on (habit_id, day) and (user_challenge_id, day).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Habit{},
		&models.TrackingLog{},
		&models.Challenge{},
		&models.Milestone{},
		&models.UserChallenge{},
		&models.ChallengeProgress{},
	)
}

// SeedChallenges inserts the starter challenge catalog once.
func SeedChallenges(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Challenge{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	challenges := []models.Challenge{
		{
			Title:        "30-Day Fitness",
			Description:  "Do some exercise every day",
			Icon:         "💪",
			DurationDays: 30,
			RewardXP:     100,
			Milestones: []models.Milestone{
				{DayCount: 7, Badge: "First Week"},
				{DayCount: 15, Badge: "Halfway There"},
				{DayCount: 30, Badge: "Iron Will"},
			},
		},
		{
			Title:        "Read Books",
			Description:  "Read at least 20 pages daily",
			Icon:         "📚",
			DurationDays: 15,
			RewardXP:     50,
			Milestones: []models.Milestone{
				{DayCount: 5, Badge: "Bookworm"},
				{DayCount: 15, Badge: "Page Turner"},
			},
		},
		{
			Title:        "Meditation",
			Description:  "Meditate for 10 mins daily",
			Icon:         "🧘",
			DurationDays: 7,
			RewardXP:     20,
			Milestones: []models.Milestone{
				{DayCount: 3, Badge: "Calm Mind"},
				{DayCount: 7, Badge: "Zen Master"},
			},
		},
	}
	return db.Create(&challenges).Error
}
