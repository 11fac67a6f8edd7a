package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"habitflow/backend/models"
	"habitflow/backend/utils"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory database with the production schema,
// including the unique indexes the conflict paths depend on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createHabit(t *testing.T, db *gorm.DB, userID uint, title string) *models.Habit {
	t.Helper()
	habit := models.Habit{
		UserID:    userID,
		Title:     title,
		Frequency: models.FrequencyDaily,
		Tags:      []string{},
	}
	require.NoError(t, db.Create(&habit).Error)
	return &habit
}
