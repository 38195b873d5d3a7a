package social

import (
	"testing"

	"tradecircle/backend/internal/database"
	"tradecircle/backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema.
// Connections are capped at one so the memory database is shared.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, nickname string) models.User {
	t.Helper()

	user := models.User{
		Nickname:     nickname,
		Email:        nickname + "@example.com",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// befriend runs the full request/accept workflow between two users.
func befriend(t *testing.T, db *gorm.DB, from, to uint) {
	t.Helper()

	request, err := SendFriendRequest(db, from, to)
	require.NoError(t, err)

	_, err = RespondFriendRequest(db, request.ID, to, ActionAccept)
	require.NoError(t, err)
}
