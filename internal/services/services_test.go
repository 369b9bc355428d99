package services

import (
	"testing"
	"time"

	"github.com/mratin/sparkfeed/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and serializes
	// transactions the way a real server's row locks would.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.KarmaTransaction{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "irrelevant"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, userID uint, content string) models.Post {
	t.Helper()
	post := models.Post{UserID: userID, Content: content}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func createComment(t *testing.T, db *gorm.DB, postID, authorID uint, parentID *uint, content string, createdAt time.Time) models.Comment {
	t.Helper()
	comment := models.Comment{
		PostID:    postID,
		AuthorID:  authorID,
		ParentID:  parentID,
		Content:   content,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(&comment).Error)
	return comment
}

func karmaSum(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()
	var sum int
	require.NoError(t, db.Model(&models.KarmaTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&sum).Error)
	return sum
}

func ledgerCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.KarmaTransaction{}).Count(&count).Error)
	return count
}

func likeCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	return count
}
