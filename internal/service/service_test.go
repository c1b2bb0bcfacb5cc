package service

import (
	"fmt"
	"testing"

	"gamehub/backend/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database and migrates the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.FriendUser{},
		&model.UserRating{},
		&model.Genre{},
		&model.Game{},
		&model.News{},
		&model.Guide{},
		&model.Review{},
		&model.ForumTopic{},
		&model.ForumPost{},
		&model.Comment{},
		&model.Like{},
		&model.Notification{},
	))

	return db
}
