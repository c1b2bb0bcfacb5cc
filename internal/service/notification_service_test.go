package service

import (
	"context"
	"fmt"
	"testing"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedNotifications(t *testing.T, db *gorm.DB, user *model.User, n int) []model.Notification {
	t.Helper()

	notifications := make([]model.Notification, 0, n)
	for i := 0; i < n; i++ {
		notification := model.Notification{
			UserID:  user.ID,
			Message: fmt.Sprintf("event %d", i),
			Link:    "/forum/topic",
		}
		require.NoError(t, db.Create(&notification).Error)
		notifications = append(notifications, notification)
	}
	return notifications
}

func TestListNotificationsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)

	user := createTestUser(t, db, "reader")
	other := createTestUser(t, db, "other")
	seedNotifications(t, db, user, 3)
	seedNotifications(t, db, other, 1)

	page, err := svc.ListNotifications(ctx, user.ID.String(), dto.PageQuery{})
	require.NoError(t, err)
	require.Len(t, page.Data, 3)
	assert.Equal(t, int64(3), page.Meta.TotalItems)
	assert.Equal(t, "event 2", page.Data[0].Message)
	assert.Equal(t, "event 0", page.Data[2].Message)
}

func TestMarkAsReadScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)

	owner := createTestUser(t, db, "owner")
	intruder := createTestUser(t, db, "intruder")
	notifications := seedNotifications(t, db, owner, 1)
	target := notifications[0].ID.String()

	// Someone else's notification reads as missing.
	assert.Error(t, svc.MarkAsRead(ctx, intruder.ID.String(), target))

	require.NoError(t, svc.MarkAsRead(ctx, owner.ID.String(), target))

	count, err := svc.UnreadCount(ctx, owner.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkAllAsRead(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)

	user := createTestUser(t, db, "busy")
	seedNotifications(t, db, user, 4)

	count, err := svc.UnreadCount(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	require.NoError(t, svc.MarkAllAsRead(ctx, user.ID.String()))

	count, err = svc.UnreadCount(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
