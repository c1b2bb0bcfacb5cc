package service

import (
	"context"
	"testing"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestForumService(db *gorm.DB) ForumService {
	notificationSvc := NewNotificationService(repository.NewNotificationRepository(db), nil)
	return NewForumService(
		repository.NewForumRepository(db),
		repository.NewUserRepository(db),
		notificationSvc,
	)
}

func TestCreateTopicAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestForumService(db)

	user := createTestUser(t, db, "poster")

	topic, err := svc.CreateTopic(ctx, user.ID.String(), dto.CreateTopicRequest{Title: "Best RPG of 2026?"})
	require.NoError(t, err)
	assert.Equal(t, "best-rpg-of-2026", topic.Slug)
	assert.Equal(t, "poster", topic.Author.Username)
	assert.Equal(t, int64(0), topic.PostCount)

	// A second topic with the same title gets a suffixed slug.
	dup, err := svc.CreateTopic(ctx, user.ID.String(), dto.CreateTopicRequest{Title: "Best RPG of 2026?"})
	require.NoError(t, err)
	assert.NotEqual(t, topic.Slug, dup.Slug)

	page, err := svc.ListTopics(ctx, dto.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Meta.TotalItems)
}

func TestGetTopicCountsViews(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestForumService(db)

	user := createTestUser(t, db, "poster")
	topic, err := svc.CreateTopic(ctx, user.ID.String(), dto.CreateTopicRequest{Title: "Sticky"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.GetTopicBySlug(ctx, topic.Slug, dto.PageQuery{})
		require.NoError(t, err)
	}

	detail, err := svc.GetTopicBySlug(ctx, topic.Slug, dto.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, 4, detail.Topic.Views)
}

func TestCreatePostNotifiesTopicAuthor(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestForumService(db)

	owner := createTestUser(t, db, "owner")
	replier := createTestUser(t, db, "replier")

	topic, err := svc.CreateTopic(ctx, owner.ID.String(), dto.CreateTopicRequest{Title: "Looking for co-op partners"})
	require.NoError(t, err)

	post, err := svc.CreatePost(ctx, replier.ID.String(), topic.Slug, dto.CreatePostRequest{Content: "count me in"})
	require.NoError(t, err)
	assert.Equal(t, "replier", post.Author.Username)

	var notifications []model.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, owner.ID, notifications[0].UserID)
	assert.Contains(t, notifications[0].Message, "replier")
	assert.Equal(t, "/forum/"+topic.Slug, notifications[0].Link)

	// Replying to your own topic stays quiet.
	_, err = svc.CreatePost(ctx, owner.ID.String(), topic.Slug, dto.CreatePostRequest{Content: "bump"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTopicPostsOrderedOldestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := newTestForumService(db)

	owner := createTestUser(t, db, "owner")
	topic, err := svc.CreateTopic(ctx, owner.ID.String(), dto.CreateTopicRequest{Title: "Ordered"})
	require.NoError(t, err)

	for _, content := range []string{"first", "second", "third"} {
		_, err := svc.CreatePost(ctx, owner.ID.String(), topic.Slug, dto.CreatePostRequest{Content: content})
		require.NoError(t, err)
	}

	detail, err := svc.GetTopicBySlug(ctx, topic.Slug, dto.PageQuery{})
	require.NoError(t, err)
	require.Len(t, detail.Posts.Data, 3)
	assert.Equal(t, "first", detail.Posts.Data[0].Content)
	assert.Equal(t, "third", detail.Posts.Data[2].Content)
	assert.Equal(t, int64(3), detail.Topic.PostCount)
}
