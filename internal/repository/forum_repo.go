package repository

import (
	"context"

	"gamehub/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ForumRepository interface {
	CreateTopic(ctx context.Context, topic *model.ForumTopic) error
	FindTopicBySlug(ctx context.Context, slug string) (*model.ForumTopic, error)
	FindTopicByID(ctx context.Context, id uuid.UUID) (*model.ForumTopic, error)
	FindTopics(ctx context.Context, offset, limit int) ([]*model.ForumTopic, int64, error)
	IncrementTopicViews(ctx context.Context, id uuid.UUID) error
	CountPosts(ctx context.Context, topicID uuid.UUID) (int64, error)

	// CreatePost inserts the post and the notification for the topic author in
	// one transaction; a nil notification writes only the post.
	CreatePost(ctx context.Context, post *model.ForumPost, notification *model.Notification) error
	FindPostsByTopic(ctx context.Context, topicID uuid.UUID, offset, limit int) ([]*model.ForumPost, int64, error)
}

type forumRepository struct {
	db *gorm.DB
}

func NewForumRepository(db *gorm.DB) ForumRepository {
	return &forumRepository{db: db}
}

func (r *forumRepository) CreateTopic(ctx context.Context, topic *model.ForumTopic) error {
	return r.db.WithContext(ctx).Create(topic).Error
}

func (r *forumRepository) FindTopicBySlug(ctx context.Context, slug string) (*model.ForumTopic, error) {
	var topic model.ForumTopic
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("slug = ?", slug).
		First(&topic).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *forumRepository) FindTopicByID(ctx context.Context, id uuid.UUID) (*model.ForumTopic, error) {
	var topic model.ForumTopic
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&topic).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *forumRepository) FindTopics(ctx context.Context, offset, limit int) ([]*model.ForumTopic, int64, error) {
	var topics []*model.ForumTopic
	var total int64

	query := r.db.WithContext(ctx).Model(&model.ForumTopic{}).Preload("Author")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&topics).Error; err != nil {
		return nil, 0, err
	}

	return topics, total, nil
}

func (r *forumRepository) IncrementTopicViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ForumTopic{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *forumRepository) CountPosts(ctx context.Context, topicID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ForumPost{}).
		Where("topic_id = ?", topicID).
		Count(&count).Error
	return count, err
}

func (r *forumRepository) CreatePost(ctx context.Context, post *model.ForumPost, notification *model.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		if notification != nil {
			return tx.Create(notification).Error
		}
		return nil
	})
}

func (r *forumRepository) FindPostsByTopic(ctx context.Context, topicID uuid.UUID, offset, limit int) ([]*model.ForumPost, int64, error) {
	var posts []*model.ForumPost
	var total int64

	query := r.db.WithContext(ctx).Model(&model.ForumPost{}).
		Preload("Author").
		Where("topic_id = ?", topicID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}
