package repository

import (
	"context"

	"gamehub/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository interface {
	// CreateWithNotification inserts the comment and the notification for the
	// target's author in one transaction; a nil notification writes only the
	// comment.
	CreateWithNotification(ctx context.Context, comment *model.Comment, notification *model.Notification) error
	FindByTarget(ctx context.Context, targetType string, targetID uuid.UUID, offset, limit int) ([]*model.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateWithNotification(ctx context.Context, comment *model.Comment, notification *model.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if notification != nil {
			return tx.Create(notification).Error
		}
		return nil
	})
}

func (r *commentRepository) FindByTarget(ctx context.Context, targetType string, targetID uuid.UUID, offset, limit int) ([]*model.Comment, int64, error) {
	var comments []*model.Comment
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Comment{}).
		Preload("Author").
		Where("target_type = ? AND target_id = ?", targetType, targetID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
