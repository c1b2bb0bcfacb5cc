package repository

import (
	"context"

	"gamehub/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(ctx context.Context, like *model.Like) error
	CountByTarget(ctx context.Context, targetType string, targetID uuid.UUID, vote int) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) CountByTarget(ctx context.Context, targetType string, targetID uuid.UUID, vote int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("target_type = ? AND target_id = ? AND vote = ?", targetType, targetID, vote).
		Count(&count).Error
	return count, err
}
