package repository

import (
	"context"

	"gamehub/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuideRepository interface {
	Create(ctx context.Context, guide *model.Guide) error
	Update(ctx context.Context, guide *model.Guide) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Guide, error)
	FindBySlug(ctx context.Context, slug string) (*model.Guide, error)
	FindAll(ctx context.Context, gameID *uuid.UUID, difficulty string, ids []uuid.UUID, offset, limit int) ([]*model.Guide, int64, error)
	// FindByGame returns the newest guides for a game, bounded by limit.
	FindByGame(ctx context.Context, gameID uuid.UUID, limit int) ([]*model.Guide, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type guideRepository struct {
	db *gorm.DB
}

func NewGuideRepository(db *gorm.DB) GuideRepository {
	return &guideRepository{db: db}
}

func (r *guideRepository) Create(ctx context.Context, guide *model.Guide) error {
	return r.db.WithContext(ctx).Create(guide).Error
}

func (r *guideRepository) Update(ctx context.Context, guide *model.Guide) error {
	return r.db.WithContext(ctx).Save(guide).Error
}

func (r *guideRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Guide{}, "id = ?", id).Error
}

func (r *guideRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Guide, error) {
	var guide model.Guide
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Game").
		Where("id = ?", id).
		First(&guide).Error; err != nil {
		return nil, err
	}
	return &guide, nil
}

func (r *guideRepository) FindBySlug(ctx context.Context, slug string) (*model.Guide, error) {
	var guide model.Guide
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Game").
		Where("slug = ?", slug).
		First(&guide).Error; err != nil {
		return nil, err
	}
	return &guide, nil
}

func (r *guideRepository) FindAll(ctx context.Context, gameID *uuid.UUID, difficulty string, ids []uuid.UUID, offset, limit int) ([]*model.Guide, int64, error) {
	var guides []*model.Guide
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Guide{}).
		Preload("Author").
		Preload("Game")

	if gameID != nil {
		query = query.Where("game_id = ?", gameID)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if ids != nil {
		query = query.Where("id IN ?", ids)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&guides).Error; err != nil {
		return nil, 0, err
	}

	return guides, total, nil
}

func (r *guideRepository) FindByGame(ctx context.Context, gameID uuid.UUID, limit int) ([]*model.Guide, error) {
	var guides []*model.Guide
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Game").
		Where("game_id = ?", gameID).
		Order("created_at DESC").
		Limit(limit).
		Find(&guides).Error
	return guides, err
}

func (r *guideRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Guide{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}
