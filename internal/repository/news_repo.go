package repository

import (
	"context"

	"gamehub/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsRepository interface {
	Create(ctx context.Context, news *model.News) error
	Update(ctx context.Context, news *model.News) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.News, error)
	FindBySlug(ctx context.Context, slug string) (*model.News, error)
	FindAll(ctx context.Context, gameID *uuid.UUID, ids []uuid.UUID, offset, limit int) ([]*model.News, int64, error)
	// IncrementViews bumps the view counter by one with a single UPDATE, so
	// concurrent detail requests never lose an increment.
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, news *model.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

func (r *newsRepository) Update(ctx context.Context, news *model.News) error {
	return r.db.WithContext(ctx).Save(news).Error
}

func (r *newsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.News{}, "id = ?", id).Error
}

func (r *newsRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.News, error) {
	var news model.News
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Game").
		Where("id = ?", id).
		First(&news).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

func (r *newsRepository) FindBySlug(ctx context.Context, slug string) (*model.News, error) {
	var news model.News
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Game").
		Where("slug = ?", slug).
		First(&news).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

func (r *newsRepository) FindAll(ctx context.Context, gameID *uuid.UUID, ids []uuid.UUID, offset, limit int) ([]*model.News, int64, error) {
	var items []*model.News
	var total int64

	query := r.db.WithContext(ctx).Model(&model.News{}).
		Preload("Author").
		Preload("Game")

	if gameID != nil {
		query = query.Where("game_id = ?", gameID)
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
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *newsRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.News{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}
