package repository

import (
	"context"

	"gamehub/backend/internal/model"
	"gorm.io/gorm"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *model.Genre) error
	Delete(ctx context.Context, slug string) error
	FindBySlug(ctx context.Context, slug string) (*model.Genre, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]model.Genre, error)
	FindAll(ctx context.Context) ([]model.Genre, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, genre *model.Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

func (r *genreRepository) Delete(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Delete(&model.Genre{}, "slug = ?", slug).Error
}

func (r *genreRepository) FindBySlug(ctx context.Context, slug string) (*model.Genre, error) {
	var genre model.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]model.Genre, error) {
	var genres []model.Genre
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *genreRepository) FindAll(ctx context.Context) ([]model.Genre, error) {
	var genres []model.Genre
	if err := r.db.WithContext(ctx).Order("name").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}
