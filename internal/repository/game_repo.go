package repository

import (
	"context"

	"gamehub/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GameRepository interface {
	Create(ctx context.Context, game *model.Game) error
	Update(ctx context.Context, game *model.Game) error
	ReplaceGenres(ctx context.Context, game *model.Game, genres []model.Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Game, error)
	FindBySlug(ctx context.Context, slug string) (*model.Game, error)
	// FindAll filters by platform and genre slug; empty filter values are no-ops.
	// Results are ordered by release date, newest first.
	FindAll(ctx context.Context, platform, genreSlug string, ids []uuid.UUID, offset, limit int) ([]*model.Game, int64, error)
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *model.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gameRepository) Update(ctx context.Context, game *model.Game) error {
	return r.db.WithContext(ctx).Save(game).Error
}

func (r *gameRepository) ReplaceGenres(ctx context.Context, game *model.Game, genres []model.Genre) error {
	return r.db.WithContext(ctx).Model(game).Association("Genres").Replace(genres)
}

func (r *gameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Game{}, "id = ?", id).Error
}

func (r *gameRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Where("id = ?", id).
		First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindBySlug(ctx context.Context, slug string) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Where("slug = ?", slug).
		First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindAll(ctx context.Context, platform, genreSlug string, ids []uuid.UUID, offset, limit int) ([]*model.Game, int64, error) {
	var games []*model.Game
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Game{}).Preload("Genres")

	if platform != "" {
		query = query.Where("platform = ?", platform)
	}

	if genreSlug != "" {
		query = query.
			Joins("JOIN game_genres ON game_genres.game_id = games.id").
			Joins("JOIN genres ON genres.id = game_genres.genre_id").
			Where("genres.slug = ?", genreSlug)
	}

	if ids != nil {
		query = query.Where("games.id IN ?", ids)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("release_date DESC").
		Offset(offset).Limit(limit).
		Find(&games).Error; err != nil {
		return nil, 0, err
	}

	return games, total, nil
}
