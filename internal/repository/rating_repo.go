package repository

import (
	"context"

	"gamehub/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RatingRepository backs the score aggregator: the per-user activity counts the
// reputation formula reads, and the single-field writes it produces.
type RatingRepository interface {
	CountCommentsByAuthor(ctx context.Context, userID uuid.UUID) (int64, error)
	CountGuidesByAuthor(ctx context.Context, userID uuid.UUID) (int64, error)
	CountLikesByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	SaveScore(ctx context.Context, userID uuid.UUID, score int) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.UserRating, error)
	TopScores(ctx context.Context, limit int) ([]model.UserRating, error)

	ReviewRatings(ctx context.Context, gameID uuid.UUID) ([]int, error)
	CurrentGameRating(ctx context.Context, gameID uuid.UUID) (float64, error)
	SaveGameRating(ctx context.Context, gameID uuid.UUID, rating float64) error
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) CountCommentsByAuthor(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("author_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *ratingRepository) CountGuidesByAuthor(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Guide{}).
		Where("author_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *ratingRepository) CountLikesByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND vote = ?", userID, model.VoteLike).
		Count(&count).Error
	return count, err
}

func (r *ratingRepository) SaveScore(ctx context.Context, userID uuid.UUID, score int) error {
	return r.db.WithContext(ctx).Model(&model.UserRating{}).
		Where("user_id = ?", userID).
		Update("score", score).Error
}

func (r *ratingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.UserRating, error) {
	var rating model.UserRating
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) TopScores(ctx context.Context, limit int) ([]model.UserRating, error) {
	var ratings []model.UserRating
	err := r.db.WithContext(ctx).
		Order("score DESC").
		Limit(limit).
		Find(&ratings).Error
	return ratings, err
}

func (r *ratingRepository) ReviewRatings(ctx context.Context, gameID uuid.UUID) ([]int, error) {
	var ratings []int
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("game_id = ?", gameID).
		Pluck("rating", &ratings).Error
	return ratings, err
}

func (r *ratingRepository) CurrentGameRating(ctx context.Context, gameID uuid.UUID) (float64, error) {
	var game model.Game
	err := r.db.WithContext(ctx).
		Select("rating").
		Where("id = ?", gameID).
		First(&game).Error
	return game.Rating, err
}

func (r *ratingRepository) SaveGameRating(ctx context.Context, gameID uuid.UUID, rating float64) error {
	return r.db.WithContext(ctx).Model(&model.Game{}).
		Where("id = ?", gameID).
		Update("rating", rating).Error
}
