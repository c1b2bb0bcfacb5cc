package service

import (
	"context"
	"errors"
	"math"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reputation weights: comments*1 + guides*5 + likes*2.
const (
	WeightComment = 1
	WeightGuide   = 5
	WeightLike    = 2
)

// RatingService recomputes the derived values: a user's reputation score and a
// game's average rating. Both are full recomputations from the underlying
// rows, safe to call repeatedly.
type RatingService interface {
	// RecomputeUserScore recounts the user's comments, guides and likes and
	// persists the weighted sum. Idempotent for a fixed data set.
	RecomputeUserScore(ctx context.Context, userID uuid.UUID) (int, error)
	// RecomputeGameRating persists the mean review rating rounded to one
	// decimal. With zero reviews the stored rating is left unchanged.
	RecomputeGameRating(ctx context.Context, gameID uuid.UUID) (float64, error)
	Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	userRepo   repository.UserRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, userRepo repository.UserRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
	}
}

func (s *ratingService) RecomputeUserScore(ctx context.Context, userID uuid.UUID) (int, error) {
	comments, err := s.ratingRepo.CountCommentsByAuthor(ctx, userID)
	if err != nil {
		return 0, err
	}
	guides, err := s.ratingRepo.CountGuidesByAuthor(ctx, userID)
	if err != nil {
		return 0, err
	}
	likes, err := s.ratingRepo.CountLikesByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	score := int(comments)*WeightComment + int(guides)*WeightGuide + int(likes)*WeightLike

	if err := s.ratingRepo.SaveScore(ctx, userID, score); err != nil {
		return 0, err
	}

	return score, nil
}

func (s *ratingService) RecomputeGameRating(ctx context.Context, gameID uuid.UUID) (float64, error) {
	ratings, err := s.ratingRepo.ReviewRatings(ctx, gameID)
	if err != nil {
		return 0, err
	}

	// No reviews: keep the previously computed value instead of resetting to
	// zero when the last review disappears.
	if len(ratings) == 0 {
		return s.ratingRepo.CurrentGameRating(ctx, gameID)
	}

	var total int
	for _, r := range ratings {
		total += r
	}
	rating := math.Round(float64(total)/float64(len(ratings))*10) / 10

	if err := s.ratingRepo.SaveGameRating(ctx, gameID, rating); err != nil {
		return 0, err
	}

	return rating, nil
}

func (s *ratingService) Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	ratings, err := s.ratingRepo.TopScores(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(ratings))
	for i, rating := range ratings {
		user, err := s.userRepo.FindByID(ctx, rating.UserID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		entries = append(entries, dto.LeaderboardEntry{
			Position:  i + 1,
			Username:  user.Username,
			AvatarURL: user.AvatarURL,
			Score:     rating.Score,
		})
	}

	return entries, nil
}
