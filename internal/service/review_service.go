package service

import (
	"context"
	"errors"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"gamehub/backend/pkg/apperror"
	"gamehub/backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewService interface {
	ListReviewsByGame(ctx context.Context, gameSlug string, page dto.PageQuery) (*dto.Paginated[dto.ReviewResponse], error)
	// CreateReview stores the review and refreshes the game's average rating.
	CreateReview(ctx context.Context, authorID string, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	UpdateReview(ctx context.Context, requesterID string, reviewID string, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	DeleteReview(ctx context.Context, requesterID string, reviewID string) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	gameRepo   repository.GameRepository
	userRepo   repository.UserRepository
	rating     RatingService
}

func NewReviewService(reviewRepo repository.ReviewRepository, gameRepo repository.GameRepository, userRepo repository.UserRepository, rating RatingService) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		gameRepo:   gameRepo,
		userRepo:   userRepo,
		rating:     rating,
	}
}

func (s *reviewService) ListReviewsByGame(ctx context.Context, gameSlug string, page dto.PageQuery) (*dto.Paginated[dto.ReviewResponse], error) {
	page.Normalize(DefaultContentPageSize)

	game, err := s.gameRepo.FindBySlug(ctx, gameSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	offset := pagination.Offset(page.Page, page.Limit)
	reviews, total, err := s.reviewRepo.FindByGamePaginated(ctx, game.ID, offset, page.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, *buildReviewResponse(review))
	}

	return dto.NewPaginated(responses, total, page.Page, page.Limit), nil
}

func (s *reviewService) CreateReview(ctx context.Context, authorID string, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	author, err := uuid.Parse(authorID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	game, err := s.gameRepo.FindBySlug(ctx, req.GameSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Validation("unknown game slug")
		}
		return nil, err
	}

	review := &model.Review{
		GameID:   game.ID,
		AuthorID: author,
		Content:  req.Content,
		Rating:   req.Rating,
		Pros:     req.Pros,
		Cons:     req.Cons,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if _, err := s.rating.RecomputeGameRating(ctx, game.ID); err != nil {
		return nil, err
	}

	created, err := s.reviewRepo.FindByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	return buildReviewResponse(created), nil
}

func (s *reviewService) UpdateReview(ctx context.Context, requesterID string, reviewID string, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, apperror.ErrNotFound
	}

	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if err := authorizeAuthorOrStaff(ctx, s.userRepo, requesterID, review.AuthorID); err != nil {
		return nil, err
	}

	if req.Content != nil {
		review.Content = *req.Content
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Pros != nil {
		review.Pros = *req.Pros
	}
	if req.Cons != nil {
		review.Cons = *req.Cons
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	if _, err := s.rating.RecomputeGameRating(ctx, review.GameID); err != nil {
		return nil, err
	}

	return buildReviewResponse(review), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, requesterID string, reviewID string) error {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return apperror.ErrNotFound
	}

	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := authorizeAuthorOrStaff(ctx, s.userRepo, requesterID, review.AuthorID); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		return err
	}

	_, err = s.rating.RecomputeGameRating(ctx, review.GameID)
	return err
}

func buildReviewResponse(review *model.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:        review.ID.String(),
		GameSlug:  review.Game.Slug,
		Content:   review.Content,
		Rating:    review.Rating,
		Pros:      review.Pros,
		Cons:      review.Cons,
		CreatedAt: review.CreatedAt,
		Author: dto.AuthorResponse{
			Username:  review.Author.Username,
			AvatarURL: review.Author.AvatarURL,
		},
	}
}
