package service

import (
	"context"
	"errors"
	"log"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"gamehub/backend/pkg/apperror"
	"gamehub/backend/pkg/pagination"
	"gamehub/backend/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuideService interface {
	ListGuides(ctx context.Context, filter dto.GuideFilter) (*dto.Paginated[dto.GuideResponse], error)
	// GetGuideBySlug counts a view and returns the guide.
	GetGuideBySlug(ctx context.Context, slug string) (*dto.GuideResponse, error)
	CreateGuide(ctx context.Context, authorID string, req dto.CreateGuideRequest, image *ImageUpload) (*dto.GuideResponse, error)
	// UpdateGuide is allowed for the guide's author and for staff.
	UpdateGuide(ctx context.Context, requesterID, slug string, req dto.UpdateGuideRequest, image *ImageUpload) (*dto.GuideResponse, error)
	DeleteGuide(ctx context.Context, requesterID, slug string) error
}

type guideService struct {
	guideRepo    repository.GuideRepository
	gameRepo     repository.GameRepository
	userRepo     repository.UserRepository
	rating       RatingService
	search       SearchService
	imageStorage storage.ImageStorage
}

func NewGuideService(guideRepo repository.GuideRepository, gameRepo repository.GameRepository, userRepo repository.UserRepository, rating RatingService, search SearchService, imageStorage storage.ImageStorage) GuideService {
	return &guideService{
		guideRepo:    guideRepo,
		gameRepo:     gameRepo,
		userRepo:     userRepo,
		rating:       rating,
		search:       search,
		imageStorage: imageStorage,
	}
}

func (s *guideService) ListGuides(ctx context.Context, filter dto.GuideFilter) (*dto.Paginated[dto.GuideResponse], error) {
	filter.Normalize(DefaultContentPageSize)

	var gameID *uuid.UUID
	if filter.Game != "" {
		game, err := s.gameRepo.FindBySlug(ctx, filter.Game)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Filters narrow; an unknown slug matches nothing.
				return dto.NewPaginated([]dto.GuideResponse{}, 0, filter.Page, filter.Limit), nil
			}
			return nil, err
		}
		gameID = &game.ID
	}

	var ids []uuid.UUID
	if filter.Search != "" && s.search != nil {
		hits, err := s.search.Search(IndexGuides, filter.Search, searchResolveLimit)
		if err != nil {
			return nil, err
		}
		if len(hits) == 0 {
			return dto.NewPaginated([]dto.GuideResponse{}, 0, filter.Page, filter.Limit), nil
		}
		for _, hit := range hits {
			if id, err := uuid.Parse(hit); err == nil {
				ids = append(ids, id)
			}
		}
	}

	offset := pagination.Offset(filter.Page, filter.Limit)
	guides, total, err := s.guideRepo.FindAll(ctx, gameID, filter.Difficulty, ids, offset, filter.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GuideResponse, 0, len(guides))
	for _, guide := range guides {
		responses = append(responses, *buildGuideResponse(guide))
	}

	return dto.NewPaginated(responses, total, filter.Page, filter.Limit), nil
}

func (s *guideService) GetGuideBySlug(ctx context.Context, slug string) (*dto.GuideResponse, error) {
	guide, err := s.guideRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if err := s.guideRepo.IncrementViews(ctx, guide.ID); err != nil {
		return nil, err
	}
	guide.Views++

	return buildGuideResponse(guide), nil
}

func (s *guideService) CreateGuide(ctx context.Context, authorID string, req dto.CreateGuideRequest, image *ImageUpload) (*dto.GuideResponse, error) {
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

	slug := UniqueSlug(req.Title, func(candidate string) bool {
		_, err := s.guideRepo.FindBySlug(ctx, candidate)
		return err == nil
	})

	guide := &model.Guide{
		Title:      req.Title,
		Slug:       slug,
		GameID:     game.ID,
		AuthorID:   author,
		Content:    req.Content,
		Difficulty: req.Difficulty,
	}

	if image != nil && image.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, image.Reader, storage.FolderGuideImages, image.FileName)
		if err != nil {
			return nil, err
		}
		guide.FeaturedImageURL = &url
	}

	if err := s.guideRepo.Create(ctx, guide); err != nil {
		return nil, err
	}

	// Publishing a guide is worth reputation points.
	if _, err := s.rating.RecomputeUserScore(ctx, author); err != nil {
		return nil, err
	}

	created, err := s.guideRepo.FindByID(ctx, guide.ID)
	if err != nil {
		return nil, err
	}

	s.indexGuide(created)

	return buildGuideResponse(created), nil
}

func (s *guideService) UpdateGuide(ctx context.Context, requesterID, slug string, req dto.UpdateGuideRequest, image *ImageUpload) (*dto.GuideResponse, error) {
	guide, err := s.guideRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if err := s.authorize(ctx, requesterID, guide.AuthorID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		guide.Title = *req.Title
	}
	if req.Content != nil {
		guide.Content = *req.Content
	}
	if req.Difficulty != nil {
		guide.Difficulty = *req.Difficulty
	}

	if image != nil && image.Reader != nil && s.imageStorage != nil {
		if guide.FeaturedImageURL != nil {
			if err := s.imageStorage.DeleteImage(ctx, *guide.FeaturedImageURL); err != nil {
				log.Printf("failed to delete old image for guide %s: %v", guide.Slug, err)
			}
		}
		url, err := s.imageStorage.UploadImage(ctx, image.Reader, storage.FolderGuideImages, image.FileName)
		if err != nil {
			return nil, err
		}
		guide.FeaturedImageURL = &url
	}

	if err := s.guideRepo.Update(ctx, guide); err != nil {
		return nil, err
	}

	s.indexGuide(guide)

	return buildGuideResponse(guide), nil
}

func (s *guideService) DeleteGuide(ctx context.Context, requesterID, slug string) error {
	guide, err := s.guideRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := s.authorize(ctx, requesterID, guide.AuthorID); err != nil {
		return err
	}

	if err := s.guideRepo.Delete(ctx, guide.ID); err != nil {
		return err
	}

	// The author loses the guide's reputation points.
	if _, err := s.rating.RecomputeUserScore(ctx, guide.AuthorID); err != nil {
		return err
	}

	if guide.FeaturedImageURL != nil && s.imageStorage != nil {
		if err := s.imageStorage.DeleteImage(ctx, *guide.FeaturedImageURL); err != nil {
			log.Printf("failed to delete image for guide %s: %v", guide.Slug, err)
		}
	}

	if s.search != nil {
		if err := s.search.DeleteDocument(IndexGuides, guide.ID.String()); err != nil {
			log.Printf("failed to remove guide %s from search index: %v", guide.Slug, err)
		}
	}

	return nil
}

func (s *guideService) authorize(ctx context.Context, requesterID string, authorID uuid.UUID) error {
	return authorizeAuthorOrStaff(ctx, s.userRepo, requesterID, authorID)
}

func (s *guideService) indexGuide(guide *model.Guide) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexGuide(guide); err != nil {
		log.Printf("failed to index guide %s: %v", guide.Slug, err)
	}
}

func buildGuideResponse(guide *model.Guide) *dto.GuideResponse {
	return &dto.GuideResponse{
		ID:         guide.ID.String(),
		Title:      guide.Title,
		Slug:       guide.Slug,
		GameSlug:   guide.Game.Slug,
		GameTitle:  guide.Game.Title,
		Content:    guide.Content,
		Difficulty: guide.Difficulty,
		ImageURL:   guide.FeaturedImageURL,
		Views:      guide.Views,
		CreatedAt:  guide.CreatedAt,
		Author: dto.AuthorResponse{
			Username:  guide.Author.Username,
			AvatarURL: guide.Author.AvatarURL,
		},
	}
}
