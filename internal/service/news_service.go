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

// DefaultContentPageSize is the page size for news and guide listings.
const DefaultContentPageSize = 10

type NewsService interface {
	ListNews(ctx context.Context, filter dto.NewsFilter) (*dto.Paginated[dto.NewsResponse], error)
	// GetNewsBySlug counts a view and returns the article.
	GetNewsBySlug(ctx context.Context, slug string) (*dto.NewsResponse, error)
	CreateNews(ctx context.Context, authorID string, req dto.CreateNewsRequest, image *ImageUpload) (*dto.NewsResponse, error)
	UpdateNews(ctx context.Context, slug string, req dto.UpdateNewsRequest, image *ImageUpload) (*dto.NewsResponse, error)
	DeleteNews(ctx context.Context, slug string) error
}

type newsService struct {
	newsRepo     repository.NewsRepository
	gameRepo     repository.GameRepository
	search       SearchService
	imageStorage storage.ImageStorage
}

func NewNewsService(newsRepo repository.NewsRepository, gameRepo repository.GameRepository, search SearchService, imageStorage storage.ImageStorage) NewsService {
	return &newsService{
		newsRepo:     newsRepo,
		gameRepo:     gameRepo,
		search:       search,
		imageStorage: imageStorage,
	}
}

func (s *newsService) ListNews(ctx context.Context, filter dto.NewsFilter) (*dto.Paginated[dto.NewsResponse], error) {
	filter.Normalize(DefaultContentPageSize)

	var gameID *uuid.UUID
	if filter.Game != "" {
		game, err := s.gameRepo.FindBySlug(ctx, filter.Game)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Filters narrow; an unknown slug matches nothing.
				return dto.NewPaginated([]dto.NewsResponse{}, 0, filter.Page, filter.Limit), nil
			}
			return nil, err
		}
		gameID = &game.ID
	}

	var ids []uuid.UUID
	if filter.Search != "" && s.search != nil {
		hits, err := s.search.Search(IndexNews, filter.Search, searchResolveLimit)
		if err != nil {
			return nil, err
		}
		if len(hits) == 0 {
			return dto.NewPaginated([]dto.NewsResponse{}, 0, filter.Page, filter.Limit), nil
		}
		for _, hit := range hits {
			if id, err := uuid.Parse(hit); err == nil {
				ids = append(ids, id)
			}
		}
	}

	offset := pagination.Offset(filter.Page, filter.Limit)
	items, total, err := s.newsRepo.FindAll(ctx, gameID, ids, offset, filter.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NewsResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, *buildNewsResponse(item))
	}

	return dto.NewPaginated(responses, total, filter.Page, filter.Limit), nil
}

func (s *newsService) GetNewsBySlug(ctx context.Context, slug string) (*dto.NewsResponse, error) {
	news, err := s.newsRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	// Every detail request counts as a view, refreshes included.
	if err := s.newsRepo.IncrementViews(ctx, news.ID); err != nil {
		return nil, err
	}
	news.Views++

	return buildNewsResponse(news), nil
}

func (s *newsService) CreateNews(ctx context.Context, authorID string, req dto.CreateNewsRequest, image *ImageUpload) (*dto.NewsResponse, error) {
	author, err := uuid.Parse(authorID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	gameID, err := s.resolveGameSlug(ctx, req.GameSlug)
	if err != nil {
		return nil, err
	}

	slug := UniqueSlug(req.Title, func(candidate string) bool {
		_, err := s.newsRepo.FindBySlug(ctx, candidate)
		return err == nil
	})

	news := &model.News{
		Title:      req.Title,
		Slug:       slug,
		Content:    req.Content,
		AuthorID:   author,
		GameID:     gameID,
		IsFeatured: req.IsFeatured,
	}

	if image != nil && image.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, image.Reader, storage.FolderNewsImages, image.FileName)
		if err != nil {
			return nil, err
		}
		news.ImageURL = &url
	}

	if err := s.newsRepo.Create(ctx, news); err != nil {
		return nil, err
	}

	created, err := s.newsRepo.FindByID(ctx, news.ID)
	if err != nil {
		return nil, err
	}

	s.indexNews(created)

	return buildNewsResponse(created), nil
}

func (s *newsService) UpdateNews(ctx context.Context, slug string, req dto.UpdateNewsRequest, image *ImageUpload) (*dto.NewsResponse, error) {
	news, err := s.newsRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		news.Title = *req.Title
	}
	if req.Content != nil {
		news.Content = *req.Content
	}
	if req.IsFeatured != nil {
		news.IsFeatured = *req.IsFeatured
	}
	if req.GameSlug != nil {
		if *req.GameSlug == "" {
			news.GameID = nil
			news.Game = nil
		} else {
			gameID, err := s.resolveGameSlug(ctx, req.GameSlug)
			if err != nil {
				return nil, err
			}
			news.GameID = gameID
		}
	}

	if image != nil && image.Reader != nil && s.imageStorage != nil {
		if news.ImageURL != nil {
			if err := s.imageStorage.DeleteImage(ctx, *news.ImageURL); err != nil {
				log.Printf("failed to delete old image for news %s: %v", news.Slug, err)
			}
		}
		url, err := s.imageStorage.UploadImage(ctx, image.Reader, storage.FolderNewsImages, image.FileName)
		if err != nil {
			return nil, err
		}
		news.ImageURL = &url
	}

	if err := s.newsRepo.Update(ctx, news); err != nil {
		return nil, err
	}

	updated, err := s.newsRepo.FindByID(ctx, news.ID)
	if err != nil {
		return nil, err
	}

	s.indexNews(updated)

	return buildNewsResponse(updated), nil
}

func (s *newsService) DeleteNews(ctx context.Context, slug string) error {
	news, err := s.newsRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := s.newsRepo.Delete(ctx, news.ID); err != nil {
		return err
	}

	if news.ImageURL != nil && s.imageStorage != nil {
		if err := s.imageStorage.DeleteImage(ctx, *news.ImageURL); err != nil {
			log.Printf("failed to delete image for news %s: %v", news.Slug, err)
		}
	}

	if s.search != nil {
		if err := s.search.DeleteDocument(IndexNews, news.ID.String()); err != nil {
			log.Printf("failed to remove news %s from search index: %v", news.Slug, err)
		}
	}

	return nil
}

func (s *newsService) resolveGameSlug(ctx context.Context, slug *string) (*uuid.UUID, error) {
	if slug == nil || *slug == "" {
		return nil, nil
	}
	game, err := s.gameRepo.FindBySlug(ctx, *slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Validation("unknown game slug")
		}
		return nil, err
	}
	return &game.ID, nil
}

func (s *newsService) indexNews(news *model.News) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexNews(news); err != nil {
		log.Printf("failed to index news %s: %v", news.Slug, err)
	}
}

func buildNewsResponse(news *model.News) *dto.NewsResponse {
	resp := &dto.NewsResponse{
		ID:         news.ID.String(),
		Title:      news.Title,
		Slug:       news.Slug,
		Content:    news.Content,
		IsFeatured: news.IsFeatured,
		ImageURL:   news.ImageURL,
		Views:      news.Views,
		CreatedAt:  news.CreatedAt,
		Author: dto.AuthorResponse{
			Username:  news.Author.Username,
			AvatarURL: news.Author.AvatarURL,
		},
	}
	if news.Game != nil {
		resp.GameSlug = &news.Game.Slug
	}
	return resp
}
