package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"gamehub/backend/pkg/apperror"
	"gamehub/backend/pkg/pagination"
	"gamehub/backend/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultGamePageSize is the catalog page size.
const DefaultGamePageSize = 12

// searchResolveLimit bounds how many IDs a free-text query may pull from the
// search index before the database narrows them down.
const searchResolveLimit = 100

type GameService interface {
	ListGames(ctx context.Context, filter dto.GameFilter) (*dto.Paginated[dto.GameResponse], error)
	// GetGameBySlug returns the game with its newest guides and reviews.
	GetGameBySlug(ctx context.Context, slug string) (*dto.GameDetailResponse, error)
	CreateGame(ctx context.Context, req dto.CreateGameRequest, cover *ImageUpload) (*dto.GameResponse, error)
	UpdateGame(ctx context.Context, slug string, req dto.UpdateGameRequest, cover *ImageUpload) (*dto.GameResponse, error)
	DeleteGame(ctx context.Context, slug string) error

	ListGenres(ctx context.Context) ([]dto.GenreResponse, error)
	CreateGenre(ctx context.Context, req dto.CreateGenreRequest) (*dto.GenreResponse, error)
	DeleteGenre(ctx context.Context, slug string) error
}

type gameService struct {
	gameRepo     repository.GameRepository
	genreRepo    repository.GenreRepository
	guideRepo    repository.GuideRepository
	reviewRepo   repository.ReviewRepository
	search       SearchService
	imageStorage storage.ImageStorage
}

func NewGameService(gameRepo repository.GameRepository, genreRepo repository.GenreRepository, guideRepo repository.GuideRepository, reviewRepo repository.ReviewRepository, search SearchService, imageStorage storage.ImageStorage) GameService {
	return &gameService{
		gameRepo:     gameRepo,
		genreRepo:    genreRepo,
		guideRepo:    guideRepo,
		reviewRepo:   reviewRepo,
		search:       search,
		imageStorage: imageStorage,
	}
}

func (s *gameService) ListGames(ctx context.Context, filter dto.GameFilter) (*dto.Paginated[dto.GameResponse], error) {
	filter.Normalize(DefaultGamePageSize)

	ids, done, err := s.resolveSearch(filter.Search)
	if err != nil {
		return nil, err
	}
	if done {
		return dto.NewPaginated([]dto.GameResponse{}, 0, filter.Page, filter.Limit), nil
	}

	offset := pagination.Offset(filter.Page, filter.Limit)
	games, total, err := s.gameRepo.FindAll(ctx, filter.Platform, filter.Genre, ids, offset, filter.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GameResponse, 0, len(games))
	for _, game := range games {
		responses = append(responses, *buildGameResponse(game))
	}

	return dto.NewPaginated(responses, total, filter.Page, filter.Limit), nil
}

// resolveSearch maps a free-text query to candidate game IDs. done is true
// when the query matched nothing and the listing can short-circuit.
func (s *gameService) resolveSearch(query string) ([]uuid.UUID, bool, error) {
	if query == "" || s.search == nil {
		return nil, false, nil
	}

	hits, err := s.search.Search(IndexGames, query, searchResolveLimit)
	if err != nil {
		return nil, false, err
	}
	if len(hits) == 0 {
		return nil, true, nil
	}

	ids := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		if id, err := uuid.Parse(hit); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, false, nil
}

func (s *gameService) GetGameBySlug(ctx context.Context, slug string) (*dto.GameDetailResponse, error) {
	game, err := s.gameRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	guides, err := s.guideRepo.FindByGame(ctx, game.ID, 5)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.FindByGame(ctx, game.ID, 5)
	if err != nil {
		return nil, err
	}

	detail := &dto.GameDetailResponse{
		GameResponse: *buildGameResponse(game),
		Guides:       make([]dto.GuideResponse, 0, len(guides)),
		Reviews:      make([]dto.ReviewResponse, 0, len(reviews)),
	}
	for _, guide := range guides {
		detail.Guides = append(detail.Guides, *buildGuideResponse(guide))
	}
	for _, review := range reviews {
		detail.Reviews = append(detail.Reviews, *buildReviewResponse(review))
	}

	return detail, nil
}

func (s *gameService) CreateGame(ctx context.Context, req dto.CreateGameRequest, cover *ImageUpload) (*dto.GameResponse, error) {
	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, apperror.Validation("release_date must be in YYYY-MM-DD format")
	}

	slug := UniqueSlug(req.Title, func(candidate string) bool {
		_, err := s.gameRepo.FindBySlug(ctx, candidate)
		return err == nil
	})

	game := &model.Game{
		Title:       req.Title,
		Slug:        slug,
		Developer:   req.Developer,
		Publisher:   req.Publisher,
		ReleaseDate: releaseDate,
		Platform:    req.Platform,
		Description: req.Description,
		TrailerURL:  req.TrailerURL,
	}

	if cover != nil && cover.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, cover.Reader, storage.FolderGameCovers, cover.FileName)
		if err != nil {
			return nil, err
		}
		game.CoverURL = &url
	}

	if len(req.GenreSlugs) > 0 {
		genres, err := s.genreRepo.FindBySlugs(ctx, req.GenreSlugs)
		if err != nil {
			return nil, err
		}
		game.Genres = genres
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation("a game with this title already exists")
		}
		return nil, err
	}

	s.indexGame(game)

	return buildGameResponse(game), nil
}

func (s *gameService) UpdateGame(ctx context.Context, slug string, req dto.UpdateGameRequest, cover *ImageUpload) (*dto.GameResponse, error) {
	game, err := s.gameRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		game.Title = *req.Title
	}
	if req.Developer != nil {
		game.Developer = *req.Developer
	}
	if req.Publisher != nil {
		game.Publisher = *req.Publisher
	}
	if req.ReleaseDate != nil {
		releaseDate, err := time.Parse("2006-01-02", *req.ReleaseDate)
		if err != nil {
			return nil, apperror.Validation("release_date must be in YYYY-MM-DD format")
		}
		game.ReleaseDate = releaseDate
	}
	if req.Platform != nil {
		game.Platform = *req.Platform
	}
	if req.Description != nil {
		game.Description = *req.Description
	}
	if req.TrailerURL != nil {
		game.TrailerURL = req.TrailerURL
	}

	if cover != nil && cover.Reader != nil && s.imageStorage != nil {
		if game.CoverURL != nil {
			if err := s.imageStorage.DeleteImage(ctx, *game.CoverURL); err != nil {
				log.Printf("failed to delete old cover for game %s: %v", game.Slug, err)
			}
		}
		url, err := s.imageStorage.UploadImage(ctx, cover.Reader, storage.FolderGameCovers, cover.FileName)
		if err != nil {
			return nil, err
		}
		game.CoverURL = &url
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}

	if req.GenreSlugs != nil {
		genres, err := s.genreRepo.FindBySlugs(ctx, req.GenreSlugs)
		if err != nil {
			return nil, err
		}
		if err := s.gameRepo.ReplaceGenres(ctx, game, genres); err != nil {
			return nil, err
		}
		game.Genres = genres
	}

	s.indexGame(game)

	return buildGameResponse(game), nil
}

func (s *gameService) DeleteGame(ctx context.Context, slug string) error {
	game, err := s.gameRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := s.gameRepo.Delete(ctx, game.ID); err != nil {
		return err
	}

	if game.CoverURL != nil && s.imageStorage != nil {
		if err := s.imageStorage.DeleteImage(ctx, *game.CoverURL); err != nil {
			log.Printf("failed to delete cover for game %s: %v", game.Slug, err)
		}
	}

	if s.search != nil {
		if err := s.search.DeleteDocument(IndexGames, game.ID.String()); err != nil {
			log.Printf("failed to remove game %s from search index: %v", game.Slug, err)
		}
	}

	return nil
}

// indexGame keeps the search index in sync. Indexing failures are logged, not
// surfaced: the database write already succeeded.
func (s *gameService) indexGame(game *model.Game) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexGame(game); err != nil {
		log.Printf("failed to index game %s: %v", game.Slug, err)
	}
}

func (s *gameService) ListGenres(ctx context.Context) ([]dto.GenreResponse, error) {
	genres, err := s.genreRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for _, genre := range genres {
		responses = append(responses, dto.GenreResponse{Name: genre.Name, Slug: genre.Slug})
	}
	return responses, nil
}

func (s *gameService) CreateGenre(ctx context.Context, req dto.CreateGenreRequest) (*dto.GenreResponse, error) {
	genre := &model.Genre{
		Name: req.Name,
		Slug: Slugify(req.Name),
	}

	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation("a genre with this name already exists")
		}
		return nil, err
	}

	return &dto.GenreResponse{Name: genre.Name, Slug: genre.Slug}, nil
}

func (s *gameService) DeleteGenre(ctx context.Context, slug string) error {
	if _, err := s.genreRepo.FindBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return s.genreRepo.Delete(ctx, slug)
}

func buildGameResponse(game *model.Game) *dto.GameResponse {
	genres := make([]dto.GenreResponse, 0, len(game.Genres))
	for _, genre := range game.Genres {
		genres = append(genres, dto.GenreResponse{Name: genre.Name, Slug: genre.Slug})
	}

	return &dto.GameResponse{
		ID:          game.ID.String(),
		Title:       game.Title,
		Slug:        game.Slug,
		Developer:   game.Developer,
		Publisher:   game.Publisher,
		ReleaseDate: game.ReleaseDate,
		Platform:    game.Platform,
		Description: game.Description,
		CoverURL:    game.CoverURL,
		TrailerURL:  game.TrailerURL,
		Rating:      game.Rating,
		Genres:      genres,
	}
}
