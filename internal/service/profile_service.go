package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"gamehub/backend/pkg/apperror"
	"gamehub/backend/pkg/storage"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetCurrentProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	GetProfileByUsername(ctx context.Context, username string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest, avatar *ImageUpload) (*dto.ProfileResponse, error)
	AddFriend(ctx context.Context, userID string, friendUsername string) error
	ListFriends(ctx context.Context, username string) ([]dto.FriendResponse, error)
}

type profileService struct {
	userRepo     repository.UserRepository
	friendRepo   repository.FriendRepository
	genreRepo    repository.GenreRepository
	imageStorage storage.ImageStorage
	redisClient  *redis.Client
	cacheTTL     time.Duration
}

func NewProfileService(userRepo repository.UserRepository, friendRepo repository.FriendRepository, genreRepo repository.GenreRepository, imageStorage storage.ImageStorage, redisClient *redis.Client, cacheTTL time.Duration) ProfileService {
	return &profileService{
		userRepo:     userRepo,
		friendRepo:   friendRepo,
		genreRepo:    genreRepo,
		imageStorage: imageStorage,
		redisClient:  redisClient,
		cacheTTL:     cacheTTL,
	}
}

func (s *profileService) GetCurrentProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return buildProfileResponse(user), nil
}

// GetProfileByUsername serves the public profile, cached in Redis.
func (s *profileService) GetProfileByUsername(ctx context.Context, username string) (*dto.ProfileResponse, error) {
	cacheKey := profileCacheKey(username)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.ProfileResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	resp := buildProfileResponse(user)

	if s.redisClient != nil {
		if payload, err := json.Marshal(resp); err == nil {
			s.redisClient.Set(ctx, cacheKey, payload, s.cacheTTL)
		}
	}

	return resp, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest, avatar *ImageUpload) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if avatar != nil && avatar.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, storage.FolderAvatars, avatar.FileName)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = &url
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	profile := user.Profile
	if profile == nil {
		profile = &model.Profile{UserID: user.ID}
	}
	if req.FirstName != nil {
		profile.FirstName = req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = req.LastName
	}
	if req.Age != nil {
		profile.Age = req.Age
	}
	if req.Sex != nil {
		profile.Sex = *req.Sex
	}
	if req.GamingPlatforms != nil {
		profile.GamingPlatforms = *req.GamingPlatforms
	}
	if req.Link != nil {
		profile.Link = req.Link
	}

	if err := s.userRepo.Update(ctx, user, profile); err != nil {
		return nil, err
	}

	if req.FavoriteGenres != nil {
		genres, err := s.genreRepo.FindBySlugs(ctx, req.FavoriteGenres)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.ReplaceFavoriteGenres(ctx, profile, genres); err != nil {
			return nil, err
		}
	}

	// Drop the cached public profile so readers see the update.
	if s.redisClient != nil {
		s.redisClient.Del(ctx, profileCacheKey(user.Username))
	}

	return s.GetCurrentProfile(ctx, userID)
}

func (s *profileService) AddFriend(ctx context.Context, userID string, friendUsername string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	friend, err := s.userRepo.FindByUsername(ctx, friendUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if friend.ID == user.ID {
		return apperror.Validation("cannot add yourself as a friend")
	}

	// Edges are directed and duplicates are allowed.
	return s.friendRepo.Create(ctx, &model.FriendUser{
		UserID:   user.ID,
		FriendID: friend.ID,
	})
}

func (s *profileService) ListFriends(ctx context.Context, username string) ([]dto.FriendResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	entries, err := s.friendRepo.FindFriends(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	friends := make([]dto.FriendResponse, 0, len(entries))
	for _, entry := range entries {
		friends = append(friends, dto.FriendResponse{
			Username:  entry.Username,
			AvatarURL: entry.AvatarURL,
			AddedAt:   entry.CreatedAt,
		})
	}

	return friends, nil
}

func profileCacheKey(username string) string {
	return fmt.Sprintf("profile:public:%s", username)
}

func buildProfileResponse(user *model.User) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		Username:   user.Username,
		AvatarURL:  user.AvatarURL,
		Bio:        user.Bio,
		DateJoined: user.DateJoined,
	}

	if user.Rating != nil {
		resp.Score = user.Rating.Score
	}

	if p := user.Profile; p != nil {
		resp.FirstName = p.FirstName
		resp.LastName = p.LastName
		resp.Age = p.Age
		resp.Sex = p.Sex
		resp.GamingPlatforms = p.GamingPlatforms
		resp.Link = p.Link
		resp.LastActivity = p.LastActivity
		resp.Achievements = json.RawMessage(p.Achievements)

		genres := make([]dto.GenreResponse, 0, len(p.FavoriteGenres))
		for _, g := range p.FavoriteGenres {
			genres = append(genres, dto.GenreResponse{Name: g.Name, Slug: g.Slug})
		}
		resp.FavoriteGenres = genres
	}

	return resp
}
