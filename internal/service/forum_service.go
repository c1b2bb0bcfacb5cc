package service

import (
	"context"
	"errors"
	"fmt"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"gamehub/backend/pkg/apperror"
	"gamehub/backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// notificationPreviewLength bounds the title preview embedded in notification
// messages.
const notificationPreviewLength = 30

type ForumService interface {
	ListTopics(ctx context.Context, page dto.PageQuery) (*dto.Paginated[dto.TopicResponse], error)
	CreateTopic(ctx context.Context, authorID string, req dto.CreateTopicRequest) (*dto.TopicResponse, error)
	// GetTopicBySlug counts a view and returns the topic with a page of posts,
	// oldest first.
	GetTopicBySlug(ctx context.Context, slug string, page dto.PageQuery) (*dto.TopicDetailResponse, error)
	// CreatePost stores the reply and, unless the author replies to their own
	// topic, notifies the topic author in the same transaction.
	CreatePost(ctx context.Context, authorID, topicSlug string, req dto.CreatePostRequest) (*dto.PostResponse, error)
}

type forumService struct {
	forumRepo repository.ForumRepository
	userRepo  repository.UserRepository
	notifier  NotificationService
}

func NewForumService(forumRepo repository.ForumRepository, userRepo repository.UserRepository, notifier NotificationService) ForumService {
	return &forumService{
		forumRepo: forumRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

func (s *forumService) ListTopics(ctx context.Context, page dto.PageQuery) (*dto.Paginated[dto.TopicResponse], error) {
	page.Normalize(DefaultContentPageSize)

	offset := pagination.Offset(page.Page, page.Limit)
	topics, total, err := s.forumRepo.FindTopics(ctx, offset, page.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TopicResponse, 0, len(topics))
	for _, topic := range topics {
		postCount, err := s.forumRepo.CountPosts(ctx, topic.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *buildTopicResponse(topic, postCount))
	}

	return dto.NewPaginated(responses, total, page.Page, page.Limit), nil
}

func (s *forumService) CreateTopic(ctx context.Context, authorID string, req dto.CreateTopicRequest) (*dto.TopicResponse, error) {
	author, err := uuid.Parse(authorID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	slug := UniqueSlug(req.Title, func(candidate string) bool {
		_, err := s.forumRepo.FindTopicBySlug(ctx, candidate)
		return err == nil
	})

	topic := &model.ForumTopic{
		Title:    req.Title,
		Slug:     slug,
		AuthorID: author,
	}

	if err := s.forumRepo.CreateTopic(ctx, topic); err != nil {
		return nil, err
	}

	created, err := s.forumRepo.FindTopicBySlug(ctx, topic.Slug)
	if err != nil {
		return nil, err
	}

	return buildTopicResponse(created, 0), nil
}

func (s *forumService) GetTopicBySlug(ctx context.Context, slug string, page dto.PageQuery) (*dto.TopicDetailResponse, error) {
	topic, err := s.forumRepo.FindTopicBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if err := s.forumRepo.IncrementTopicViews(ctx, topic.ID); err != nil {
		return nil, err
	}
	topic.Views++

	page.Normalize(DefaultContentPageSize)
	offset := pagination.Offset(page.Page, page.Limit)
	posts, total, err := s.forumRepo.FindPostsByTopic(ctx, topic.ID, offset, page.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, *buildPostResponse(post))
	}

	return &dto.TopicDetailResponse{
		Topic: *buildTopicResponse(topic, total),
		Posts: dto.NewPaginated(responses, total, page.Page, page.Limit),
	}, nil
}

func (s *forumService) CreatePost(ctx context.Context, authorID, topicSlug string, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	author, err := uuid.Parse(authorID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	topic, err := s.forumRepo.FindTopicBySlug(ctx, topicSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	poster, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post := &model.ForumPost{
		TopicID:  topic.ID,
		AuthorID: author,
		Content:  req.Content,
	}

	var notification *model.Notification
	if topic.AuthorID != author {
		notification = &model.Notification{
			UserID: topic.AuthorID,
			Message: fmt.Sprintf("%s replied to your topic \"%s\"",
				poster.Username, TruncatePreview(topic.Title, notificationPreviewLength)),
			Link: fmt.Sprintf("/forum/%s", topic.Slug),
		}
	}

	if err := s.forumRepo.CreatePost(ctx, post, notification); err != nil {
		return nil, err
	}

	if notification != nil {
		s.notifier.Publish(ctx, notification)
	}

	post.Author = *poster

	return buildPostResponse(post), nil
}

func buildTopicResponse(topic *model.ForumTopic, postCount int64) *dto.TopicResponse {
	return &dto.TopicResponse{
		ID:        topic.ID.String(),
		Title:     topic.Title,
		Slug:      topic.Slug,
		Views:     topic.Views,
		PostCount: postCount,
		CreatedAt: topic.CreatedAt,
		Author: dto.AuthorResponse{
			Username:  topic.Author.Username,
			AvatarURL: topic.Author.AvatarURL,
		},
	}
}

func buildPostResponse(post *model.ForumPost) *dto.PostResponse {
	return &dto.PostResponse{
		ID:        post.ID.String(),
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		Author: dto.AuthorResponse{
			Username:  post.Author.Username,
			AvatarURL: post.Author.AvatarURL,
		},
	}
}
