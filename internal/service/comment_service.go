package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"gamehub/backend/pkg/apperror"
	"gamehub/backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const rateLimitActionComment = "create_comment"

type CommentService interface {
	// CreateComment stores the comment and, unless the commenter owns the
	// target, notifies the target's author in the same transaction.
	CreateComment(ctx context.Context, authorID string, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, filter dto.CommentFilter) (*dto.Paginated[dto.CommentResponse], error)
	CreateLike(ctx context.Context, userID string, req dto.CreateLikeRequest) (*dto.LikeCountsResponse, error)
	LikeCounts(ctx context.Context, targetType, targetID string) (*dto.LikeCountsResponse, error)
}

// commentTarget is the resolved destination of a comment or like.
type commentTarget struct {
	authorID uuid.UUID
	title    string
	link     string
}

type commentService struct {
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	newsRepo    repository.NewsRepository
	guideRepo   repository.GuideRepository
	reviewRepo  repository.ReviewRepository
	forumRepo   repository.ForumRepository
	userRepo    repository.UserRepository
	rating      RatingService
	notifier    NotificationService
	redisClient *redis.Client
	rateLimit   time.Duration
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	newsRepo repository.NewsRepository,
	guideRepo repository.GuideRepository,
	reviewRepo repository.ReviewRepository,
	forumRepo repository.ForumRepository,
	userRepo repository.UserRepository,
	rating RatingService,
	notifier NotificationService,
	redisClient *redis.Client,
	rateLimit time.Duration,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		newsRepo:    newsRepo,
		guideRepo:   guideRepo,
		reviewRepo:  reviewRepo,
		forumRepo:   forumRepo,
		userRepo:    userRepo,
		rating:      rating,
		notifier:    notifier,
		redisClient: redisClient,
		rateLimit:   rateLimit,
	}
}

func (s *commentService) CreateComment(ctx context.Context, authorID string, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	author, err := uuid.Parse(authorID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, author, rateLimitActionComment, s.rateLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		ttl, _ := GetRateLimitTTL(ctx, s.redisClient, author, rateLimitActionComment)
		return nil, apperror.New(429,
			fmt.Sprintf("you are commenting too fast, try again in %.0f seconds", ttl.Seconds()),
			apperror.ErrRateLimitExceeded)
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return nil, apperror.Validation("target_id must be a valid UUID")
	}

	target, err := s.resolveTarget(ctx, req.TargetType, targetID)
	if err != nil {
		// The reserved cooldown slot should not punish a failed attempt.
		_ = ClearRateLimit(ctx, s.redisClient, author, rateLimitActionComment)
		return nil, err
	}

	commenter, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		_ = ClearRateLimit(ctx, s.redisClient, author, rateLimitActionComment)
		return nil, err
	}

	comment := &model.Comment{
		AuthorID:   author,
		TargetType: req.TargetType,
		TargetID:   targetID,
		Content:    req.Content,
	}

	var notification *model.Notification
	if target.authorID != uuid.Nil && target.authorID != author {
		notification = &model.Notification{
			UserID: target.authorID,
			Message: fmt.Sprintf("%s commented on your %s \"%s\"",
				commenter.Username, req.TargetType, TruncatePreview(target.title, notificationPreviewLength)),
			Link: target.link,
		}
	}

	if err := s.commentRepo.CreateWithNotification(ctx, comment, notification); err != nil {
		_ = ClearRateLimit(ctx, s.redisClient, author, rateLimitActionComment)
		return nil, err
	}

	if notification != nil {
		s.notifier.Publish(ctx, notification)
	}

	if _, err := s.rating.RecomputeUserScore(ctx, author); err != nil {
		return nil, err
	}

	return &dto.CommentResponse{
		ID:        comment.ID.String(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		Author: dto.AuthorResponse{
			Username:  commenter.Username,
			AvatarURL: commenter.AvatarURL,
		},
	}, nil
}

func (s *commentService) ListComments(ctx context.Context, filter dto.CommentFilter) (*dto.Paginated[dto.CommentResponse], error) {
	targetID, err := uuid.Parse(filter.TargetID)
	if err != nil {
		return nil, apperror.Validation("target_id must be a valid UUID")
	}

	filter.Normalize(DefaultContentPageSize)

	offset := pagination.Offset(filter.Page, filter.Limit)
	comments, total, err := s.commentRepo.FindByTarget(ctx, filter.TargetType, targetID, offset, filter.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, dto.CommentResponse{
			ID:        comment.ID.String(),
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
			Author: dto.AuthorResponse{
				Username:  comment.Author.Username,
				AvatarURL: comment.Author.AvatarURL,
			},
		})
	}

	return dto.NewPaginated(responses, total, filter.Page, filter.Limit), nil
}

func (s *commentService) CreateLike(ctx context.Context, userID string, req dto.CreateLikeRequest) (*dto.LikeCountsResponse, error) {
	user, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return nil, apperror.Validation("target_id must be a valid UUID")
	}

	if _, err := s.resolveTarget(ctx, req.TargetType, targetID); err != nil {
		return nil, err
	}

	like := &model.Like{
		UserID:     user,
		TargetType: req.TargetType,
		TargetID:   targetID,
		Vote:       req.Vote,
	}

	if err := s.likeRepo.Create(ctx, like); err != nil {
		return nil, err
	}

	// Giving likes earns the voter reputation points.
	if _, err := s.rating.RecomputeUserScore(ctx, user); err != nil {
		return nil, err
	}

	return s.likeCounts(ctx, req.TargetType, targetID)
}

func (s *commentService) LikeCounts(ctx context.Context, targetType, targetID string) (*dto.LikeCountsResponse, error) {
	id, err := uuid.Parse(targetID)
	if err != nil {
		return nil, apperror.Validation("target_id must be a valid UUID")
	}
	return s.likeCounts(ctx, targetType, id)
}

func (s *commentService) likeCounts(ctx context.Context, targetType string, targetID uuid.UUID) (*dto.LikeCountsResponse, error) {
	likes, err := s.likeRepo.CountByTarget(ctx, targetType, targetID, model.VoteLike)
	if err != nil {
		return nil, err
	}
	dislikes, err := s.likeRepo.CountByTarget(ctx, targetType, targetID, model.VoteDislike)
	if err != nil {
		return nil, err
	}
	return &dto.LikeCountsResponse{Likes: likes, Dislikes: dislikes}, nil
}

// resolveTarget loads the commented entity and derives the notification
// recipient, title preview and link for it.
func (s *commentService) resolveTarget(ctx context.Context, targetType string, targetID uuid.UUID) (*commentTarget, error) {
	var target *commentTarget
	var err error

	switch targetType {
	case model.TargetNews:
		var news *model.News
		if news, err = s.newsRepo.FindByID(ctx, targetID); err == nil {
			target = &commentTarget{
				authorID: news.AuthorID,
				title:    news.Title,
				link:     fmt.Sprintf("/news/%s", news.Slug),
			}
		}
	case model.TargetGuide:
		var guide *model.Guide
		if guide, err = s.guideRepo.FindByID(ctx, targetID); err == nil {
			target = &commentTarget{
				authorID: guide.AuthorID,
				title:    guide.Title,
				link:     fmt.Sprintf("/guides/%s", guide.Slug),
			}
		}
	case model.TargetReview:
		var review *model.Review
		if review, err = s.reviewRepo.FindByID(ctx, targetID); err == nil {
			target = &commentTarget{
				authorID: review.AuthorID,
				title:    review.Game.Title,
				link:     fmt.Sprintf("/games/%s", review.Game.Slug),
			}
		}
	case model.TargetTopic:
		var topic *model.ForumTopic
		if topic, err = s.forumRepo.FindTopicByID(ctx, targetID); err == nil {
			target = &commentTarget{
				authorID: topic.AuthorID,
				title:    topic.Title,
				link:     fmt.Sprintf("/forum/%s", topic.Slug),
			}
		}
	default:
		return nil, apperror.Validation("unknown target type")
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	return target, nil
}
