package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/model"
	"gamehub/backend/internal/repository"
	"gamehub/backend/pkg/apperror"
	"gamehub/backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// DefaultNotificationPageSize is the notification listing page size.
const DefaultNotificationPageSize = 20

type NotificationService interface {
	ListNotifications(ctx context.Context, userID string, page dto.PageQuery) (*dto.Paginated[dto.NotificationResponse], error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	// Publish pushes an already persisted notification to the owner's Redis
	// channel so connected clients pick it up without polling.
	Publish(ctx context.Context, notification *model.Notification)
}

type notificationService struct {
	repo        repository.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

func (s *notificationService) ListNotifications(ctx context.Context, userID string, page dto.PageQuery) (*dto.Paginated[dto.NotificationResponse], error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	page.Normalize(DefaultNotificationPageSize)

	offset := pagination.Offset(page.Page, page.Limit)
	notifications, total, err := s.repo.FindByUserID(ctx, uid, offset, page.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.NotificationResponse{
			ID:        n.ID.String(),
			Message:   n.Message,
			Link:      n.Link,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return dto.NewPaginated(responses, total, page.Page, page.Limit), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return 0, apperror.ErrUnauthorized
	}
	return s.repo.CountUnread(ctx, uid)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return apperror.ErrUnauthorized
	}
	nid, err := uuid.Parse(notificationID)
	if err != nil {
		return apperror.ErrNotFound
	}

	if err := s.repo.MarkAsRead(ctx, nid, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return apperror.ErrUnauthorized
	}
	return s.repo.MarkAllAsRead(ctx, uid)
}

func (s *notificationService) Publish(ctx context.Context, notification *model.Notification) {
	if s.redisClient == nil || notification == nil {
		return
	}

	payload, err := json.Marshal(dto.NotificationResponse{
		ID:        notification.ID.String(),
		Message:   notification.Message,
		Link:      notification.Link,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	})
	if err != nil {
		log.Printf("failed to marshal notification %s: %v", notification.ID, err)
		return
	}

	channel := fmt.Sprintf("user_notifications:%s", notification.UserID)
	if err := s.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("failed to publish notification to %s: %v", channel, err)
	}
}
