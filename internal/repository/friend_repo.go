package repository

import (
	"context"
	"time"

	"gamehub/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendEntry is the flattened row returned for friend listings.
type FriendEntry struct {
	Username  string
	AvatarURL *string
	CreatedAt time.Time
}

type FriendRepository interface {
	// Create appends a directed edge. Duplicate pairs are allowed; there is no
	// uniqueness constraint on (user, friend).
	Create(ctx context.Context, edge *model.FriendUser) error
	FindFriends(ctx context.Context, userID uuid.UUID) ([]FriendEntry, error)
}

type friendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(ctx context.Context, edge *model.FriendUser) error {
	return r.db.WithContext(ctx).Create(edge).Error
}

func (r *friendRepository) FindFriends(ctx context.Context, userID uuid.UUID) ([]FriendEntry, error) {
	var entries []FriendEntry
	err := r.db.WithContext(ctx).Model(&model.FriendUser{}).
		Select("users.username AS username, users.avatar_url AS avatar_url, friend_users.created_at AS created_at").
		Joins("JOIN users ON users.id = friend_users.friend_id").
		Where("friend_users.user_id = ?", userID).
		Order("friend_users.created_at DESC").
		Scan(&entries).Error
	return entries, err
}
