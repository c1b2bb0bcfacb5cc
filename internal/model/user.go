package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is the login identity. Email is the login identifier; username is the
// public handle. Both are globally unique.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:30;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	IsStaff      bool      `gorm:"default:false" json:"is_staff"`
	IsSuperuser  bool      `gorm:"default:false" json:"is_superuser"`
	AvatarURL    *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	Bio          string    `gorm:"size:500" json:"bio"`
	DateJoined   time.Time `gorm:"autoCreateTime" json:"date_joined"`

	Profile *Profile    `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Rating  *UserRating `gorm:"constraint:OnDelete:CASCADE" json:"rating,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Profile sex choices.
const (
	SexMen   = "men"
	SexWomen = "women"
)

// Profile extends User 1-1 with demographic and social fields. Created in the
// same transaction as its User, never on its own.
type Profile struct {
	UserID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	FirstName       *string        `gorm:"size:30" json:"first_name,omitempty"`
	LastName        *string        `gorm:"size:30" json:"last_name,omitempty"`
	Birthday        *time.Time     `json:"birthday,omitempty"`
	Age             *int           `json:"age,omitempty"`
	Sex             string         `gorm:"size:6" json:"sex"`
	GamingPlatforms string         `gorm:"size:100" json:"gaming_platforms"`
	Link            *string        `json:"link,omitempty"`
	Status          bool           `gorm:"default:true" json:"status"`
	Achievements    datatypes.JSON `gorm:"default:'{}'" json:"achievements"`
	FavoriteGenres  []Genre        `gorm:"many2many:profile_favorite_genres" json:"favorite_genres,omitempty"`
	LastActivity    time.Time      `gorm:"autoUpdateTime" json:"last_activity"`
}

// FriendUser is a directed friend edge between profiles. The pair carries no
// uniqueness constraint, so repeated requests produce duplicate edges.
type FriendUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	FriendID  uuid.UUID `gorm:"type:uuid;index;not null" json:"friend_id"`
	User      Profile   `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Friend    Profile   `gorm:"foreignKey:FriendID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// UserRating holds the derived reputation score. The score is a full
// recomputation from authored comments, guides and likes, never incremented.
type UserRating struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Score     int       `gorm:"default:0" json:"score"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
