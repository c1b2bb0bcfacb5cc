package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment / like target kinds.
const (
	TargetNews   = "news"
	TargetGuide  = "guide"
	TargetReview = "review"
	TargetTopic  = "topic"
)

// TargetTypes lists the accepted comment/like target kinds.
var TargetTypes = []string{TargetNews, TargetGuide, TargetReview, TargetTopic}

// Comment is attached to a content entity by (target type, target id).
type Comment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID   uuid.UUID `gorm:"type:uuid;index;not null" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	TargetType string    `gorm:"size:20;index:idx_comment_target;not null" json:"target_type"`
	TargetID   uuid.UUID `gorm:"type:uuid;index:idx_comment_target;not null" json:"target_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

// Like votes.
const (
	VoteLike    = 1
	VoteDislike = -1
)

// Like is a like/dislike reaction on a content entity.
type Like struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TargetType string    `gorm:"size:20;index:idx_like_target;not null" json:"target_type"`
	TargetID   uuid.UUID `gorm:"type:uuid;index:idx_like_target;not null" json:"target_id"`
	Vote       int       `gorm:"not null" json:"vote"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
