package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review rating bounds, inclusive.
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 10
)

// Review is a scored player review. Game.Rating is derived from the ratings
// stored here.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GameID    uuid.UUID `gorm:"type:uuid;index;not null" json:"game_id"`
	Game      Game      `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"game,omitempty"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    int       `gorm:"not null" json:"rating"`
	Pros      string    `gorm:"type:text" json:"pros"`
	Cons      string    `gorm:"type:text" json:"cons"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
