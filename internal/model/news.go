package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// News is an editorial article, optionally attached to a game. The game link
// is loose: deleting the game nulls it instead of deleting the article.
type News struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string     `gorm:"size:200;not null" json:"title"`
	Slug       string     `gorm:"size:210;uniqueIndex;not null" json:"slug"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	AuthorID   uuid.UUID  `gorm:"type:uuid;not null" json:"author_id"`
	Author     User       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	GameID     *uuid.UUID `gorm:"type:uuid" json:"game_id,omitempty"`
	Game       *Game      `gorm:"foreignKey:GameID;constraint:OnDelete:SET NULL" json:"game,omitempty"`
	IsFeatured bool       `gorm:"default:false" json:"is_featured"`
	ImageURL   *string    `gorm:"type:text" json:"image_url,omitempty"`
	Views      int        `gorm:"default:0" json:"views"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (n *News) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
