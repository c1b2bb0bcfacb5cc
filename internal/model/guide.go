package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Guide difficulty levels.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Guide is a player-written walkthrough for a game.
type Guide struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string    `gorm:"size:200;not null" json:"title"`
	Slug             string    `gorm:"size:210;uniqueIndex;not null" json:"slug"`
	GameID           uuid.UUID `gorm:"type:uuid;not null" json:"game_id"`
	Game             Game      `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"game,omitempty"`
	AuthorID         uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Author           User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Content          string    `gorm:"type:text;not null" json:"content"`
	Difficulty       string    `gorm:"size:20;not null" json:"difficulty"`
	FeaturedImageURL *string   `gorm:"type:text" json:"featured_image_url,omitempty"`
	Views            int       `gorm:"default:0" json:"views"`
	CreatedAt        time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (g *Guide) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID, err = uuid.NewV7()
	}
	return
}
