package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Genre categorizes games.
type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Slug      string    `gorm:"size:60;uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Game platforms (single choice per game).
const (
	PlatformPC     = "PC"
	PlatformPS5    = "PS5"
	PlatformXbox   = "XBOX"
	PlatformSwitch = "SWITCH"
	PlatformMobile = "MOBILE"
)

// Platforms lists the accepted platform values.
var Platforms = []string{PlatformPC, PlatformPS5, PlatformXbox, PlatformSwitch, PlatformMobile}

// Game is the catalog entry. Rating is a cached derived value; the reviews
// table is the source of truth.
type Game struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:200;index;not null" json:"title"`
	Slug        string    `gorm:"size:210;uniqueIndex;not null" json:"slug"`
	Developer   string    `gorm:"size:100;not null" json:"developer"`
	Publisher   string    `gorm:"size:100" json:"publisher"`
	ReleaseDate time.Time `gorm:"index;not null" json:"release_date"`
	Platform    string    `gorm:"size:50;not null" json:"platform"`
	Description string    `gorm:"type:text" json:"description"`
	CoverURL    *string   `gorm:"type:text" json:"cover_url,omitempty"`
	TrailerURL  *string   `json:"trailer_url,omitempty"`
	Rating      float64   `gorm:"default:0" json:"rating"`
	Genres      []Genre   `gorm:"many2many:game_genres" json:"genres,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID, err = uuid.NewV7()
	}
	return
}
