package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ForumTopic struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Slug      string    `gorm:"size:210;uniqueIndex;not null" json:"slug"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Views     int       `gorm:"default:0" json:"views"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (t *ForumTopic) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID, err = uuid.NewV7()
	}
	return
}

type ForumPost struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TopicID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"topic_id"`
	Topic     ForumTopic `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"topic,omitempty"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null" json:"author_id"`
	Author    User       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (p *ForumPost) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}
