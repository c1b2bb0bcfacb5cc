package dto

import "time"

type NewsFilter struct {
	Game   string `form:"game"` // game slug
	Search string `form:"search"`
	PageQuery
}

type CreateNewsRequest struct {
	Title      string  `json:"title" form:"title" binding:"required,max=200"`
	Content    string  `json:"content" form:"content" binding:"required"`
	GameSlug   *string `json:"game" form:"game"`
	IsFeatured bool    `json:"is_featured" form:"is_featured"`
}

type UpdateNewsRequest struct {
	Title      *string `json:"title" binding:"omitempty,max=200"`
	Content    *string `json:"content"`
	GameSlug   *string `json:"game"`
	IsFeatured *bool   `json:"is_featured"`
}

type NewsResponse struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Slug       string         `json:"slug"`
	Content    string         `json:"content"`
	Author     AuthorResponse `json:"author"`
	GameSlug   *string        `json:"game_slug"`
	IsFeatured bool           `json:"is_featured"`
	ImageURL   *string        `json:"image_url"`
	Views      int            `json:"views"`
	CreatedAt  time.Time      `json:"created_at"`
}
