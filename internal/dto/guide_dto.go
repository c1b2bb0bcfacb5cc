package dto

import "time"

type GuideFilter struct {
	Game       string `form:"game"` // game slug
	Difficulty string `form:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Search     string `form:"search"`
	PageQuery
}

type CreateGuideRequest struct {
	Title      string `json:"title" form:"title" binding:"required,max=200"`
	GameSlug   string `json:"game" form:"game" binding:"required"`
	Content    string `json:"content" form:"content" binding:"required"`
	Difficulty string `json:"difficulty" form:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
}

type UpdateGuideRequest struct {
	Title      *string `json:"title" binding:"omitempty,max=200"`
	Content    *string `json:"content"`
	Difficulty *string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
}

type GuideResponse struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Slug       string         `json:"slug"`
	GameSlug   string         `json:"game_slug"`
	GameTitle  string         `json:"game_title"`
	Author     AuthorResponse `json:"author"`
	Content    string         `json:"content"`
	Difficulty string         `json:"difficulty"`
	ImageURL   *string        `json:"featured_image_url"`
	Views      int            `json:"views"`
	CreatedAt  time.Time      `json:"created_at"`
}
