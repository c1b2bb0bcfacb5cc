package dto

import "time"

type CreateReviewRequest struct {
	GameSlug string `json:"game" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Rating   int    `json:"rating" binding:"required,gte=1,lte=10"`
	Pros     string `json:"pros"`
	Cons     string `json:"cons"`
}

type UpdateReviewRequest struct {
	Content *string `json:"content"`
	Rating  *int    `json:"rating" binding:"omitempty,gte=1,lte=10"`
	Pros    *string `json:"pros"`
	Cons    *string `json:"cons"`
}

type ReviewResponse struct {
	ID        string         `json:"id"`
	GameSlug  string         `json:"game_slug"`
	Author    AuthorResponse `json:"author"`
	Content   string         `json:"content"`
	Rating    int            `json:"rating"`
	Pros      string         `json:"pros"`
	Cons      string         `json:"cons"`
	CreatedAt time.Time      `json:"created_at"`
}
