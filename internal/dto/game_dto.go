package dto

import "time"

type GameFilter struct {
	Platform string `form:"platform"`
	Genre    string `form:"genre"` // genre slug
	Search   string `form:"search"`
	PageQuery
}

type CreateGameRequest struct {
	Title       string   `json:"title" form:"title" binding:"required,max=200"`
	Developer   string   `json:"developer" form:"developer" binding:"required,max=100"`
	Publisher   string   `json:"publisher" form:"publisher" binding:"omitempty,max=100"`
	ReleaseDate string   `json:"release_date" form:"release_date" binding:"required"` // YYYY-MM-DD
	Platform    string   `json:"platform" form:"platform" binding:"required,oneof=PC PS5 XBOX SWITCH MOBILE"`
	Description string   `json:"description" form:"description" binding:"required"`
	TrailerURL  *string  `json:"trailer_url" form:"trailer_url" binding:"omitempty,url"`
	GenreSlugs  []string `json:"genres" form:"genres"`
}

type UpdateGameRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=200"`
	Developer   *string  `json:"developer" binding:"omitempty,max=100"`
	Publisher   *string  `json:"publisher" binding:"omitempty,max=100"`
	ReleaseDate *string  `json:"release_date"`
	Platform    *string  `json:"platform" binding:"omitempty,oneof=PC PS5 XBOX SWITCH MOBILE"`
	Description *string  `json:"description"`
	TrailerURL  *string  `json:"trailer_url" binding:"omitempty,url"`
	GenreSlugs  []string `json:"genres"`
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CreateGenreRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type GameResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Developer   string          `json:"developer"`
	Publisher   string          `json:"publisher"`
	ReleaseDate time.Time       `json:"release_date"`
	Platform    string          `json:"platform"`
	Description string          `json:"description"`
	CoverURL    *string         `json:"cover_url"`
	TrailerURL  *string         `json:"trailer_url"`
	Rating      float64         `json:"rating"`
	Genres      []GenreResponse `json:"genres"`
}

type GameDetailResponse struct {
	GameResponse
	Guides  []GuideResponse  `json:"guides"`
	Reviews []ReviewResponse `json:"reviews"`
}
