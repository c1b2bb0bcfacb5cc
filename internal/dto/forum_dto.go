package dto

import "time"

type CreateTopicRequest struct {
	Title string `json:"title" binding:"required,max=200"`
}

type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

type TopicResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	Author    AuthorResponse `json:"author"`
	Views     int            `json:"views"`
	PostCount int64          `json:"post_count"`
	CreatedAt time.Time      `json:"created_at"`
}

type PostResponse struct {
	ID        string         `json:"id"`
	Author    AuthorResponse `json:"author"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
}

type TopicDetailResponse struct {
	Topic TopicResponse            `json:"topic"`
	Posts *Paginated[PostResponse] `json:"posts"`
}
