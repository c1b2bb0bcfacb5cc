package dto

import "time"

type CreateCommentRequest struct {
	TargetType string `json:"target_type" binding:"required,oneof=news guide review topic"`
	TargetID   string `json:"target_id" binding:"required,uuid"`
	Content    string `json:"content" binding:"required"`
}

type CommentFilter struct {
	TargetType string `form:"target_type" binding:"required,oneof=news guide review topic"`
	TargetID   string `form:"target_id" binding:"required,uuid"`
	PageQuery
}

type CommentResponse struct {
	ID        string         `json:"id"`
	Author    AuthorResponse `json:"author"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
}

type LikeCountsResponse struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

type CreateLikeRequest struct {
	TargetType string `json:"target_type" binding:"required,oneof=news guide review topic"`
	TargetID   string `json:"target_id" binding:"required,uuid"`
	Vote       int    `json:"vote" binding:"required,oneof=1 -1"`
}
