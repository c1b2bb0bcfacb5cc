package dto

import "gamehub/backend/pkg/pagination"

// AuthorResponse is the public author subset embedded in content responses.
type AuthorResponse struct {
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// PageQuery carries the shared page/limit query parameters. Limit zero means
// "use the module's default page size".
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// Normalize applies defaults for unset page parameters.
func (q *PageQuery) Normalize(defaultLimit int) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = defaultLimit
	}
}

// Paginated wraps a page of data with its metadata.
type Paginated[T any] struct {
	Data []T             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// NewPaginated builds a Paginated response.
func NewPaginated[T any](data []T, totalItems int64, page, limit int) *Paginated[T] {
	if data == nil {
		data = []T{}
	}
	return &Paginated[T]{
		Data: data,
		Meta: pagination.NewMeta(totalItems, page, limit),
	}
}
