package pagination

// Meta describes the position of a page inside the full result set.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

// NewMeta computes pagination metadata for a page/limit pair.
func NewMeta(totalItems int64, page, limit int) Meta {
	if limit <= 0 {
		limit = 1
	}
	return Meta{
		CurrentPage: page,
		TotalPages:  (int(totalItems) + limit - 1) / limit,
		TotalItems:  totalItems,
		Limit:       limit,
	}
}

// Offset converts a 1-based page number to a row offset.
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
