package handler

import (
	"gamehub/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// formImage extracts an optional uploaded image from a multipart form. A
// missing file or a non-multipart request yields nil.
func formImage(c *gin.Context, field string) (*service.ImageUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}

	return &service.ImageUpload{
		Reader:   file,
		FileName: fileHeader.Filename,
	}, nil
}
