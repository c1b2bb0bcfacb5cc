package handler

import (
	"net/http"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/service"
	"gamehub/backend/pkg/response"
	pkgvalidator "gamehub/backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	newsService service.NewsService
}

func NewNewsHandler(newsService service.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

func (h *NewsHandler) List(c *gin.Context) {
	var filter dto.NewsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	news, err := h.newsService.ListNews(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, news)
}

func (h *NewsHandler) GetBySlug(c *gin.Context) {
	news, err := h.newsService.GetNewsBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, news)
}

func (h *NewsHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateNewsRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	image, err := formImage(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image upload"})
		return
	}

	news, err := h.newsService.CreateNews(c.Request.Context(), userID.String(), input, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, news)
}

func (h *NewsHandler) Update(c *gin.Context) {
	var input dto.UpdateNewsRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	image, err := formImage(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image upload"})
		return
	}

	news, err := h.newsService.UpdateNews(c.Request.Context(), c.Param("slug"), input, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, news)
}

func (h *NewsHandler) Delete(c *gin.Context) {
	if err := h.newsService.DeleteNews(c.Request.Context(), c.Param("slug")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "news deleted"})
}
