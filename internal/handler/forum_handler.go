package handler

import (
	"net/http"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/service"
	"gamehub/backend/pkg/response"
	pkgvalidator "gamehub/backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ForumHandler struct {
	forumService service.ForumService
}

func NewForumHandler(forumService service.ForumService) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

func (h *ForumHandler) ListTopics(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	topics, err := h.forumService.ListTopics(c.Request.Context(), page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, topics)
}

func (h *ForumHandler) CreateTopic(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateTopicRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	topic, err := h.forumService.CreateTopic(c.Request.Context(), userID.String(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, topic)
}

func (h *ForumHandler) GetTopic(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	topic, err := h.forumService.GetTopicBySlug(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, topic)
}

func (h *ForumHandler) CreatePost(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	post, err := h.forumService.CreatePost(c.Request.Context(), userID.String(), c.Param("slug"), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}
