package handler

import (
	"net/http"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/service"
	"gamehub/backend/pkg/response"
	pkgvalidator "gamehub/backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type GuideHandler struct {
	guideService service.GuideService
}

func NewGuideHandler(guideService service.GuideService) *GuideHandler {
	return &GuideHandler{guideService: guideService}
}

func (h *GuideHandler) List(c *gin.Context) {
	var filter dto.GuideFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	guides, err := h.guideService.ListGuides(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, guides)
}

func (h *GuideHandler) GetBySlug(c *gin.Context) {
	guide, err := h.guideService.GetGuideBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, guide)
}

func (h *GuideHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateGuideRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	image, err := formImage(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image upload"})
		return
	}

	guide, err := h.guideService.CreateGuide(c.Request.Context(), userID.String(), input, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, guide)
}

func (h *GuideHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateGuideRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	image, err := formImage(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image upload"})
		return
	}

	guide, err := h.guideService.UpdateGuide(c.Request.Context(), userID.String(), c.Param("slug"), input, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, guide)
}

func (h *GuideHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.guideService.DeleteGuide(c.Request.Context(), userID.String(), c.Param("slug")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "guide deleted"})
}
