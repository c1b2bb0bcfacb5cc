package handler

import (
	"net/http"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/service"
	"gamehub/backend/pkg/response"
	pkgvalidator "gamehub/backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	avatar, err := formImage(c, "avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read avatar upload"})
		return
	}

	res, err := h.authService.Register(c.Request.Context(), input, avatar)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID.String(), input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var input dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), input.Email); err != nil {
		response.ResponseError(c, err)
		return
	}

	// Same answer whether or not the address is registered.
	c.JSON(http.StatusOK, gin.H{"message": "if the email is registered, a reset link has been sent"})
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var input dto.ConfirmResetRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	if err := h.authService.ConfirmPasswordReset(c.Request.Context(), input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password reset"})
}
