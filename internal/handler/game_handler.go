package handler

import (
	"net/http"

	"gamehub/backend/internal/dto"
	"gamehub/backend/internal/service"
	"gamehub/backend/pkg/response"
	pkgvalidator "gamehub/backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService service.GameService
}

func NewGameHandler(gameService service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func (h *GameHandler) List(c *gin.Context) {
	var filter dto.GameFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	games, err := h.gameService.ListGames(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, games)
}

func (h *GameHandler) GetBySlug(c *gin.Context) {
	game, err := h.gameService.GetGameBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}

func (h *GameHandler) Create(c *gin.Context) {
	var input dto.CreateGameRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	cover, err := formImage(c, "cover")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read cover upload"})
		return
	}

	game, err := h.gameService.CreateGame(c.Request.Context(), input, cover)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, game)
}

func (h *GameHandler) Update(c *gin.Context) {
	var input dto.UpdateGameRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	cover, err := formImage(c, "cover")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read cover upload"})
		return
	}

	game, err := h.gameService.UpdateGame(c.Request.Context(), c.Param("slug"), input, cover)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}

func (h *GameHandler) Delete(c *gin.Context) {
	if err := h.gameService.DeleteGame(c.Request.Context(), c.Param("slug")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "game deleted"})
}

func (h *GameHandler) ListGenres(c *gin.Context) {
	genres, err := h.gameService.ListGenres(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": genres})
}

func (h *GameHandler) CreateGenre(c *gin.Context) {
	var input dto.CreateGenreRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	genre, err := h.gameService.CreateGenre(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, genre)
}

func (h *GameHandler) DeleteGenre(c *gin.Context) {
	if err := h.gameService.DeleteGenre(c.Request.Context(), c.Param("slug")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "genre deleted"})
}
