package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"movies-backend/internal/domains/genre"
	"movies-backend/internal/shared/response"
)

type GenreHandler struct {
	service genre.Service
}

func NewGenreHandler(svc genre.Service) *GenreHandler {
	return &GenreHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /api/v1/genres
// ════════════════════════════════════════════════════════════════

func (h *GenreHandler) List(c *gin.Context) {
	var req genre.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	total, genres, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, genre.ToResponses(genres), &response.Meta{
		Page:  req.PageNumber,
		Limit: req.PageSize,
		Total: total,
	})
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/v1/genres/:genre_id
// ════════════════════════════════════════════════════════════════

func (h *GenreHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("genre_id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	g, err := h.service.GetByID(c.Request.Context(), id.String())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, genre.ToResponse(*g))
}

// RegisterRoutes mounts the genre endpoints on rg.
func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	genres := rg.Group("/genres")
	{
		genres.GET("", h.List)
		genres.GET("/:genre_id", h.GetByID)
	}
}
