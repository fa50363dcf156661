package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"movies-backend/internal/domains/film"
	"movies-backend/internal/shared/response"
)

type FilmHandler struct {
	service film.Service
}

func NewFilmHandler(svc film.Service) *FilmHandler {
	return &FilmHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /api/v1/films?sort=-imdb_rating&genre=<uuid>
// ════════════════════════════════════════════════════════════════

func (h *FilmHandler) List(c *gin.Context) {
	var req film.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	total, films, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, film.ToShortResponses(films), &response.Meta{
		Page:  req.PageNumber,
		Limit: req.PageSize,
		Total: total,
	})
}

// ════════════════════════════════════════════════════════════════
// SEARCH: GET /api/v1/films/search?query=star
// ════════════════════════════════════════════════════════════════

func (h *FilmHandler) Search(c *gin.Context) {
	var req film.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	total, films, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, film.ToShortResponses(films), &response.Meta{
		Page:  req.PageNumber,
		Limit: req.PageSize,
		Total: total,
	})
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/v1/films/:film_id
// ════════════════════════════════════════════════════════════════

func (h *FilmHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("film_id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), id.String())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, f.ToDetailResponse())
}

// RegisterRoutes mounts the film endpoints on rg.
func (h *FilmHandler) RegisterRoutes(rg *gin.RouterGroup) {
	films := rg.Group("/films")
	{
		films.GET("", h.List)
		films.GET("/search", h.Search)
		films.GET("/:film_id", h.GetByID)
	}
}
