package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"movies-backend/internal/domains/person"
	"movies-backend/internal/shared/response"
)

type PersonHandler struct {
	service person.Service
}

func NewPersonHandler(svc person.Service) *PersonHandler {
	return &PersonHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /api/v1/persons
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) List(c *gin.Context) {
	var req person.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	total, people, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, person.ToResponses(people), &response.Meta{
		Page:  req.PageNumber,
		Limit: req.PageSize,
		Total: total,
	})
}

// ════════════════════════════════════════════════════════════════
// SEARCH: GET /api/v1/persons/search?query=lucas
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) Search(c *gin.Context) {
	var req person.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	total, people, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, person.ToResponses(people), &response.Meta{
		Page:  req.PageNumber,
		Limit: req.PageSize,
		Total: total,
	})
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/v1/persons/:person_id
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("person_id"))
	if err != nil {
		response.BadRequest(c, "Invalid UUID format")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id.String())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p.ToResponse())
}

// RegisterRoutes mounts the person endpoints on rg.
func (h *PersonHandler) RegisterRoutes(rg *gin.RouterGroup) {
	persons := rg.Group("/persons")
	{
		persons.GET("", h.List)
		persons.GET("/search", h.Search)
		persons.GET("/:person_id", h.GetByID)
	}
}
