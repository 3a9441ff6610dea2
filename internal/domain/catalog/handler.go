package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tigermarine/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/* ---------- CATEGORY HANDLERS ---------- */

// ListCategories godoc
// @Summary List categories with their models
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.List(c, http.StatusOK, cats, len(cats))
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cat, err := h.service.GetCategory(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	cat, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cat)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	cat, err := h.service.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Category deleted successfully", nil)
}

/* ---------- MODEL HANDLERS ---------- */

// ListModels godoc
// @Summary List boat models
// @Description Filename fields are returned as public URLs.
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/models [get]
func (h *Handler) ListModels(c *gin.Context) {
	models, err := h.service.ListModels(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.List(c, http.StatusOK, models, len(models))
}

func (h *Handler) GetModel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m, err := h.service.GetModel(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) CreateModel(c *gin.Context) {
	var req ModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	m, err := h.service.CreateModel(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m)
}

// UpdateModel godoc
// @Summary Update a boat model
// @Description Only supplied fields change; a supplied collection replaces the stored one.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path integer true "Model ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,409 {object} map[string]interface{}
// @Router /api/models/{id} [put]
func (h *Handler) UpdateModel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	m, err := h.service.UpdateModel(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) DeleteModel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteModel(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Model deleted successfully", nil)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		response.Error(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", err.Error())
	case errors.Is(err, ErrModelNotFound):
		response.Error(c, http.StatusNotFound, "MODEL_NOT_FOUND", err.Error())
	case errors.Is(err, ErrDuplicateName):
		response.Error(c, http.StatusConflict, "DUPLICATE_NAME", "A record with this name already exists")
	case errors.Is(err, ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
