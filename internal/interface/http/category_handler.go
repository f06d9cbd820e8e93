package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blogapi/internal/application"
	"blogapi/internal/domain/entity"
	"blogapi/pkg/response"
)

type CategoryHandler struct {
	Svc    *application.CategoryService
	Logger *logrus.Logger
}

func NewCategoryHandler(svc *application.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCategoryResponse(c *entity.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

// List GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toCategoryResponse(cat))
	}
	response.Success(c, http.StatusOK, out, "categories", gin.H{"count": len(out)})
}

// Get GET /api/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toCategoryResponse(cat), "category", nil)
}

// Create POST /api/categories (auth)
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := bindStrictJSON(c, &req); err != nil {
		bindError(c, err)
		return
	}
	cat, err := h.Svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toCategoryResponse(cat), "category created", nil)
}

// Update PUT /api/categories/:id (auth)
func (h *CategoryHandler) Update(c *gin.Context) {
	var req categoryRequest
	if err := bindStrictJSON(c, &req); err != nil {
		bindError(c, err)
		return
	}
	cat, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toCategoryResponse(cat), "category updated", nil)
}

// Delete DELETE /api/categories/:id (auth)
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
