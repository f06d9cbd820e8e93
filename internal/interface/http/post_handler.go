package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blogapi/internal/application"
	"blogapi/internal/domain/entity"
	"blogapi/internal/interface/middleware"
	"blogapi/pkg/response"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type postResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	Category  *refItem  `json:"category,omitempty"`
	Author    *refItem  `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type refItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toPostResponse(p *entity.Post) postResponse {
	r := postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.CategoryID != "" {
		r.Category = &refItem{ID: p.CategoryID, Name: p.CategoryName}
	}
	if p.AuthorID != "" {
		r.Author = &refItem{ID: p.AuthorID, Name: p.AuthorUsername}
	}
	return r
}

type createPostRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
	CategoryID string `json:"category_id" binding:"omitempty,uuid"`
}

type updatePostRequest struct {
	Title      *string `json:"title" binding:"omitempty,min=1"`
	Content    *string `json:"content" binding:"omitempty,min=1"`
	CategoryID *string `json:"category_id" binding:"omitempty,uuid"`
}

// List GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	response.Success(c, http.StatusOK, out, "posts", gin.H{"count": len(out)})
}

// Get GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toPostResponse(p), "post", nil)
}

// Search GET /api/posts/search?q=...&size=...
func (h *PostHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error(c, http.StatusBadRequest, "missing query", gin.H{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

// Create POST /api/posts (auth). Accepts JSON, or multipart/form-data with an
// optional image file.
func (h *PostHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	in, err := h.createInput(c)
	if err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), uid, in)
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toPostResponse(p), "post created", nil)
}

func (h *PostHandler) createInput(c *gin.Context) (application.CreatePostInput, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		in := application.CreatePostInput{
			Title:      c.PostForm("title"),
			Content:    c.PostForm("content"),
			CategoryID: c.PostForm("category_id"),
		}
		if fh, err := c.FormFile("image"); err == nil && fh != nil {
			f, err := fh.Open()
			if err != nil {
				return in, err
			}
			// closed when the request body is released
			in.Image = &application.ImageUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Reader:      f,
			}
		}
		return in, nil
	}

	var req createPostRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return application.CreatePostInput{}, err
	}
	return application.CreatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	}, nil
}

// Update PUT /api/posts/:id (auth, author only)
func (h *PostHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updatePostRequest
	if err := bindStrictJSON(c, &req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), application.UpdatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toPostResponse(p), "post updated", nil)
}

// Delete DELETE /api/posts/:id (auth, author only)
func (h *PostHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
