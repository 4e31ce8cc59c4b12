package tags

import (
	"errors"

	"ipocket/internal/httpx"
	"ipocket/internal/metadata"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles tag related requests
type Handler struct {
	service *metadata.Service
}

// NewHandler creates a new tag handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		service: metadata.NewService(db),
	}
}

// List handles GET /api/v1/tags
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.ListTags()
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to list tags", err))
		return
	}

	httpx.OK(c, gin.H{
		"items": items,
	})
}

// CreateRequest represents the create tag request
type CreateRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// Create handles POST /api/v1/tags/create
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	item, err := h.service.CreateTag(req.Name, req.Color)
	if err != nil {
		if errors.Is(err, metadata.ErrDuplicateName) {
			httpx.FailErr(c, httpx.ErrAlreadyExists("tag name already exists"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to create tag", err))
		return
	}

	httpx.OK(c, item)
}

// UpdateRequest represents the update tag request
type UpdateRequest struct {
	ID    int    `json:"id" binding:"required"`
	Color string `json:"color"`
}

// Update handles POST /api/v1/tags/update
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	item, err := h.service.UpdateTag(req.ID, req.Color)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to update tag", err))
		return
	}
	if item == nil {
		httpx.FailErr(c, httpx.ErrNotFound("tag not found"))
		return
	}

	httpx.OK(c, item)
}

// DeleteRequest represents the delete tag request
type DeleteRequest struct {
	ID int `json:"id" binding:"required"`
}

// Delete handles POST /api/v1/tags/delete
func (h *Handler) Delete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	deleted, err := h.service.DeleteTag(req.ID)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to delete tag", err))
		return
	}
	if !deleted {
		httpx.FailErr(c, httpx.ErrNotFound("tag not found"))
		return
	}

	httpx.OK(c, nil)
}
