package projects

import (
	"errors"

	"ipocket/internal/httpx"
	"ipocket/internal/metadata"
	"ipocket/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles project related requests
type Handler struct {
	service *metadata.Service
}

// NewHandler creates a new project handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		service: metadata.NewService(db),
	}
}

// List handles GET /api/v1/projects
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.ListProjects()
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to list projects", err))
		return
	}

	httpx.OK(c, gin.H{
		"items": items,
	})
}

// CreateRequest represents the create project request
type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Create handles POST /api/v1/projects/create
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	if req.Color == "" {
		req.Color = model.DefaultProjectColor
	}

	item, err := h.service.CreateProject(req.Name, req.Description, req.Color)
	if err != nil {
		if errors.Is(err, metadata.ErrDuplicateName) {
			httpx.FailErr(c, httpx.ErrAlreadyExists("project name already exists"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to create project", err))
		return
	}

	httpx.OK(c, item)
}

// DeleteRequest represents the delete project request
type DeleteRequest struct {
	ID int `json:"id" binding:"required"`
}

// Delete handles POST /api/v1/projects/delete
func (h *Handler) Delete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	deleted, err := h.service.DeleteProject(req.ID)
	if err != nil {
		if errors.Is(err, metadata.ErrInUse) {
			httpx.FailErr(c, httpx.ErrAlreadyExists("project still referenced by assets"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to delete project", err))
		return
	}
	if !deleted {
		httpx.FailErr(c, httpx.ErrNotFound("project not found"))
		return
	}

	httpx.OK(c, nil)
}
