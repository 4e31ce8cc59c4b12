package vendors

import (
	"errors"

	"ipocket/internal/httpx"
	"ipocket/internal/metadata"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles vendor related requests
type Handler struct {
	service *metadata.Service
}

// NewHandler creates a new vendor handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		service: metadata.NewService(db),
	}
}

// List handles GET /api/v1/vendors
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.ListVendors()
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to list vendors", err))
		return
	}

	httpx.OK(c, gin.H{
		"items": items,
	})
}

// CreateRequest represents the create vendor request
type CreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create handles POST /api/v1/vendors/create
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	item, err := h.service.CreateVendor(req.Name)
	if err != nil {
		if errors.Is(err, metadata.ErrDuplicateName) {
			httpx.FailErr(c, httpx.ErrAlreadyExists("vendor name already exists"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to create vendor", err))
		return
	}

	httpx.OK(c, item)
}

// DeleteRequest represents the delete vendor request
type DeleteRequest struct {
	ID int `json:"id" binding:"required"`
}

// Delete handles POST /api/v1/vendors/delete
func (h *Handler) Delete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	deleted, err := h.service.DeleteVendor(req.ID)
	if err != nil {
		if errors.Is(err, metadata.ErrInUse) {
			httpx.FailErr(c, httpx.ErrAlreadyExists("vendor still referenced by hosts"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to delete vendor", err))
		return
	}
	if !deleted {
		httpx.FailErr(c, httpx.ErrNotFound("vendor not found"))
		return
	}

	httpx.OK(c, nil)
}
