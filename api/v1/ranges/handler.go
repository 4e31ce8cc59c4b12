package ranges

import (
	"errors"
	"strconv"

	"ipocket/api/v1/middleware"
	"ipocket/internal/httpx"
	"ipocket/internal/ipcalc"
	"ipocket/internal/iprange"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles IP range related requests
type Handler struct {
	service *iprange.Service
}

// NewHandler creates a new IP range handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		service: iprange.NewService(db),
	}
}

// List handles GET /api/v1/ranges
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List()
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to list ranges", err))
		return
	}

	httpx.OK(c, gin.H{
		"items": items,
	})
}

// Utilization handles GET /api/v1/ranges/utilization
func (h *Handler) Utilization(c *gin.Context) {
	items, err := h.service.Utilization()
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to compute utilization", err))
		return
	}

	httpx.OK(c, gin.H{
		"items": items,
	})
}

// Breakdown handles GET /api/v1/ranges/:id/breakdown
func (h *Handler) Breakdown(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid range id"))
		return
	}

	breakdown, err := h.service.Breakdown(id)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to compute breakdown", err))
		return
	}
	if breakdown == nil {
		httpx.FailErr(c, httpx.ErrNotFound("range not found"))
		return
	}

	httpx.OK(c, breakdown)
}

// CreateRequest represents the create range request
type CreateRequest struct {
	Name  string `json:"name" binding:"required"`
	CIDR  string `json:"cidr" binding:"required"`
	Notes string `json:"notes"`
}

// Create handles POST /api/v1/ranges/create
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	item, err := h.service.Create(middleware.ActorFrom(c), req.Name, req.CIDR, req.Notes)
	if err != nil {
		if errors.Is(err, ipcalc.ErrInvalidCIDR) {
			httpx.FailErr(c, httpx.ErrParamInvalid("invalid CIDR"))
			return
		}
		if errors.Is(err, iprange.ErrDuplicateCIDR) {
			httpx.FailErr(c, httpx.ErrAlreadyExists("cidr already exists"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to create range", err))
		return
	}

	httpx.OK(c, item)
}

// UpdateRequest represents the update range request
type UpdateRequest struct {
	ID    int    `json:"id" binding:"required"`
	Name  string `json:"name" binding:"required"`
	CIDR  string `json:"cidr" binding:"required"`
	Notes string `json:"notes"`
}

// Update handles POST /api/v1/ranges/update
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	item, err := h.service.Update(middleware.ActorFrom(c), req.ID, req.Name, req.CIDR, req.Notes)
	if err != nil {
		if errors.Is(err, ipcalc.ErrInvalidCIDR) {
			httpx.FailErr(c, httpx.ErrParamInvalid("invalid CIDR"))
			return
		}
		if errors.Is(err, iprange.ErrDuplicateCIDR) {
			httpx.FailErr(c, httpx.ErrAlreadyExists("cidr already exists"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to update range", err))
		return
	}
	if item == nil {
		httpx.FailErr(c, httpx.ErrNotFound("range not found"))
		return
	}

	httpx.OK(c, item)
}

// DeleteRequest represents the delete range request
type DeleteRequest struct {
	ID int `json:"id" binding:"required"`
}

// Delete handles POST /api/v1/ranges/delete
func (h *Handler) Delete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	deleted, err := h.service.Delete(middleware.ActorFrom(c), req.ID)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to delete range", err))
		return
	}
	if !deleted {
		httpx.FailErr(c, httpx.ErrNotFound("range not found"))
		return
	}

	httpx.OK(c, nil)
}
