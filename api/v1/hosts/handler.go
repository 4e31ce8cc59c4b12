package hosts

import (
	"errors"
	"strconv"

	"ipocket/api/v1/middleware"
	"ipocket/internal/host"
	"ipocket/internal/httpx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles host related requests
type Handler struct {
	service *host.Service
}

// NewHandler creates a new host handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		service: host.NewService(db),
	}
}

// List handles GET /api/v1/hosts
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	items, total, err := h.service.ListWithIPCounts(page, pageSize)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to list hosts", err))
		return
	}

	httpx.OK(c, gin.H{
		"items": items,
		"total": total,
	})
}

// Get handles GET /api/v1/hosts/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid host id"))
		return
	}

	item, err := h.service.Get(id)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to get host", err))
		return
	}
	if item == nil {
		httpx.FailErr(c, httpx.ErrNotFound("host not found"))
		return
	}

	assets, err := h.service.LinkedAssetsGrouped(id)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to list host assets", err))
		return
	}

	httpx.OK(c, gin.H{
		"host":   item,
		"assets": assets,
	})
}

// GetByName handles GET /api/v1/hosts/by-name
func (h *Handler) GetByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		httpx.FailErr(c, httpx.ErrParamMissing("parameter 'name' is required"))
		return
	}

	item, err := h.service.GetByName(name)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to get host", err))
		return
	}
	if item == nil {
		httpx.FailErr(c, httpx.ErrNotFound("host not found"))
		return
	}

	httpx.OK(c, item)
}

// CreateRequest represents the create host request
type CreateRequest struct {
	Name   string `json:"name" binding:"required"`
	Notes  string `json:"notes"`
	Vendor string `json:"vendor"`
}

// Create handles POST /api/v1/hosts/create
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	item, err := h.service.Create(middleware.ActorFrom(c), req.Name, req.Notes, req.Vendor)
	if err != nil {
		switch {
		case errors.Is(err, host.ErrDuplicateName):
			httpx.FailErr(c, httpx.ErrAlreadyExists("host name already exists"))
		case errors.Is(err, host.ErrUnknownVendor):
			httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		default:
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to create host", err))
		}
		return
	}

	httpx.OK(c, item)
}

// UpdateRequest represents the update host request
type UpdateRequest struct {
	ID     int    `json:"id" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Notes  string `json:"notes"`
	Vendor string `json:"vendor"`
}

// Update handles POST /api/v1/hosts/update
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	item, err := h.service.Update(middleware.ActorFrom(c), req.ID, req.Name, req.Notes, req.Vendor)
	if err != nil {
		if errors.Is(err, host.ErrUnknownVendor) {
			httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to update host", err))
		return
	}
	if item == nil {
		httpx.FailErr(c, httpx.ErrNotFound("host not found"))
		return
	}

	httpx.OK(c, item)
}

// DeleteRequest represents the delete host request
type DeleteRequest struct {
	ID int `json:"id" binding:"required"`
}

// Delete handles POST /api/v1/hosts/delete
func (h *Handler) Delete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	deleted, err := h.service.Delete(middleware.ActorFrom(c), req.ID)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to delete host", err))
		return
	}
	if !deleted {
		httpx.FailErr(c, httpx.ErrNotFound("host not found"))
		return
	}

	httpx.OK(c, nil)
}
