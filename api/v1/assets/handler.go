package assets

import (
	"errors"
	"strconv"
	"strings"

	"ipocket/api/v1/middleware"
	"ipocket/internal/asset"
	"ipocket/internal/audit"
	"ipocket/internal/httpx"
	"ipocket/internal/ipcalc"
	"ipocket/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles IP asset related requests
type Handler struct {
	service *asset.Service
	audit   *audit.Service
}

// NewHandler creates a new IP asset handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		service: asset.NewService(db),
		audit:   audit.NewService(db),
	}
}

// List handles GET /api/v1/assets
func (h *Handler) List(c *gin.Context) {
	var filter asset.ListFilter

	if projectStr := c.Query("projectId"); projectStr != "" {
		if projectStr == "none" {
			filter.ProjectUnassigned = true
		} else {
			id, err := strconv.Atoi(projectStr)
			if err != nil {
				httpx.FailErr(c, httpx.ErrParamInvalid("invalid projectId"))
				return
			}
			filter.ProjectID = &id
		}
	}

	if typeStr := c.Query("type"); typeStr != "" {
		t, ok := model.NormalizeIPAssetType(typeStr)
		if !ok {
			httpx.FailErr(c, httpx.ErrParamInvalid("invalid asset type"))
			return
		}
		filter.Type = &t
	}

	filter.HostUnassigned = c.Query("hostUnassigned") == "true"
	filter.QueryText = c.Query("q")
	filter.ArchivedOnly = c.Query("archived") == "true"

	if tagsStr := c.Query("tags"); tagsStr != "" {
		filter.TagNames = strings.Split(tagsStr, ",")
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	items, total, err := h.service.List(filter)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to list assets", err))
		return
	}

	httpx.OK(c, gin.H{
		"items": items,
		"total": total,
	})
}

// Get handles GET /api/v1/assets/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid asset id"))
		return
	}

	item, err := h.service.Get(id)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to get asset", err))
		return
	}
	if item == nil {
		httpx.FailErr(c, httpx.ErrNotFound("asset not found"))
		return
	}

	httpx.OK(c, item)
}

// GetByIP handles GET /api/v1/assets/by-ip
func (h *Handler) GetByIP(c *gin.Context) {
	ip := c.Query("ip")
	if ip == "" {
		httpx.FailErr(c, httpx.ErrParamMissing("parameter 'ip' is required"))
		return
	}

	item, err := h.service.GetByIP(ip)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to get asset", err))
		return
	}
	if item == nil {
		httpx.FailErr(c, httpx.ErrNotFound("asset not found"))
		return
	}

	httpx.OK(c, item)
}

// History handles GET /api/v1/assets/:id/history
func (h *Handler) History(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid asset id"))
		return
	}

	item, err := h.service.Get(id)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to get asset", err))
		return
	}
	if item == nil {
		httpx.FailErr(c, httpx.ErrNotFound("asset not found"))
		return
	}

	logs, err := h.audit.ListForAsset(id)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to list asset history", err))
		return
	}

	httpx.OK(c, gin.H{
		"items": logs,
	})
}

// CreateRequest represents the create asset request
type CreateRequest struct {
	IPAddress string   `json:"ipAddress" binding:"required"`
	Type      string   `json:"type" binding:"required"`
	ProjectID *int     `json:"projectId"`
	HostID    *int     `json:"hostId"`
	Notes     string   `json:"notes"`
	Tags      []string `json:"tags"`
}

// Create handles POST /api/v1/assets/create
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	assetType, ok := model.NormalizeIPAssetType(req.Type)
	if !ok {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid asset type"))
		return
	}

	item, err := h.service.Create(middleware.ActorFrom(c), asset.CreateInput{
		IPAddress:      req.IPAddress,
		Type:           assetType,
		ProjectID:      req.ProjectID,
		HostID:         req.HostID,
		Notes:          req.Notes,
		Tags:           req.Tags,
		AutoHostForBMC: true,
	})
	if err != nil {
		switch {
		case errors.Is(err, ipcalc.ErrInvalidAddress):
			httpx.FailErr(c, httpx.ErrParamInvalid("invalid IP address"))
		case errors.Is(err, asset.ErrDuplicateIP):
			httpx.FailErr(c, httpx.ErrAlreadyExists("ip address already exists"))
		case errors.Is(err, asset.ErrUnknownProject), errors.Is(err, asset.ErrUnknownHost):
			httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		default:
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to create asset", err))
		}
		return
	}

	httpx.OK(c, item)
}

// UpdateRequest represents the update asset request. Omitted fields are left
// untouched; clearProject/clearHost explicitly detach.
type UpdateRequest struct {
	ID           int      `json:"id" binding:"required"`
	Type         *string  `json:"type"`
	ProjectID    *int     `json:"projectId"`
	ClearProject bool     `json:"clearProject"`
	HostID       *int     `json:"hostId"`
	ClearHost    bool     `json:"clearHost"`
	Notes        *string  `json:"notes"`
	Tags         []string `json:"tags"`
	SetTags      bool     `json:"setTags"`
}

// Update handles POST /api/v1/assets/update
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	in := asset.UpdateInput{
		ProjectID:    req.ProjectID,
		ClearProject: req.ClearProject,
		HostID:       req.HostID,
		ClearHost:    req.ClearHost,
		Notes:        req.Notes,
		Tags:         req.Tags,
		SetTags:      req.SetTags,
	}
	if req.Type != nil {
		t, ok := model.NormalizeIPAssetType(*req.Type)
		if !ok {
			httpx.FailErr(c, httpx.ErrParamInvalid("invalid asset type"))
			return
		}
		in.Type = &t
	}

	item, err := h.service.Update(middleware.ActorFrom(c), req.ID, in)
	if err != nil {
		switch {
		case errors.Is(err, asset.ErrUnknownProject), errors.Is(err, asset.ErrUnknownHost):
			httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		default:
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to update asset", err))
		}
		return
	}
	if item == nil {
		httpx.FailErr(c, httpx.ErrNotFound("asset not found"))
		return
	}

	httpx.OK(c, item)
}

// ArchiveRequest represents the archive/unarchive request
type ArchiveRequest struct {
	ID int `json:"id" binding:"required"`
}

// Archive handles POST /api/v1/assets/archive
func (h *Handler) Archive(c *gin.Context) {
	h.setArchived(c, true)
}

// Unarchive handles POST /api/v1/assets/unarchive
func (h *Handler) Unarchive(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *Handler) setArchived(c *gin.Context, archived bool) {
	var req ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	ok, err := h.service.SetArchived(middleware.ActorFrom(c), req.ID, archived)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to update asset", err))
		return
	}
	if !ok {
		httpx.FailErr(c, httpx.ErrNotFound("asset not found"))
		return
	}

	httpx.OK(c, nil)
}

// DeleteRequest represents the delete asset request
type DeleteRequest struct {
	ID int `json:"id" binding:"required"`
}

// Delete handles POST /api/v1/assets/delete
func (h *Handler) Delete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamMissing(err.Error()))
		return
	}

	deleted, err := h.service.Delete(middleware.ActorFrom(c), req.ID)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to delete asset", err))
		return
	}
	if !deleted {
		httpx.FailErr(c, httpx.ErrNotFound("asset not found"))
		return
	}

	httpx.OK(c, nil)
}
