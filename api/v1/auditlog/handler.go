package auditlog

import (
	"strconv"

	"ipocket/internal/audit"
	"ipocket/internal/httpx"
	"ipocket/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles audit log related requests
type Handler struct {
	service *audit.Service
}

// NewHandler creates a new audit log handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		service: audit.NewService(db),
	}
}

// List handles GET /api/v1/audit
func (h *Handler) List(c *gin.Context) {
	targetType := c.DefaultQuery("targetType", model.AuditTargetIPAsset)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))

	logs, err := h.service.ListByTarget(targetType, limit)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to list audit logs", err))
		return
	}

	total, err := h.service.CountByTarget(targetType)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to count audit logs", err))
		return
	}

	httpx.OK(c, gin.H{
		"items": logs,
		"total": total,
	})
}
