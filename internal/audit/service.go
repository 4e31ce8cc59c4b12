// Package audit maintains the append-only audit trail for data mutations.
package audit

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ipocket/internal/logx"
	"ipocket/internal/model"
	"ipocket/internal/ws"
)

// Actor identifies who performed a mutation. A nil ID means the action ran
// without an authenticated user (bootstrap, CLI).
type Actor struct {
	ID       *int
	Username string
}

// Entry describes one mutation to record
type Entry struct {
	Actor       Actor
	Action      string
	TargetType  string
	TargetID    int
	TargetLabel string
	Changes     string
	Details     map[string]any
}

// Service writes and reads audit log entries
type Service struct {
	db *gorm.DB
}

// NewService creates a new audit service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Record appends an audit entry and broadcasts it on the activity feed.
// Feed failures are logged but never fail the mutation.
func (s *Service) Record(entry Entry) error {
	row := model.AuditLog{
		UserID:      entry.Actor.ID,
		Username:    entry.Actor.Username,
		TargetType:  entry.TargetType,
		TargetID:    entry.TargetID,
		TargetLabel: entry.TargetLabel,
		Action:      entry.Action,
		Changes:     entry.Changes,
	}
	if entry.Details != nil {
		payload, err := json.Marshal(entry.Details)
		if err == nil {
			row.Details = datatypes.JSON(payload)
		}
	}

	if err := s.db.Create(&row).Error; err != nil {
		return err
	}

	if err := ws.PublishAuditEvent(entry.Action, row); err != nil {
		logx.L().WithError(err).Warn("failed to publish audit event")
	}
	return nil
}

// ListByTarget returns the newest entries for a target type, newest first
func (s *Service) ListByTarget(targetType string, limit int) ([]model.AuditLog, error) {
	if limit <= 0 {
		limit = 200
	}
	var logs []model.AuditLog
	err := s.db.
		Where("target_type = ?", targetType).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// ListForAsset returns the full history of one IP asset, newest first
func (s *Service) ListForAsset(assetID int) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := s.db.
		Where("target_type = ? AND target_id = ?", model.AuditTargetIPAsset, assetID).
		Order("created_at DESC, id DESC").
		Find(&logs).Error
	return logs, err
}

// CountByTarget returns the number of entries for a target type
func (s *Service) CountByTarget(targetType string) (int64, error) {
	var count int64
	err := s.db.Model(&model.AuditLog{}).
		Where("target_type = ?", targetType).
		Count(&count).Error
	return count, err
}
