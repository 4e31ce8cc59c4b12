package model

import (
	"gorm.io/datatypes"
)

// Audit actions
const (
	AuditActionCreate    = "CREATE"
	AuditActionUpdate    = "UPDATE"
	AuditActionArchive   = "ARCHIVE"
	AuditActionUnarchive = "UNARCHIVE"
	AuditActionDelete    = "DELETE"
)

// Audit target types
const (
	AuditTargetIPAsset = "IP_ASSET"
	AuditTargetIPRange = "IP_RANGE"
	AuditTargetHost    = "HOST"
)

// AuditLog records a single mutation. Username is snapshotted so entries
// survive user deletion. Changes is the human-readable summary; Details
// carries the structured field diff.
type AuditLog struct {
	BaseModel
	UserID      *int           `gorm:"index" json:"user_id"`
	Username    string         `gorm:"type:varchar(64)" json:"username"`
	TargetType  string         `gorm:"type:varchar(32);not null;index" json:"target_type"`
	TargetID    int            `gorm:"not null;index" json:"target_id"`
	TargetLabel string         `gorm:"type:varchar(128)" json:"target_label"`
	Action      string         `gorm:"type:varchar(32);not null" json:"action"`
	Changes     string         `gorm:"type:varchar(2048)" json:"changes"`
	Details     datatypes.JSON `gorm:"type:json" json:"details,omitempty"`
}

// TableName specifies the table name for AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
