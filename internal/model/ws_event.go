package model

import (
	"time"
)

// WSEvent persists a broadcast event so reconnecting clients can replay
// what they missed by last event id.
type WSEvent struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Topic     string    `gorm:"type:varchar(32);not null;index" json:"topic"`
	EventType string    `gorm:"type:varchar(32);not null" json:"event_type"`
	Payload   string    `gorm:"type:text" json:"payload"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for WSEvent model
func (WSEvent) TableName() string {
	return "ws_events"
}
