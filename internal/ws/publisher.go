package ws

import (
	"encoding/json"
	"fmt"

	"ipocket/internal/db"
	"ipocket/internal/model"
)

const topicAudit = "audit"

// PublishAuditEvent persists an audit event and broadcasts it to all
// connected clients. The persisted row gives reconnecting clients a replay
// cursor.
func PublishAuditEvent(eventType string, payload interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	event := model.WSEvent{
		Topic:     topicAudit,
		EventType: eventType,
		Payload:   string(payloadJSON),
	}

	if err := db.GetDB().Create(&event).Error; err != nil {
		return fmt.Errorf("failed to write event to database: %w", err)
	}

	BroadcastToAll(topicAudit+":update", map[string]interface{}{
		"eventId": event.ID,
		"type":    eventType,
		"data":    payload,
	})

	return nil
}

// GetIncrementalEvents retrieves events with id > lastEventID, oldest first
func GetIncrementalEvents(lastEventID int64, maxCount int) ([]model.WSEvent, error) {
	var events []model.WSEvent

	err := db.GetDB().
		Where("topic = ? AND id > ?", topicAudit, lastEventID).
		Order("id ASC").
		Limit(maxCount).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query incremental events: %w", err)
	}

	return events, nil
}
