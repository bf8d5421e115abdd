package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// EntityEvent announces a lifecycle change of a persisted entity. Consumers
// correlate on the business id; internal keys are never published.
type EntityEvent struct {
	EventID    string    `json:"eventId"`
	EntityType string    `json:"entityType"`
	Action     string    `json:"action"`
	BusinessID string    `json:"businessId"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewEntityEvent(entityType, action, businessID string) EntityEvent {
	return EntityEvent{
		EventID:    uuid.NewString(),
		EntityType: entityType,
		Action:     action,
		BusinessID: businessID,
		Timestamp:  time.Now(),
	}
}
