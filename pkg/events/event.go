package events

import "time"

// Board event types. Connected canvases re-render from repository state when
// any of these arrive.
const (
	EventCardsCreated   = "CARDS_CREATED"
	EventCardUpdated    = "CARD_UPDATED"
	EventCardDeleted    = "CARD_DELETED"
	EventGroupCreated   = "GROUP_CREATED"
	EventGroupUpdated   = "GROUP_UPDATED"
	EventGroupDeleted   = "GROUP_DELETED"
	EventBoardRestored  = "BOARD_RESTORED"
	EventBoardImported  = "BOARD_IMPORTED"
	EventBoardCleared   = "BOARD_CLEARED"
	EventBoardOrganized = "BOARD_ORGANIZED"
)

// Event defines the contract for all board events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CARD_UPDATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewBoardEvent builds a timestamped event.
func NewBoardEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
