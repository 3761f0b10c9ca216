package events

import "time"

// Event type codes published on the bus.
const (
	TypeInteractionLogged = "INTERACTION_LOGGED"
	TypeTagsAttached      = "TAGS_ATTACHED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "INTERACTION_LOGGED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by publishers and by the
// subscriber when reconstructing events off the wire.
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

// NewInteractionLogged builds the event emitted after every interaction
// append. The stream service reacts by pushing a fresh snapshot for the
// (space, user) pair.
func NewInteractionLogged(spaceID, userID, interactionID string) Event {
	return BaseEvent{
		Type: TypeInteractionLogged,
		Data: map[string]interface{}{
			"space_id":       spaceID,
			"user_id":        userID,
			"interaction_id": interactionID,
		},
		OccurredAt: time.Now(),
	}
}

// NewTagsAttached is emitted after the Analyst's tags land on a stored
// interaction.
func NewTagsAttached(spaceID, userID, interactionID string) Event {
	return BaseEvent{
		Type: TypeTagsAttached,
		Data: map[string]interface{}{
			"space_id":       spaceID,
			"user_id":        userID,
			"interaction_id": interactionID,
		},
		OccurredAt: time.Now(),
	}
}
