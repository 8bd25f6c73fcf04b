package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event topics published after successful writes.
const (
	TopicUserCreated = "courtside.user.created"
	TopicGameCreated = "courtside.game.created"
)

// Event is the envelope published to the message bus.
type Event struct {
	EventID     uuid.UUID   `json:"event_id"`
	EventType   string      `json:"event_type"`
	AggregateID string      `json:"aggregate_id"`
	Payload     interface{} `json:"payload"`
	OccurredAt  time.Time   `json:"occurred_at"`
}

// NewEvent stamps a fresh id and timestamp on the payload.
func NewEvent(eventType, aggregateID string, payload interface{}) Event {
	return Event{
		EventID:     uuid.New(),
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		OccurredAt:  time.Now().UTC(),
	}
}
