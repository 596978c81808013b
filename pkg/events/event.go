package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is a domain event carried on the NATS stream. Payloads cross the
// wire as JSON, so numbers read back on the consumer side are float64.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

// New stamps an event with the current UTC time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now().UTC()}
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

// UserID reads the "user_id" field naming the event's subject.
func UserID(e Event) (uuid.UUID, error) {
	raw, ok := e.Payload()["user_id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("%s event has no user_id", e.EventType())
	}
	return uuid.Parse(raw)
}

// Int reads a numeric field whether it was set locally (int) or decoded
// from JSON (float64).
func Int(e Event, key string) (int, bool) {
	switch v := e.Payload()[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
