package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types.
const (
	Created = "created"
	Updated = "updated"
	Deleted = "deleted"
)

// Entity kinds.
const (
	User    = "user"
	Product = "product"
)

// EntityEvent is the JSON payload put on the RabbitMQ queue after a write.
// Data holds the entity as returned by the API; it is empty for deletes.
type EntityEvent struct {
	Type       string          `json:"type"`
	Entity     string          `json:"entity"`
	ID         string          `json:"id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// New builds an event, encoding data when it is non-nil.
func New(typ, entity, id string, data any) (EntityEvent, error) {
	ev := EntityEvent{Type: typ, Entity: entity, ID: id, OccurredAt: time.Now().UTC()}
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return EntityEvent{}, fmt.Errorf("encode %s %s event: %w", entity, typ, err)
		}
		ev.Data = b
	}
	return ev, nil
}

// Key identifies the event kind, e.g. "product.updated".
func (e EntityEvent) Key() string {
	return e.Entity + "." + e.Type
}
