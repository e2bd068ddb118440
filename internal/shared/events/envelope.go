package events

import (
	"encoding/json"
	"time"
)

// Envelope is the shared event shape used across Squpe services.
// Outbox rows persist a serialized envelope; consumers decode Payload
// against the versioned per-event payload structs.
type Envelope struct {
	EventID        string          `json:"event_id"`
	EventType      string          `json:"event_type"`
	SourceService  string          `json:"source_service"`
	OccurredAtUTC  time.Time       `json:"occurred_at_utc"`
	EntityType     string          `json:"entity_type"`
	EntityID       string          `json:"entity_id"`
	PayloadVersion int             `json:"payload_version"`
	Payload        json.RawMessage `json:"payload"`
}
