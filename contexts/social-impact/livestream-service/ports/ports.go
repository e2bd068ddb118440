package ports

import (
	"context"
	"time"

	"squpe/contexts/social-impact/livestream-service/domain/entities"
	"squpe/internal/shared/events"
)

type StreamFilter struct {
	Status   entities.StreamStatus
	Category entities.StreamCategory
	Limit    int
}

// EndStreamResult reports whether this call performed the live-to-ended
// transition; repeat end calls succeed but do not transition again.
type EndStreamResult struct {
	Stream       entities.Stream
	Transitioned bool
}

type StreamRepository interface {
	CreateStream(ctx context.Context, stream entities.Stream) error
	GetStream(ctx context.Context, streamID string) (entities.Stream, error)
	ListStreams(ctx context.Context, filter StreamFilter) ([]entities.Stream, error)
	EndStream(ctx context.Context, actorID string, streamID string, now time.Time) (EndStreamResult, error)
	SetViewerCount(ctx context.Context, streamID string, count int) (entities.Stream, error)
}

type StartStreamInput struct {
	Title       string
	Category    entities.StreamCategory
	Description string
	IsPublic    bool
}

type StreamSummary struct {
	StreamID        string
	Message         string
	DurationMinutes int
	PeakViewers     int
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context, prefix string) (string, error)
}

type EventEnvelope = events.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
