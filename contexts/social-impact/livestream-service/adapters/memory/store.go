package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"squpe/contexts/social-impact/livestream-service/domain/entities"
	domainerrors "squpe/contexts/social-impact/livestream-service/domain/errors"
	"squpe/contexts/social-impact/livestream-service/ports"

	"github.com/google/uuid"
)

// Store is the process-local stream repository. The RWMutex keeps viewer
// count updates, peak tracking, and the end transition atomic.
type Store struct {
	mu sync.RWMutex

	streams map[string]entities.Stream
	outbox  []ports.OutboxMessage
}

func NewStore(seed []entities.Stream) *Store {
	streams := make(map[string]entities.Stream, len(seed))
	for _, item := range seed {
		streams[item.StreamID] = item
	}
	return &Store{
		streams: streams,
		outbox:  make([]ports.OutboxMessage, 0),
	}
}

func (s *Store) CreateStream(_ context.Context, stream entities.Stream) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.streams[stream.StreamID]; exists {
		return domainerrors.ErrStreamAlreadyExists
	}
	s.streams[stream.StreamID] = stream
	return nil
}

func (s *Store) GetStream(_ context.Context, streamID string) (entities.Stream, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.streams[strings.TrimSpace(streamID)]
	if !exists {
		return entities.Stream{}, domainerrors.ErrStreamNotFound
	}
	return item, nil
}

func (s *Store) ListStreams(_ context.Context, filter ports.StreamFilter) ([]entities.Stream, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Stream, 0, len(s.streams))
	for _, stream := range s.streams {
		if filter.Status != "" && stream.Status != filter.Status {
			continue
		}
		if filter.Category != "" && stream.Category != filter.Category {
			continue
		}
		items = append(items, stream)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ViewerCount != items[j].ViewerCount {
			return items[i].ViewerCount > items[j].ViewerCount
		}
		return items[i].StartedAt.After(items[j].StartedAt)
	})

	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) EndStream(
	_ context.Context,
	actorID string,
	streamID string,
	now time.Time,
) (ports.EndStreamResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stream, exists := s.streams[streamID]
	if !exists {
		return ports.EndStreamResult{}, domainerrors.ErrStreamNotFound
	}
	if stream.CreatorID != actorID {
		return ports.EndStreamResult{}, domainerrors.ErrNotStreamOwner
	}
	if stream.Status == entities.StreamStatusEnded {
		return ports.EndStreamResult{Stream: stream, Transitioned: false}, nil
	}

	endedAt := now.UTC()
	stream.Status = entities.StreamStatusEnded
	stream.EndedAt = &endedAt
	s.streams[stream.StreamID] = stream
	return ports.EndStreamResult{Stream: stream, Transitioned: true}, nil
}

func (s *Store) SetViewerCount(_ context.Context, streamID string, count int) (entities.Stream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stream, exists := s.streams[streamID]
	if !exists {
		return entities.Stream{}, domainerrors.ErrStreamNotFound
	}
	stream.ViewerCount = count
	if count > stream.PeakViewerCount {
		stream.PeakViewerCount = count
	}
	s.streams[stream.StreamID] = stream
	return stream, nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.outbox = append(s.outbox, ports.OutboxMessage{
		OutboxID:     uuid.NewString(),
		EventType:    envelope.EventType,
		PartitionKey: envelope.EntityID,
		Payload:      payload,
		CreatedAt:    envelope.OccurredAtUTC,
	})
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.outbox) {
		limit = len(s.outbox)
	}
	items := make([]ports.OutboxMessage, limit)
	copy(items, s.outbox[:limit])
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, item := range s.outbox {
		if item.OutboxID != outboxID {
			filtered = append(filtered, item)
		}
	}
	s.outbox = filtered
	return nil
}

// LiveStreamCount feeds the platform-status service.
func (s *Store) LiveStreamCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	live := 0
	for _, stream := range s.streams {
		if stream.Status == entities.StreamStatusLive {
			live++
		}
	}
	return live, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// NewID produces prefixed opaque identifiers such as stream_1f2e3d4c5b6a.
func (s *Store) NewID(_ context.Context, prefix string) (string, error) {
	compact := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + compact[:12], nil
}
