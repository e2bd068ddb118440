package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"squpe/contexts/social-impact/livestream-service/domain/entities"
	domainerrors "squpe/contexts/social-impact/livestream-service/domain/errors"
	"squpe/contexts/social-impact/livestream-service/ports"
)

const (
	livestreamEndedTopic = "broadcast.livestream.ended"

	defaultListLimit = 20
	maxListLimit     = 100
)

type Service struct {
	Streams       ports.StreamRepository
	Outbox        ports.OutboxWriter
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	StreamBaseURL string
	RTMPIngestURL string
	Logger        *slog.Logger
}

func (s Service) StartStream(
	ctx context.Context,
	creatorID string,
	input ports.StartStreamInput,
) (entities.Stream, error) {
	candidate := entities.Stream{
		Title:       strings.TrimSpace(input.Title),
		Category:    input.Category,
		Description: input.Description,
	}
	if strings.TrimSpace(creatorID) == "" || !candidate.ValidateBasics() {
		return entities.Stream{}, domainerrors.ErrInvalidStreamInput
	}

	streamID, err := s.IDGen.NewID(ctx, "stream")
	if err != nil {
		return entities.Stream{}, err
	}
	streamKey, err := s.IDGen.NewID(ctx, "key")
	if err != nil {
		return entities.Stream{}, err
	}

	stream := entities.Stream{
		StreamID:    streamID,
		Title:       candidate.Title,
		Category:    input.Category,
		Description: input.Description,
		Status:      entities.StreamStatusLive,
		StreamURL:   s.streamURL(streamID),
		RTMPURL:     s.rtmpURL(),
		StreamKey:   streamKey,
		ViewerCount: 0,
		StartedAt:   s.now(),
		CreatorID:   strings.TrimSpace(creatorID),
		ChatEnabled: true,
		IsPublic:    input.IsPublic,
	}

	if err := s.Streams.CreateStream(ctx, stream); err != nil {
		return entities.Stream{}, err
	}

	ResolveLogger(s.Logger).Info("livestream started",
		"event", "livestream_started",
		"module", "social-impact/livestream-service",
		"layer", "application",
		"stream_id", stream.StreamID,
		"category", string(stream.Category),
		"is_public", stream.IsPublic,
	)
	return stream, nil
}

func (s Service) GetStream(ctx context.Context, streamID string) (entities.Stream, error) {
	if strings.TrimSpace(streamID) == "" {
		return entities.Stream{}, domainerrors.ErrStreamNotFound
	}
	return s.Streams.GetStream(ctx, strings.TrimSpace(streamID))
}

// ListStreams clamps the limit before delegating; streams come back most
// popular first (viewer count descending).
func (s Service) ListStreams(ctx context.Context, filter ports.StreamFilter) ([]entities.Stream, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return s.Streams.ListStreams(ctx, filter)
}

func (s Service) EndStream(ctx context.Context, actorID string, streamID string) (ports.StreamSummary, error) {
	if strings.TrimSpace(streamID) == "" {
		return ports.StreamSummary{}, domainerrors.ErrStreamNotFound
	}

	result, err := s.Streams.EndStream(ctx, strings.TrimSpace(actorID), strings.TrimSpace(streamID), s.now())
	if err != nil {
		return ports.StreamSummary{}, err
	}

	stream := result.Stream
	endedAt := s.now()
	if stream.EndedAt != nil {
		endedAt = *stream.EndedAt
	}
	summary := ports.StreamSummary{
		StreamID:        stream.StreamID,
		Message:         "Livestream ended successfully",
		DurationMinutes: int(endedAt.Sub(stream.StartedAt) / time.Minute),
		PeakViewers:     stream.PeakViewerCount,
	}

	if result.Transitioned {
		s.appendEndedEvent(ctx, stream, summary)
	}

	ResolveLogger(s.Logger).Info("livestream ended",
		"event", "livestream_ended",
		"module", "social-impact/livestream-service",
		"layer", "application",
		"stream_id", stream.StreamID,
		"duration_minutes", summary.DurationMinutes,
		"peak_viewers", summary.PeakViewers,
		"transitioned", result.Transitioned,
	)
	return summary, nil
}

func (s Service) UpdateViewerCount(ctx context.Context, streamID string, count int) (entities.Stream, error) {
	if strings.TrimSpace(streamID) == "" {
		return entities.Stream{}, domainerrors.ErrStreamNotFound
	}
	return s.Streams.SetViewerCount(ctx, strings.TrimSpace(streamID), count)
}

// appendEndedEvent mirrors the campaign-service donation outbox: failures
// are logged, not surfaced, because the transition already committed.
func (s Service) appendEndedEvent(ctx context.Context, stream entities.Stream, summary ports.StreamSummary) {
	if s.Outbox == nil {
		return
	}

	eventID, err := s.IDGen.NewID(ctx, "evt")
	if err != nil {
		eventID = stream.StreamID
	}
	payload, _ := json.Marshal(map[string]any{
		"stream_id":        stream.StreamID,
		"creator_id":       stream.CreatorID,
		"duration_minutes": summary.DurationMinutes,
		"peak_viewers":     summary.PeakViewers,
	})
	err = s.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:        eventID,
		EventType:      livestreamEndedTopic,
		SourceService:  "social-impact/livestream-service",
		OccurredAtUTC:  s.now(),
		EntityType:     "livestream",
		EntityID:       stream.StreamID,
		PayloadVersion: 1,
		Payload:        payload,
	})
	if err != nil {
		ResolveLogger(s.Logger).Error("livestream outbox append failed",
			"event", "livestream_outbox_append_failed",
			"module", "social-impact/livestream-service",
			"layer", "application",
			"stream_id", stream.StreamID,
			"error", err.Error(),
		)
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) streamURL(streamID string) string {
	base := strings.TrimRight(strings.TrimSpace(s.StreamBaseURL), "/")
	if base == "" {
		base = "https://stream.squpe.app"
	}
	return base + "/live/" + streamID
}

func (s Service) rtmpURL() string {
	if strings.TrimSpace(s.RTMPIngestURL) == "" {
		return "rtmp://stream.squpe.app/live"
	}
	return strings.TrimSpace(s.RTMPIngestURL)
}
