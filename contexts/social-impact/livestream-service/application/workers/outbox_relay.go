package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"squpe/contexts/social-impact/livestream-service/application"
	"squpe/contexts/social-impact/livestream-service/ports"
)

// OutboxRelay publishes pending livestream outbox rows to the event bus.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("livestream outbox list failed",
			"event", "livestream_outbox_list_failed",
			"module", "social-impact/livestream-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("livestream outbox decode failed",
				"event", "livestream_outbox_decode_failed",
				"module", "social-impact/livestream-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}

		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("livestream outbox publish failed",
				"event", "livestream_outbox_publish_failed",
				"module", "social-impact/livestream-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"event_id", event.EventID,
				"topic", topic,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			logger.Error("livestream outbox mark published failed",
				"event", "livestream_outbox_mark_published_failed",
				"module", "social-impact/livestream-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("livestream outbox relay cycle completed",
			"event", "livestream_outbox_relay_completed",
			"module", "social-impact/livestream-service",
			"layer", "worker",
			"published_count", len(pending),
		)
	}
	return nil
}
