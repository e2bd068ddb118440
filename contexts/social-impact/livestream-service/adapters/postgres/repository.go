package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"squpe/contexts/social-impact/livestream-service/domain/entities"
	domainerrors "squpe/contexts/social-impact/livestream-service/domain/errors"
	"squpe/contexts/social-impact/livestream-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateStream(ctx context.Context, stream entities.Stream) error {
	row := streamModelFromEntity(stream)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrStreamAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetStream(ctx context.Context, streamID string) (entities.Stream, error) {
	var row streamModel
	err := r.db.WithContext(ctx).
		Where("stream_id = ?", strings.TrimSpace(streamID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Stream{}, domainerrors.ErrStreamNotFound
		}
		return entities.Stream{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListStreams(ctx context.Context, filter ports.StreamFilter) ([]entities.Stream, error) {
	tx := r.db.WithContext(ctx).Model(&streamModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.Category != "" {
		tx = tx.Where("category = ?", string(filter.Category))
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var rows []streamModel
	if err := tx.Order("viewer_count DESC, started_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Stream, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) EndStream(
	ctx context.Context,
	actorID string,
	streamID string,
	now time.Time,
) (ports.EndStreamResult, error) {
	var result ports.EndStreamResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row streamModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("stream_id = ?", strings.TrimSpace(streamID)).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrStreamNotFound
			}
			return err
		}
		if row.CreatorID != actorID {
			return domainerrors.ErrNotStreamOwner
		}
		if row.Status == string(entities.StreamStatusEnded) {
			result = ports.EndStreamResult{Stream: row.toEntity(), Transitioned: false}
			return nil
		}

		endedAt := now.UTC()
		row.Status = string(entities.StreamStatusEnded)
		row.EndedAt = &endedAt

		if err := tx.Model(&streamModel{}).
			Where("stream_id = ?", row.StreamID).
			Updates(map[string]any{
				"status":   row.Status,
				"ended_at": endedAt,
			}).
			Error; err != nil {
			return err
		}

		result = ports.EndStreamResult{Stream: row.toEntity(), Transitioned: true}
		return nil
	})
	if err != nil {
		return ports.EndStreamResult{}, err
	}
	return result, nil
}

func (r *Repository) SetViewerCount(ctx context.Context, streamID string, count int) (entities.Stream, error) {
	var updated entities.Stream
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row streamModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("stream_id = ?", strings.TrimSpace(streamID)).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrStreamNotFound
			}
			return err
		}

		row.ViewerCount = count
		if count > row.PeakViewerCount {
			row.PeakViewerCount = count
		}

		if err := tx.Model(&streamModel{}).
			Where("stream_id = ?", row.StreamID).
			Updates(map[string]any{
				"viewer_count":      row.ViewerCount,
				"peak_viewer_count": row.PeakViewerCount,
			}).
			Error; err != nil {
			return err
		}

		updated = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.Stream{}, err
	}
	return updated, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.EntityID),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAtUTC.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// LiveStreamCount feeds the platform-status service.
func (r *Repository) LiveStreamCount(ctx context.Context) (int, error) {
	var live int64
	err := r.db.WithContext(ctx).
		Model(&streamModel{}).
		Where("status = ?", string(entities.StreamStatusLive)).
		Count(&live).
		Error
	if err != nil {
		return 0, err
	}
	return int(live), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type streamModel struct {
	StreamID        string     `gorm:"column:stream_id;primaryKey"`
	Title           string     `gorm:"column:title"`
	Category        string     `gorm:"column:category"`
	Description     string     `gorm:"column:description"`
	Status          string     `gorm:"column:status"`
	StreamURL       string     `gorm:"column:stream_url"`
	RTMPURL         string     `gorm:"column:rtmp_url"`
	StreamKey       string     `gorm:"column:stream_key"`
	ViewerCount     int        `gorm:"column:viewer_count"`
	PeakViewerCount int        `gorm:"column:peak_viewer_count"`
	StartedAt       time.Time  `gorm:"column:started_at"`
	EndedAt         *time.Time `gorm:"column:ended_at"`
	CreatorID       string     `gorm:"column:creator_id"`
	ChatEnabled     bool       `gorm:"column:chat_enabled"`
	IsPublic        bool       `gorm:"column:is_public"`
}

func (streamModel) TableName() string {
	return "livestreams"
}

func streamModelFromEntity(item entities.Stream) streamModel {
	var endedAt *time.Time
	if item.EndedAt != nil {
		utc := item.EndedAt.UTC()
		endedAt = &utc
	}
	return streamModel{
		StreamID:        strings.TrimSpace(item.StreamID),
		Title:           item.Title,
		Category:        string(item.Category),
		Description:     item.Description,
		Status:          string(item.Status),
		StreamURL:       item.StreamURL,
		RTMPURL:         item.RTMPURL,
		StreamKey:       item.StreamKey,
		ViewerCount:     item.ViewerCount,
		PeakViewerCount: item.PeakViewerCount,
		StartedAt:       item.StartedAt.UTC(),
		EndedAt:         endedAt,
		CreatorID:       item.CreatorID,
		ChatEnabled:     item.ChatEnabled,
		IsPublic:        item.IsPublic,
	}
}

func (m streamModel) toEntity() entities.Stream {
	return entities.Stream{
		StreamID:        m.StreamID,
		Title:           m.Title,
		Category:        entities.StreamCategory(m.Category),
		Description:     m.Description,
		Status:          entities.StreamStatus(m.Status),
		StreamURL:       m.StreamURL,
		RTMPURL:         m.RTMPURL,
		StreamKey:       m.StreamKey,
		ViewerCount:     m.ViewerCount,
		PeakViewerCount: m.PeakViewerCount,
		StartedAt:       m.StartedAt,
		EndedAt:         m.EndedAt,
		CreatorID:       m.CreatorID,
		ChatEnabled:     m.ChatEnabled,
		IsPublic:        m.IsPublic,
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "livestream_outbox"
}
