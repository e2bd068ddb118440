package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"squpe/contexts/social-impact/campaign-service/domain/entities"
	domainerrors "squpe/contexts/social-impact/campaign-service/domain/errors"
	"squpe/contexts/social-impact/campaign-service/ports"

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

func (r *Repository) CreateCampaign(ctx context.Context, campaign entities.Campaign) error {
	row := campaignModelFromEntity(campaign)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrCampaignAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCampaigns(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	tx := r.db.WithContext(ctx).Model(&campaignModel{})
	if filter.Category != "" {
		tx = tx.Where("category = ?", string(filter.Category))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var rows []campaignModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ApplyDonation(ctx context.Context, campaignID string, amount float64) (entities.Campaign, error) {
	var updated entities.Campaign
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row campaignModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("campaign_id = ?", strings.TrimSpace(campaignID)).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrCampaignNotFound
			}
			return err
		}

		row.RaisedAmount += amount
		row.SupportersCount++

		if err := tx.Model(&campaignModel{}).
			Where("campaign_id = ?", row.CampaignID).
			Updates(map[string]any{
				"raised_amount":    row.RaisedAmount,
				"supporters_count": row.SupportersCount,
			}).
			Error; err != nil {
			return err
		}

		updated = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.Campaign{}, err
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

// CampaignCounts and DonationTotals feed the platform-status service.
func (r *Repository) CampaignCounts(ctx context.Context) (int, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&campaignModel{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	var active int64
	err := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("status = ?", string(entities.CampaignStatusActive)).
		Count(&active).
		Error
	if err != nil {
		return 0, 0, err
	}
	return int(total), int(active), nil
}

func (r *Repository) DonationTotals(ctx context.Context) (float64, int, error) {
	var totals struct {
		Raised     float64
		Supporters int
	}
	err := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Select("COALESCE(SUM(raised_amount), 0) AS raised, COALESCE(SUM(supporters_count), 0) AS supporters").
		Scan(&totals).
		Error
	if err != nil {
		return 0, 0, err
	}
	return totals.Raised, totals.Supporters, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type campaignModel struct {
	CampaignID      string    `gorm:"column:campaign_id;primaryKey"`
	Title           string    `gorm:"column:title"`
	Description     string    `gorm:"column:description"`
	GoalAmount      float64   `gorm:"column:goal_amount"`
	RaisedAmount    float64   `gorm:"column:raised_amount"`
	DurationDays    int       `gorm:"column:duration_days"`
	Category        string    `gorm:"column:category"`
	Tags            []string  `gorm:"column:tags;type:text[]"`
	Status          string    `gorm:"column:status"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	EndDate         time.Time `gorm:"column:end_date"`
	CreatorID       string    `gorm:"column:creator_id"`
	ImageURL        string    `gorm:"column:image_url"`
	SupportersCount int       `gorm:"column:supporters_count"`
	ShareURL        string    `gorm:"column:share_url"`
}

func (campaignModel) TableName() string {
	return "campaigns"
}

func campaignModelFromEntity(item entities.Campaign) campaignModel {
	return campaignModel{
		CampaignID:      strings.TrimSpace(item.CampaignID),
		Title:           item.Title,
		Description:     item.Description,
		GoalAmount:      item.GoalAmount,
		RaisedAmount:    item.RaisedAmount,
		DurationDays:    item.DurationDays,
		Category:        string(item.Category),
		Tags:            append([]string(nil), item.Tags...),
		Status:          string(item.Status),
		CreatedAt:       item.CreatedAt.UTC(),
		EndDate:         item.EndDate.UTC(),
		CreatorID:       item.CreatorID,
		ImageURL:        item.ImageURL,
		SupportersCount: item.SupportersCount,
		ShareURL:        item.ShareURL,
	}
}

func (m campaignModel) toEntity() entities.Campaign {
	return entities.Campaign{
		CampaignID:      m.CampaignID,
		Title:           m.Title,
		Description:     m.Description,
		GoalAmount:      m.GoalAmount,
		RaisedAmount:    m.RaisedAmount,
		DurationDays:    m.DurationDays,
		Category:        entities.CampaignCategory(m.Category),
		Tags:            append([]string(nil), m.Tags...),
		Status:          entities.CampaignStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		EndDate:         m.EndDate,
		CreatorID:       m.CreatorID,
		ImageURL:        m.ImageURL,
		SupportersCount: m.SupportersCount,
		ShareURL:        m.ShareURL,
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
	return "campaign_outbox"
}
