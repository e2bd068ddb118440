package ports

import (
	"context"
	"time"

	"squpe/contexts/social-impact/campaign-service/domain/entities"
	"squpe/internal/shared/events"
)

type CampaignFilter struct {
	Category entities.CampaignCategory
	Status   entities.CampaignStatus
	Offset   int
	Limit    int
}

type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign entities.Campaign) error
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]entities.Campaign, error)
	ApplyDonation(ctx context.Context, campaignID string, amount float64) (entities.Campaign, error)
}

type CreateCampaignInput struct {
	Title        string
	Description  string
	GoalAmount   float64
	DurationDays int
	Category     entities.CampaignCategory
	Tags         []string
	ImageURL     string
}

type DonationReceipt struct {
	TransactionID string
	CampaignID    string
	Message       string
	Amount        float64
	NewTotal      float64
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

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
