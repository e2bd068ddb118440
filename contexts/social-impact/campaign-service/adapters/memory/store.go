package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"squpe/contexts/social-impact/campaign-service/domain/entities"
	domainerrors "squpe/contexts/social-impact/campaign-service/domain/errors"
	"squpe/contexts/social-impact/campaign-service/ports"

	"github.com/google/uuid"
)

// Store is the process-local campaign repository. A single RWMutex guards
// the campaign map and the outbox slice so concurrent donations cannot
// lose increments.
type Store struct {
	mu sync.RWMutex

	campaigns map[string]entities.Campaign
	outbox    []ports.OutboxMessage
}

func NewStore(seed []entities.Campaign) *Store {
	campaigns := make(map[string]entities.Campaign, len(seed))
	for _, item := range seed {
		campaigns[item.CampaignID] = item
	}
	return &Store{
		campaigns: campaigns,
		outbox:    make([]ports.OutboxMessage, 0),
	}
}

func (s *Store) CreateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; exists {
		return domainerrors.ErrCampaignAlreadyExists
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return item, nil
}

func (s *Store) ListCampaigns(_ context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		if filter.Category != "" && campaign.Category != filter.Category {
			continue
		}
		if filter.Status != "" && campaign.Status != filter.Status {
			continue
		}
		items = append(items, campaign)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	if filter.Offset >= len(items) {
		return []entities.Campaign{}, nil
	}
	items = items[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) ApplyDonation(_ context.Context, campaignID string, amount float64) (entities.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	campaign.RaisedAmount += amount
	campaign.SupportersCount++
	s.campaigns[campaign.CampaignID] = campaign
	return campaign, nil
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

// CampaignCounts and DonationTotals feed the platform-status service.
func (s *Store) CampaignCounts(_ context.Context) (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := 0
	for _, campaign := range s.campaigns {
		if campaign.Status == entities.CampaignStatusActive {
			active++
		}
	}
	return len(s.campaigns), active, nil
}

func (s *Store) DonationTotals(_ context.Context) (float64, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raised := 0.0
	supporters := 0
	for _, campaign := range s.campaigns {
		raised += campaign.RaisedAmount
		supporters += campaign.SupportersCount
	}
	return raised, supporters, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// NewID produces prefixed opaque identifiers such as campaign_1f2e3d4c5b6a.
func (s *Store) NewID(_ context.Context, prefix string) (string, error) {
	compact := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + compact[:12], nil
}
