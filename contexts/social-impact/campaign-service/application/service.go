package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"squpe/contexts/social-impact/campaign-service/domain/entities"
	domainerrors "squpe/contexts/social-impact/campaign-service/domain/errors"
	"squpe/contexts/social-impact/campaign-service/ports"
)

const (
	donationRecordedTopic = "fundraising.donation.recorded"

	defaultListLimit = 20
	maxListLimit     = 100
)

type Service struct {
	Campaigns    ports.CampaignRepository
	Outbox       ports.OutboxWriter
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	ShareBaseURL string
	Logger       *slog.Logger
}

func (s Service) CreateCampaign(
	ctx context.Context,
	creatorID string,
	input ports.CreateCampaignInput,
) (entities.Campaign, error) {
	candidate := entities.Campaign{
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		GoalAmount:   input.GoalAmount,
		DurationDays: input.DurationDays,
		Category:     input.Category,
	}
	if strings.TrimSpace(creatorID) == "" || !candidate.ValidateBasics() {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}

	campaignID, err := s.IDGen.NewID(ctx, "campaign")
	if err != nil {
		return entities.Campaign{}, err
	}

	now := s.now()
	campaign := entities.Campaign{
		CampaignID:      campaignID,
		Title:           candidate.Title,
		Description:     candidate.Description,
		GoalAmount:      input.GoalAmount,
		RaisedAmount:    0,
		DurationDays:    input.DurationDays,
		Category:        input.Category,
		Tags:            append([]string(nil), input.Tags...),
		Status:          entities.CampaignStatusActive,
		CreatedAt:       now,
		EndDate:         now.AddDate(0, 0, input.DurationDays),
		CreatorID:       strings.TrimSpace(creatorID),
		ImageURL:        strings.TrimSpace(input.ImageURL),
		SupportersCount: 0,
		ShareURL:        s.shareURL(campaignID),
	}

	if err := s.Campaigns.CreateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	ResolveLogger(s.Logger).Info("campaign created",
		"event", "campaign_created",
		"module", "social-impact/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"category", string(campaign.Category),
		"goal_amount", campaign.GoalAmount,
	)
	return campaign, nil
}

func (s Service) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	if strings.TrimSpace(campaignID) == "" {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return s.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
}

// ListCampaigns clamps the paging window before delegating to the
// repository. Offsets below zero reset to zero; limits outside
// [1, maxListLimit] fall back to the defaults.
func (s Service) ListCampaigns(
	ctx context.Context,
	filter ports.CampaignFilter,
) ([]entities.Campaign, error) {
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return s.Campaigns.ListCampaigns(ctx, filter)
}

func (s Service) Donate(
	ctx context.Context,
	donorID string,
	campaignID string,
	amount float64,
) (ports.DonationReceipt, error) {
	if amount <= 0 {
		return ports.DonationReceipt{}, domainerrors.ErrInvalidDonationAmount
	}
	if strings.TrimSpace(campaignID) == "" {
		return ports.DonationReceipt{}, domainerrors.ErrCampaignNotFound
	}

	updated, err := s.Campaigns.ApplyDonation(ctx, strings.TrimSpace(campaignID), amount)
	if err != nil {
		return ports.DonationReceipt{}, err
	}

	transactionID, err := s.IDGen.NewID(ctx, "txn")
	if err != nil {
		return ports.DonationReceipt{}, err
	}

	receipt := ports.DonationReceipt{
		TransactionID: transactionID,
		CampaignID:    updated.CampaignID,
		Message:       fmt.Sprintf("Successfully donated $%.2f", amount),
		Amount:        amount,
		NewTotal:      updated.RaisedAmount,
	}

	s.appendDonationEvent(ctx, donorID, updated, receipt)

	ResolveLogger(s.Logger).Info("donation recorded",
		"event", "donation_recorded",
		"module", "social-impact/campaign-service",
		"layer", "application",
		"campaign_id", updated.CampaignID,
		"transaction_id", transactionID,
		"amount", amount,
		"new_total", updated.RaisedAmount,
	)
	return receipt, nil
}

// appendDonationEvent writes the donation to the outbox for the worker
// relay. The donation itself is already committed; an outbox failure is
// logged and does not fail the request.
func (s Service) appendDonationEvent(
	ctx context.Context,
	donorID string,
	campaign entities.Campaign,
	receipt ports.DonationReceipt,
) {
	if s.Outbox == nil {
		return
	}

	eventID, err := s.IDGen.NewID(ctx, "evt")
	if err != nil {
		eventID = receipt.TransactionID
	}
	payload, _ := json.Marshal(map[string]any{
		"campaign_id":    campaign.CampaignID,
		"donor_id":       strings.TrimSpace(donorID),
		"amount":         receipt.Amount,
		"new_total":      receipt.NewTotal,
		"transaction_id": receipt.TransactionID,
	})
	err = s.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:        eventID,
		EventType:      donationRecordedTopic,
		SourceService:  "social-impact/campaign-service",
		OccurredAtUTC:  s.now(),
		EntityType:     "campaign",
		EntityID:       campaign.CampaignID,
		PayloadVersion: 1,
		Payload:        payload,
	})
	if err != nil {
		ResolveLogger(s.Logger).Error("donation outbox append failed",
			"event", "donation_outbox_append_failed",
			"module", "social-impact/campaign-service",
			"layer", "application",
			"campaign_id", campaign.CampaignID,
			"transaction_id", receipt.TransactionID,
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

func (s Service) shareURL(campaignID string) string {
	base := strings.TrimRight(strings.TrimSpace(s.ShareBaseURL), "/")
	if base == "" {
		base = "https://squpe.app"
	}
	return base + "/campaigns/" + campaignID
}
