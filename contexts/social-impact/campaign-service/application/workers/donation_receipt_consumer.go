package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"squpe/contexts/social-impact/campaign-service/application"
	"squpe/contexts/social-impact/campaign-service/ports"
)

const (
	donationRecordedTopic        = "fundraising.donation.recorded"
	defaultDonationConsumerGroup = "campaign-service-donation-recorded-cg"
)

// DonationReceiptConsumer is the payment-capture stand-in. It consumes
// fundraising.donation.recorded and logs the receipt; a real payment
// provider integration would replace the log call.
type DonationReceiptConsumer struct {
	Subscriber    ports.EventSubscriber
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c DonationReceiptConsumer) Start(ctx context.Context) error {
	group := strings.TrimSpace(c.ConsumerGroup)
	if group == "" {
		group = defaultDonationConsumerGroup
	}
	return c.Subscriber.Subscribe(ctx, donationRecordedTopic, group, c.handleDonationRecorded)
}

func (c DonationReceiptConsumer) handleDonationRecorded(_ context.Context, event ports.EventEnvelope) error {
	var payload struct {
		CampaignID    string  `json:"campaign_id"`
		DonorID       string  `json:"donor_id"`
		Amount        float64 `json:"amount"`
		NewTotal      float64 `json:"new_total"`
		TransactionID string  `json:"transaction_id"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("decode donation.recorded payload: %w", err)
	}

	application.ResolveLogger(c.Logger).Info("donation receipt processed (payment capture stubbed)",
		"event", "donation_receipt_processed",
		"module", "social-impact/campaign-service",
		"layer", "worker",
		"event_id", event.EventID,
		"campaign_id", payload.CampaignID,
		"transaction_id", payload.TransactionID,
		"amount", payload.Amount,
		"new_total", payload.NewTotal,
	)
	return nil
}
