package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"squpe/contexts/social-impact/campaign-service/adapters/memory"
	"squpe/contexts/social-impact/campaign-service/domain/entities"
	domainerrors "squpe/contexts/social-impact/campaign-service/domain/errors"
	"squpe/contexts/social-impact/campaign-service/ports"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestService(store *memory.Store, clock *fakeClock) Service {
	return Service{
		Campaigns:    store,
		Outbox:       store,
		Clock:        clock,
		IDGen:        store,
		ShareBaseURL: "https://squpe.app",
	}
}

func validInput() ports.CreateCampaignInput {
	return ports.CreateCampaignInput{
		Title:        "Investigation: Corporate Corruption",
		Description:  "Investigating environmental violations by major corporations.",
		GoalAmount:   50000,
		DurationDays: 30,
		Category:     entities.CampaignCategoryInvestigation,
		Tags:         []string{"investigation", "environment"},
	}
}

func TestCreateCampaignComputesEndDate(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	service := newTestService(store, clock)

	campaign, err := service.CreateCampaign(context.Background(), "user_12345", validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if !campaign.EndDate.Equal(campaign.CreatedAt.AddDate(0, 0, 30)) {
		t.Fatalf("expected end date 30 days after creation, got %s vs %s", campaign.EndDate, campaign.CreatedAt)
	}
	if campaign.RaisedAmount != 0 || campaign.SupportersCount != 0 {
		t.Fatalf("expected zeroed totals, got raised=%f supporters=%d", campaign.RaisedAmount, campaign.SupportersCount)
	}
	if campaign.Status != entities.CampaignStatusActive {
		t.Fatalf("expected active status, got %s", campaign.Status)
	}
	if !strings.HasPrefix(campaign.CampaignID, "campaign_") {
		t.Fatalf("expected campaign_ id prefix, got %s", campaign.CampaignID)
	}
	if campaign.ShareURL != "https://squpe.app/campaigns/"+campaign.CampaignID {
		t.Fatalf("unexpected share url %s", campaign.ShareURL)
	}
}

func TestCreateCampaignRejectsInvalidInput(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &fakeClock{now: time.Now().UTC()}
	service := newTestService(store, clock)

	cases := map[string]func(*ports.CreateCampaignInput){
		"empty title":       func(in *ports.CreateCampaignInput) { in.Title = "  " },
		"title too long":    func(in *ports.CreateCampaignInput) { in.Title = strings.Repeat("x", 101) },
		"short description": func(in *ports.CreateCampaignInput) { in.Description = "too short" },
		"zero goal":         func(in *ports.CreateCampaignInput) { in.GoalAmount = 0 },
		"negative goal":     func(in *ports.CreateCampaignInput) { in.GoalAmount = -10 },
		"zero duration":     func(in *ports.CreateCampaignInput) { in.DurationDays = 0 },
		"duration too long": func(in *ports.CreateCampaignInput) { in.DurationDays = 366 },
		"unknown category":  func(in *ports.CreateCampaignInput) { in.Category = "cooking" },
	}

	for name, mutate := range cases {
		input := validInput()
		mutate(&input)
		if _, err := service.CreateCampaign(context.Background(), "user_12345", input); err != domainerrors.ErrInvalidCampaignInput {
			t.Fatalf("%s: expected invalid input error, got %v", name, err)
		}
	}
}

func TestDonationsAccumulate(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &fakeClock{now: time.Now().UTC()}
	service := newTestService(store, clock)

	campaign, err := service.CreateCampaign(context.Background(), "user_12345", validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first, err := service.Donate(context.Background(), "user_12345", campaign.CampaignID, 25.5)
	if err != nil {
		t.Fatalf("first donation failed: %v", err)
	}
	if first.NewTotal != 25.5 {
		t.Fatalf("expected new total 25.5, got %f", first.NewTotal)
	}
	if !strings.HasPrefix(first.TransactionID, "txn_") {
		t.Fatalf("expected txn_ transaction id, got %s", first.TransactionID)
	}

	second, err := service.Donate(context.Background(), "user_12345", campaign.CampaignID, 10)
	if err != nil {
		t.Fatalf("second donation failed: %v", err)
	}
	if second.NewTotal != 35.5 {
		t.Fatalf("expected new total 35.5, got %f", second.NewTotal)
	}

	stored, err := service.GetCampaign(context.Background(), campaign.CampaignID)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if stored.RaisedAmount != 35.5 || stored.SupportersCount != 2 {
		t.Fatalf("expected raised 35.5 and 2 supporters, got %f and %d", stored.RaisedAmount, stored.SupportersCount)
	}
}

func TestDonateRejectsNonPositiveAmount(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &fakeClock{now: time.Now().UTC()}
	service := newTestService(store, clock)

	campaign, err := service.CreateCampaign(context.Background(), "user_12345", validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, amount := range []float64{0, -5} {
		if _, err := service.Donate(context.Background(), "user_12345", campaign.CampaignID, amount); err != domainerrors.ErrInvalidDonationAmount {
			t.Fatalf("amount %f: expected invalid donation error, got %v", amount, err)
		}
	}

	stored, err := service.GetCampaign(context.Background(), campaign.CampaignID)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if stored.RaisedAmount != 0 || stored.SupportersCount != 0 {
		t.Fatalf("rejected donations must not mutate state, got raised=%f supporters=%d", stored.RaisedAmount, stored.SupportersCount)
	}
}

func TestDonateUnknownCampaign(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store, &fakeClock{now: time.Now().UTC()})

	if _, err := service.Donate(context.Background(), "user_12345", "campaign_missing", 10); err != domainerrors.ErrCampaignNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetUnknownCampaign(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store, &fakeClock{now: time.Now().UTC()})

	if _, err := service.GetCampaign(context.Background(), "campaign_missing"); err != domainerrors.ErrCampaignNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListCampaignsNewestFirstWithWindow(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	service := newTestService(store, clock)

	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		clock.now = clock.now.Add(time.Minute)
		campaign, err := service.CreateCampaign(context.Background(), "user_12345", validInput())
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
		ids = append(ids, campaign.CampaignID)
	}

	items, err := service.ListCampaigns(context.Background(), ports.CampaignFilter{
		Status: entities.CampaignStatusActive,
		Offset: 1,
		Limit:  2,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// Newest first: offset 1 limit 2 yields the 2nd and 3rd most recent.
	if items[0].CampaignID != ids[3] || items[1].CampaignID != ids[2] {
		t.Fatalf("unexpected window: got %s, %s", items[0].CampaignID, items[1].CampaignID)
	}
}

func TestListCampaignsFiltersByCategory(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	service := newTestService(store, clock)

	clock.now = clock.now.Add(time.Minute)
	if _, err := service.CreateCampaign(context.Background(), "user_12345", validInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	clock.now = clock.now.Add(time.Minute)
	input := validInput()
	input.Category = entities.CampaignCategoryHealthcare
	healthcare, err := service.CreateCampaign(context.Background(), "user_12345", input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	items, err := service.ListCampaigns(context.Background(), ports.CampaignFilter{
		Category: entities.CampaignCategoryHealthcare,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].CampaignID != healthcare.CampaignID {
		t.Fatalf("expected only the healthcare campaign, got %d items", len(items))
	}
}

func TestListCampaignsClampsNegativeWindow(t *testing.T) {
	store := memory.NewStore(nil)
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	service := newTestService(store, clock)

	for i := 0; i < 3; i++ {
		clock.now = clock.now.Add(time.Minute)
		if _, err := service.CreateCampaign(context.Background(), "user_12345", validInput()); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	items, err := service.ListCampaigns(context.Background(), ports.CampaignFilter{
		Offset: -3,
		Limit:  -1,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected clamped window to return all 3, got %d", len(items))
	}
}

func TestDonateAppendsOutboxEvent(t *testing.T) {
	store := memory.NewStore(nil)
	service := newTestService(store, &fakeClock{now: time.Now().UTC()})

	campaign, err := service.CreateCampaign(context.Background(), "user_12345", validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.Donate(context.Background(), "user_12345", campaign.CampaignID, 10); err != nil {
		t.Fatalf("donate failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending outbox row, got %d", len(pending))
	}
	if pending[0].EventType != "fundraising.donation.recorded" {
		t.Fatalf("unexpected event type %s", pending[0].EventType)
	}
}
