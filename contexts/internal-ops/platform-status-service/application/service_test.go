package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"squpe/contexts/internal-ops/platform-status-service/ports"
)

type stubFundraising struct {
	total      int
	active     int
	raised     float64
	supporters int
	err        error
}

func (s stubFundraising) CampaignCounts(context.Context) (int, int, error) {
	return s.total, s.active, s.err
}

func (s stubFundraising) DonationTotals(context.Context) (float64, int, error) {
	return s.raised, s.supporters, s.err
}

type stubBroadcast struct {
	live int
	err  error
}

func (s stubBroadcast) LiveStreamCount(context.Context) (int, error) {
	return s.live, s.err
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func TestHealthAggregatesCounts(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := Service{
		Fundraising: stubFundraising{total: 7, active: 4},
		Broadcast:   stubBroadcast{live: 2},
		Clock:       fixedClock{now: now},
	}

	report, err := service.Health(context.Background())
	if err != nil {
		t.Fatalf("health failed: %v", err)
	}
	if report.Status != "healthy" {
		t.Fatalf("expected healthy status, got %q", report.Status)
	}
	if report.CampaignsCount != 7 || report.LivestreamsActive != 2 {
		t.Fatalf("unexpected counts %d/%d", report.CampaignsCount, report.LivestreamsActive)
	}
	if !report.Timestamp.Equal(now) {
		t.Fatalf("expected timestamp %s, got %s", now, report.Timestamp)
	}
}

func TestStatsAggregatesSources(t *testing.T) {
	service := Service{
		Fundraising: stubFundraising{total: 10, active: 6, raised: 1234.5, supporters: 42},
		Broadcast:   stubBroadcast{live: 3},
		Clock:       fixedClock{now: time.Now().UTC()},
	}

	stats, err := service.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	want := ports.PlatformStats{
		TotalCampaigns:  10,
		ActiveCampaigns: 6,
		TotalRaised:     1234.5,
		LiveStreams:     3,
		TotalSupporters: 42,
	}
	if stats != want {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestStatsPropagatesSourceErrors(t *testing.T) {
	sourceErr := errors.New("source unavailable")
	service := Service{
		Fundraising: stubFundraising{err: sourceErr},
		Broadcast:   stubBroadcast{},
		Clock:       fixedClock{now: time.Now().UTC()},
	}

	if _, err := service.Stats(context.Background()); !errors.Is(err, sourceErr) {
		t.Fatalf("expected source error, got %v", err)
	}
	if _, err := service.Health(context.Background()); !errors.Is(err, sourceErr) {
		t.Fatalf("expected source error, got %v", err)
	}
}
