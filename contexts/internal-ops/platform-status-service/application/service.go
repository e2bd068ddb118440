package application

import (
	"context"
	"log/slog"
	"time"

	"squpe/contexts/internal-ops/platform-status-service/ports"
)

const statusHealthy = "healthy"

type Service struct {
	Fundraising ports.FundraisingSource
	Broadcast   ports.BroadcastSource
	Clock       ports.Clock
	Logger      *slog.Logger
}

func (s Service) Health(ctx context.Context) (ports.HealthReport, error) {
	total, _, err := s.Fundraising.CampaignCounts(ctx)
	if err != nil {
		return ports.HealthReport{}, err
	}
	live, err := s.Broadcast.LiveStreamCount(ctx)
	if err != nil {
		return ports.HealthReport{}, err
	}

	return ports.HealthReport{
		Status:            statusHealthy,
		Timestamp:         s.now(),
		CampaignsCount:    total,
		LivestreamsActive: live,
	}, nil
}

func (s Service) Stats(ctx context.Context) (ports.PlatformStats, error) {
	total, active, err := s.Fundraising.CampaignCounts(ctx)
	if err != nil {
		return ports.PlatformStats{}, err
	}
	raised, supporters, err := s.Fundraising.DonationTotals(ctx)
	if err != nil {
		return ports.PlatformStats{}, err
	}
	live, err := s.Broadcast.LiveStreamCount(ctx)
	if err != nil {
		return ports.PlatformStats{}, err
	}

	resolveLogger(s.Logger).Debug("platform stats aggregated",
		"event", "platform_stats_aggregated",
		"module", "internal-ops/platform-status-service",
		"layer", "application",
		"total_campaigns", total,
		"live_streams", live,
	)
	return ports.PlatformStats{
		TotalCampaigns:  total,
		ActiveCampaigns: active,
		TotalRaised:     raised,
		LiveStreams:     live,
		TotalSupporters: supporters,
	}, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
