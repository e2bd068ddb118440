package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"squpe/contexts/internal-ops/platform-status-service/application"
	httptransport "squpe/contexts/internal-ops/platform-status-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) HealthHandler(ctx context.Context) (httptransport.HealthResponse, error) {
	report, err := h.Service.Health(ctx)
	if err != nil {
		return httptransport.HealthResponse{}, err
	}
	return httptransport.HealthResponse{
		Status:            report.Status,
		Timestamp:         report.Timestamp.UTC().Format(time.RFC3339),
		CampaignsCount:    report.CampaignsCount,
		LivestreamsActive: report.LivestreamsActive,
	}, nil
}

func (h Handler) StatsHandler(ctx context.Context) (httptransport.StatsResponse, error) {
	stats, err := h.Service.Stats(ctx)
	if err != nil {
		return httptransport.StatsResponse{}, err
	}
	return httptransport.StatsResponse{
		TotalCampaigns:  stats.TotalCampaigns,
		ActiveCampaigns: stats.ActiveCampaigns,
		TotalRaised:     stats.TotalRaised,
		LiveStreams:     stats.LiveStreams,
		TotalSupporters: stats.TotalSupporters,
	}, nil
}
