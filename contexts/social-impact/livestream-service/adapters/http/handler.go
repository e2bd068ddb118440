package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"squpe/contexts/social-impact/livestream-service/application"
	"squpe/contexts/social-impact/livestream-service/domain/entities"
	"squpe/contexts/social-impact/livestream-service/ports"
	httptransport "squpe/contexts/social-impact/livestream-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) StartStreamHandler(
	ctx context.Context,
	creatorID string,
	req httptransport.StartStreamRequest,
) (httptransport.LiveStreamResponse, error) {
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	item, err := h.Service.StartStream(ctx, creatorID, ports.StartStreamInput{
		Title:       req.Title,
		Category:    entities.StreamCategory(strings.TrimSpace(req.Category)),
		Description: req.Description,
		IsPublic:    isPublic,
	})
	if err != nil {
		return httptransport.LiveStreamResponse{}, err
	}
	return mapStream(item), nil
}

func (h Handler) GetStreamHandler(
	ctx context.Context,
	streamID string,
) (httptransport.LiveStreamResponse, error) {
	item, err := h.Service.GetStream(ctx, streamID)
	if err != nil {
		return httptransport.LiveStreamResponse{}, err
	}
	return mapStream(item), nil
}

func (h Handler) ListStreamsHandler(
	ctx context.Context,
	status string,
	category string,
	limit int,
) ([]httptransport.LiveStreamResponse, error) {
	items, err := h.Service.ListStreams(ctx, ports.StreamFilter{
		Status:   entities.StreamStatus(strings.TrimSpace(status)),
		Category: entities.StreamCategory(strings.TrimSpace(category)),
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]httptransport.LiveStreamResponse, 0, len(items))
	for _, item := range items {
		result = append(result, mapStream(item))
	}
	return result, nil
}

func (h Handler) EndStreamHandler(
	ctx context.Context,
	actorID string,
	streamID string,
) (httptransport.EndStreamResponse, error) {
	summary, err := h.Service.EndStream(ctx, actorID, streamID)
	if err != nil {
		return httptransport.EndStreamResponse{}, err
	}
	return httptransport.EndStreamResponse{
		Success:         true,
		Message:         summary.Message,
		StreamID:        summary.StreamID,
		DurationMinutes: summary.DurationMinutes,
		PeakViewers:     summary.PeakViewers,
	}, nil
}

func (h Handler) UpdateViewerCountHandler(
	ctx context.Context,
	streamID string,
	count int,
) (httptransport.ViewerCountResponse, error) {
	item, err := h.Service.UpdateViewerCount(ctx, streamID, count)
	if err != nil {
		return httptransport.ViewerCountResponse{}, err
	}
	return httptransport.ViewerCountResponse{
		Success:     true,
		ViewerCount: item.ViewerCount,
	}, nil
}

func mapStream(item entities.Stream) httptransport.LiveStreamResponse {
	endedAt := ""
	if item.EndedAt != nil {
		endedAt = item.EndedAt.UTC().Format(time.RFC3339)
	}
	return httptransport.LiveStreamResponse{
		ID:          item.StreamID,
		Title:       item.Title,
		Category:    string(item.Category),
		Description: item.Description,
		Status:      string(item.Status),
		StreamURL:   item.StreamURL,
		RTMPURL:     item.RTMPURL,
		StreamKey:   item.StreamKey,
		ViewerCount: item.ViewerCount,
		StartedAt:   item.StartedAt.UTC().Format(time.RFC3339),
		EndedAt:     endedAt,
		CreatorID:   item.CreatorID,
		ChatEnabled: item.ChatEnabled,
		IsPublic:    item.IsPublic,
	}
}
