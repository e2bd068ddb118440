package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"squpe/contexts/social-impact/campaign-service/application"
	"squpe/contexts/social-impact/campaign-service/domain/entities"
	"squpe/contexts/social-impact/campaign-service/ports"
	httptransport "squpe/contexts/social-impact/campaign-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateCampaignHandler(
	ctx context.Context,
	creatorID string,
	req httptransport.CreateCampaignRequest,
) (httptransport.CampaignResponse, error) {
	item, err := h.Service.CreateCampaign(ctx, creatorID, ports.CreateCampaignInput{
		Title:        req.Title,
		Description:  req.Description,
		GoalAmount:   req.GoalAmount,
		DurationDays: req.DurationDays,
		Category:     entities.CampaignCategory(strings.TrimSpace(req.Category)),
		Tags:         append([]string(nil), req.Tags...),
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return mapCampaign(item), nil
}

func (h Handler) GetCampaignHandler(
	ctx context.Context,
	campaignID string,
) (httptransport.CampaignResponse, error) {
	item, err := h.Service.GetCampaign(ctx, campaignID)
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return mapCampaign(item), nil
}

func (h Handler) ListCampaignsHandler(
	ctx context.Context,
	category string,
	status string,
	offset int,
	limit int,
) ([]httptransport.CampaignResponse, error) {
	items, err := h.Service.ListCampaigns(ctx, ports.CampaignFilter{
		Category: entities.CampaignCategory(strings.TrimSpace(category)),
		Status:   entities.CampaignStatus(strings.TrimSpace(status)),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]httptransport.CampaignResponse, 0, len(items))
	for _, item := range items {
		result = append(result, mapCampaign(item))
	}
	return result, nil
}

func (h Handler) DonateHandler(
	ctx context.Context,
	donorID string,
	campaignID string,
	amount float64,
) (httptransport.DonationReceiptResponse, error) {
	receipt, err := h.Service.Donate(ctx, donorID, campaignID, amount)
	if err != nil {
		return httptransport.DonationReceiptResponse{}, err
	}
	return httptransport.DonationReceiptResponse{
		Success:       true,
		Message:       receipt.Message,
		CampaignID:    receipt.CampaignID,
		NewTotal:      receipt.NewTotal,
		TransactionID: receipt.TransactionID,
	}, nil
}

func mapCampaign(item entities.Campaign) httptransport.CampaignResponse {
	return httptransport.CampaignResponse{
		ID:              item.CampaignID,
		Title:           item.Title,
		Description:     item.Description,
		GoalAmount:      item.GoalAmount,
		RaisedAmount:    item.RaisedAmount,
		DurationDays:    item.DurationDays,
		Category:        string(item.Category),
		Tags:            append([]string{}, item.Tags...),
		Status:          string(item.Status),
		CreatedAt:       item.CreatedAt.UTC().Format(time.RFC3339),
		EndDate:         item.EndDate.UTC().Format(time.RFC3339),
		CreatorID:       item.CreatorID,
		ImageURL:        item.ImageURL,
		SupportersCount: item.SupportersCount,
		ShareURL:        item.ShareURL,
	}
}
