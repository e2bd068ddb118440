package ports

import (
	"context"
	"time"
)

// FundraisingSource and BroadcastSource are read-only views over other
// contexts. The concrete stores satisfy these structurally, so this
// context never imports another context's packages.
type FundraisingSource interface {
	CampaignCounts(ctx context.Context) (total int, active int, err error)
	DonationTotals(ctx context.Context) (raised float64, supporters int, err error)
}

type BroadcastSource interface {
	LiveStreamCount(ctx context.Context) (int, error)
}

type Clock interface {
	Now() time.Time
}

type HealthReport struct {
	Status            string
	Timestamp         time.Time
	CampaignsCount    int
	LivestreamsActive int
}

type PlatformStats struct {
	TotalCampaigns  int
	ActiveCampaigns int
	TotalRaised     float64
	LiveStreams     int
	TotalSupporters int
}
