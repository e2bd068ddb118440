package campaignservice

import (
	"log/slog"

	httpadapter "squpe/contexts/social-impact/campaign-service/adapters/http"
	"squpe/contexts/social-impact/campaign-service/adapters/memory"
	"squpe/contexts/social-impact/campaign-service/application"
	"squpe/contexts/social-impact/campaign-service/domain/entities"
	"squpe/contexts/social-impact/campaign-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Campaigns    ports.CampaignRepository
	Outbox       ports.OutboxWriter
	Clock        ports.Clock
	IDGenerator  ports.IDGenerator
	ShareBaseURL string
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Campaigns:    deps.Campaigns,
		Outbox:       deps.Outbox,
		Clock:        deps.Clock,
		IDGen:        deps.IDGenerator,
		ShareBaseURL: deps.ShareBaseURL,
		Logger:       deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Campaign, shareBaseURL string, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Campaigns:    store,
		Outbox:       store,
		Clock:        store,
		IDGenerator:  store,
		ShareBaseURL: shareBaseURL,
		Logger:       logger,
	})
	module.Store = store
	return module
}
