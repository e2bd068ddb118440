package livestreamservice

import (
	"log/slog"

	httpadapter "squpe/contexts/social-impact/livestream-service/adapters/http"
	"squpe/contexts/social-impact/livestream-service/adapters/memory"
	"squpe/contexts/social-impact/livestream-service/application"
	"squpe/contexts/social-impact/livestream-service/domain/entities"
	"squpe/contexts/social-impact/livestream-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Streams       ports.StreamRepository
	Outbox        ports.OutboxWriter
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	StreamBaseURL string
	RTMPIngestURL string
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Streams:       deps.Streams,
		Outbox:        deps.Outbox,
		Clock:         deps.Clock,
		IDGen:         deps.IDGenerator,
		StreamBaseURL: deps.StreamBaseURL,
		RTMPIngestURL: deps.RTMPIngestURL,
		Logger:        deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(
	seed []entities.Stream,
	streamBaseURL string,
	rtmpIngestURL string,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Streams:       store,
		Outbox:        store,
		Clock:         store,
		IDGenerator:   store,
		StreamBaseURL: streamBaseURL,
		RTMPIngestURL: rtmpIngestURL,
		Logger:        logger,
	})
	module.Store = store
	return module
}
