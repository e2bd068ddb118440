package platformstatusservice

import (
	"log/slog"

	httpadapter "squpe/contexts/internal-ops/platform-status-service/adapters/http"
	"squpe/contexts/internal-ops/platform-status-service/application"
	"squpe/contexts/internal-ops/platform-status-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
}

type Dependencies struct {
	Fundraising ports.FundraisingSource
	Broadcast   ports.BroadcastSource
	Clock       ports.Clock
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Fundraising: deps.Fundraising,
				Broadcast:   deps.Broadcast,
				Clock:       deps.Clock,
				Logger:      deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}
