package reportingservice

import (
	"log/slog"

	httpadapter "almoner/contexts/relief-operations/reporting-service/adapters/http"
	"almoner/contexts/relief-operations/reporting-service/adapters/memory"
	"almoner/contexts/relief-operations/reporting-service/application"
	"almoner/contexts/relief-operations/reporting-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
}

type Dependencies struct {
	ReadModel ports.ReadModel
	Clock     ports.Clock
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		ReadModel: deps.ReadModel,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(seed memory.Seed, logger *slog.Logger) Module {
	readModel := memory.NewReadModel(seed)
	return NewModule(Dependencies{
		ReadModel: readModel,
		Clock:     readModel,
		Logger:    logger,
	})
}
