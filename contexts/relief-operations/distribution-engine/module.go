package distributionengine

import (
	"log/slog"

	httpadapter "almoner/contexts/relief-operations/distribution-engine/adapters/http"
	"almoner/contexts/relief-operations/distribution-engine/adapters/memory"
	application "almoner/contexts/relief-operations/distribution-engine/application"
	"almoner/contexts/relief-operations/distribution-engine/application/commands"
	"almoner/contexts/relief-operations/distribution-engine/application/queries"
	"almoner/contexts/relief-operations/distribution-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	References ports.ReferenceStore
	Log        ports.DistributionLog
	Ledger     ports.InventoryLedger
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	validator := application.EntityValidator{
		References: deps.References,
		Logger:     deps.Logger,
	}
	eligibility := application.EligibilityEvaluator{
		Log:    deps.Log,
		Logger: deps.Logger,
	}
	commandUseCase := commands.UseCase{
		Validator:   validator,
		Eligibility: eligibility,
		Ledger:      deps.Ledger,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Logger:      deps.Logger,
	}
	queryUseCase := queries.UseCase{
		References:  deps.References,
		Log:         deps.Log,
		Ledger:      deps.Ledger,
		Eligibility: eligibility,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Commands: commandUseCase,
			Queries:  queryUseCase,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(seed memory.Seed, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		References: store,
		Log:        store,
		Ledger:     store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
