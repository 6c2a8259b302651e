package ports

import (
	"context"
	"time"

	"almoner/contexts/relief-operations/reporting-service/domain/entities"
)

// ReadModel is the aggregate query surface of the reporting module. Every
// method is read-only; the reporting module never writes.
type ReadModel interface {
	Dashboard(ctx context.Context, asOf time.Time) (entities.DashboardSnapshot, error)
	DistributionStatistics(ctx context.Context) ([]entities.DistributionStatistic, error)
	PendingHouseholds(ctx context.Context, limit int) ([]entities.PendingHousehold, error)
	MonthlySummary(ctx context.Context, months int) ([]entities.MonthlySummaryRow, error)
	InventoryStatus(ctx context.Context) ([]entities.InventoryStatusLine, error)
}

type Clock interface {
	Now() time.Time
}
