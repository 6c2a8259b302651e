package application

import (
	"context"
	"log/slog"

	"almoner/contexts/relief-operations/reporting-service/domain/entities"
	"almoner/contexts/relief-operations/reporting-service/ports"
)

const (
	defaultPendingLimit  = 100
	defaultSummaryMonths = 12
)

// Service wraps the read model with defaults and request logging.
type Service struct {
	ReadModel ports.ReadModel
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (s Service) Dashboard(ctx context.Context) (entities.DashboardSnapshot, error) {
	asOf := s.Clock.Now().UTC()
	snapshot, err := s.ReadModel.Dashboard(ctx, asOf)
	if err != nil {
		ResolveLogger(s.Logger).Error("dashboard query failed",
			"event", "reporting_dashboard_failed",
			"module", "relief-operations/reporting-service",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.DashboardSnapshot{}, err
	}
	snapshot.GeneratedAt = asOf
	return snapshot, nil
}

func (s Service) DistributionStatistics(ctx context.Context) ([]entities.DistributionStatistic, error) {
	return s.ReadModel.DistributionStatistics(ctx)
}

func (s Service) PendingHouseholds(ctx context.Context, limit int) ([]entities.PendingHousehold, error) {
	if limit <= 0 {
		limit = defaultPendingLimit
	}
	return s.ReadModel.PendingHouseholds(ctx, limit)
}

func (s Service) MonthlySummary(ctx context.Context, months int) ([]entities.MonthlySummaryRow, error) {
	if months <= 0 {
		months = defaultSummaryMonths
	}
	return s.ReadModel.MonthlySummary(ctx, months)
}

func (s Service) InventoryStatus(ctx context.Context) ([]entities.InventoryStatusLine, error) {
	return s.ReadModel.InventoryStatus(ctx)
}
