package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"almoner/contexts/relief-operations/reporting-service/application"
	httptransport "almoner/contexts/relief-operations/reporting-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) DashboardHandler(ctx context.Context) (httptransport.DashboardResponse, error) {
	snapshot, err := h.Service.Dashboard(ctx)
	if err != nil {
		return httptransport.DashboardResponse{}, err
	}
	return httptransport.DashboardResponse{
		ActiveHouseholds:       snapshot.ActiveHouseholds,
		TotalDistributions:     snapshot.TotalDistributions,
		ActiveCenters:          snapshot.ActiveCenters,
		LowStockLines:          snapshot.LowStockLines,
		CriticalUnserved:       snapshot.CriticalUnserved,
		DistributionsLast7Days: snapshot.DistributionsLast7Days,
		GeneratedAt:            snapshot.GeneratedAt.Format(time.RFC3339),
	}, nil
}

func (h Handler) DistributionStatisticsHandler(ctx context.Context) (httptransport.DistributionStatisticsResponse, error) {
	statistics, err := h.Service.DistributionStatistics(ctx)
	if err != nil {
		return httptransport.DistributionStatisticsResponse{}, err
	}
	dtos := make([]httptransport.DistributionStatisticDTO, 0, len(statistics))
	for _, stat := range statistics {
		dtos = append(dtos, httptransport.DistributionStatisticDTO{
			CenterID:           stat.CenterID,
			PackageID:          stat.PackageID,
			TotalDistributions: stat.TotalDistributions,
			TotalUnits:         stat.TotalUnits,
			LastDistributionAt: stat.LastDistributionAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.DistributionStatisticsResponse{Statistics: dtos, Total: len(dtos)}, nil
}

func (h Handler) PendingHouseholdsHandler(ctx context.Context, limit int) (httptransport.PendingHouseholdsResponse, error) {
	pending, err := h.Service.PendingHouseholds(ctx, limit)
	if err != nil {
		return httptransport.PendingHouseholdsResponse{}, err
	}
	dtos := make([]httptransport.PendingHouseholdDTO, 0, len(pending))
	for _, household := range pending {
		dtos = append(dtos, httptransport.PendingHouseholdDTO{
			HouseholdID:      household.HouseholdID,
			FamilyName:       household.FamilyName,
			City:             household.City,
			PriorityLevel:    household.PriorityLevel,
			RegistrationDate: household.RegistrationDate.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.PendingHouseholdsResponse{Households: dtos, Total: len(dtos)}, nil
}

func (h Handler) MonthlySummaryHandler(ctx context.Context, months int) (httptransport.MonthlySummaryResponse, error) {
	summary, err := h.Service.MonthlySummary(ctx, months)
	if err != nil {
		return httptransport.MonthlySummaryResponse{}, err
	}
	dtos := make([]httptransport.MonthlySummaryRowDTO, 0, len(summary))
	for _, row := range summary {
		dtos = append(dtos, httptransport.MonthlySummaryRowDTO{
			Month:             row.Month,
			CenterID:          row.CenterID,
			DistributionCount: row.DistributionCount,
			TotalUnits:        row.TotalUnits,
		})
	}
	return httptransport.MonthlySummaryResponse{Summary: dtos, Total: len(dtos)}, nil
}

func (h Handler) InventoryStatusHandler(ctx context.Context) (httptransport.InventoryStatusResponse, error) {
	lines, err := h.Service.InventoryStatus(ctx)
	if err != nil {
		return httptransport.InventoryStatusResponse{}, err
	}
	dtos := make([]httptransport.InventoryStatusLineDTO, 0, len(lines))
	for _, line := range lines {
		dtos = append(dtos, httptransport.InventoryStatusLineDTO{
			CenterID:       line.CenterID,
			PackageID:      line.PackageID,
			QuantityOnHand: line.QuantityOnHand,
			ReorderLevel:   line.ReorderLevel,
			StockStatus:    line.StockStatus,
		})
	}
	return httptransport.InventoryStatusResponse{Lines: dtos, Total: len(dtos)}, nil
}
