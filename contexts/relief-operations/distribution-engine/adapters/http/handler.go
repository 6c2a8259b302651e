package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "almoner/contexts/relief-operations/distribution-engine/application"
	"almoner/contexts/relief-operations/distribution-engine/application/commands"
	"almoner/contexts/relief-operations/distribution-engine/application/queries"
	"almoner/contexts/relief-operations/distribution-engine/domain/entities"
	"almoner/contexts/relief-operations/distribution-engine/ports"
	httptransport "almoner/contexts/relief-operations/distribution-engine/transport/http"
)

type Handler struct {
	Commands commands.UseCase
	Queries  queries.UseCase
	Logger   *slog.Logger
}

func (h Handler) DistributeHandler(
	ctx context.Context,
	req httptransport.DistributeRequest,
) (httptransport.DistributeResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	outcome, err := h.Commands.Distribute(ctx, commands.DistributeCommand{
		HouseholdID: req.HouseholdID,
		PackageID:   req.PackageID,
		CenterID:    req.CenterID,
		StaffID:     req.StaffID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		logger.Warn("distribution http request failed",
			"event", "distribution_http_distribute_failed",
			"module", "relief-operations/distribution-engine",
			"layer", "adapter",
			"household_id", strings.TrimSpace(req.HouseholdID),
			"package_id", strings.TrimSpace(req.PackageID),
			"center_id", strings.TrimSpace(req.CenterID),
			"quantity", req.Quantity,
			"error", err.Error(),
		)
		return httptransport.DistributeResponse{}, err
	}
	return httptransport.DistributeResponse{
		Status:   outcome.Status,
		Message:  outcome.Message,
		RecordID: outcome.RecordID,
	}, nil
}

func (h Handler) CheckEligibilityHandler(
	ctx context.Context,
	req httptransport.EligibilityCheckRequest,
) (httptransport.EligibilityCheckResponse, error) {
	eligibility, err := h.Queries.CheckEligibility(ctx, req.HouseholdID, req.PackageID)
	if err != nil {
		return httptransport.EligibilityCheckResponse{}, err
	}
	return httptransport.EligibilityCheckResponse{
		Eligible:      eligibility.Eligible,
		Reason:        eligibility.Reason,
		DaysSinceLast: eligibility.DaysSinceLast,
		DaysRemaining: eligibility.DaysRemaining,
	}, nil
}

func (h Handler) RestockHandler(
	ctx context.Context,
	req httptransport.RestockRequest,
) (httptransport.RestockResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	outcome, err := h.Commands.Restock(ctx, commands.RestockCommand{
		CenterID:  req.CenterID,
		PackageID: req.PackageID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		logger.Warn("restock http request failed",
			"event", "distribution_http_restock_failed",
			"module", "relief-operations/distribution-engine",
			"layer", "adapter",
			"center_id", strings.TrimSpace(req.CenterID),
			"package_id", strings.TrimSpace(req.PackageID),
			"quantity", req.Quantity,
			"error", err.Error(),
		)
		return httptransport.RestockResponse{}, err
	}
	return httptransport.RestockResponse{
		Status:  outcome.Status,
		Message: outcome.Message,
	}, nil
}

func (h Handler) ListInventoryHandler(
	ctx context.Context,
	filter ports.InventoryFilter,
) (httptransport.InventoryListResponse, error) {
	lines, err := h.Queries.ListInventory(ctx, filter)
	if err != nil {
		return httptransport.InventoryListResponse{}, err
	}
	return inventoryListResponse(lines), nil
}

func (h Handler) LowStockHandler(ctx context.Context) (httptransport.InventoryListResponse, error) {
	lines, err := h.Queries.ListLowStock(ctx)
	if err != nil {
		return httptransport.InventoryListResponse{}, err
	}
	return inventoryListResponse(lines), nil
}

func (h Handler) ListRecordsHandler(
	ctx context.Context,
	filter ports.RecordFilter,
) (httptransport.RecordListResponse, error) {
	records, err := h.Queries.ListRecords(ctx, filter)
	if err != nil {
		return httptransport.RecordListResponse{}, err
	}
	return recordListResponse(records), nil
}

func (h Handler) HouseholdHistoryHandler(
	ctx context.Context,
	householdID string,
) (httptransport.RecordListResponse, error) {
	records, err := h.Queries.HouseholdHistory(ctx, householdID)
	if err != nil {
		return httptransport.RecordListResponse{}, err
	}
	return recordListResponse(records), nil
}

func inventoryListResponse(lines []entities.InventoryLine) httptransport.InventoryListResponse {
	dtos := make([]httptransport.InventoryLineDTO, 0, len(lines))
	for _, line := range lines {
		dto := httptransport.InventoryLineDTO{
			ID:                  line.ID,
			CenterID:            line.CenterID,
			PackageID:           line.PackageID,
			QuantityOnHand:      line.QuantityOnHand,
			ReorderLevel:        line.ReorderLevel,
			StockStatus:         stockStatus(line),
			LastRestockQuantity: line.LastRestockQuantity,
		}
		if line.LastRestockDate != nil {
			dto.LastRestockDate = line.LastRestockDate.UTC().Format(time.RFC3339)
		}
		dtos = append(dtos, dto)
	}
	return httptransport.InventoryListResponse{Inventory: dtos, Total: len(dtos)}
}

func recordListResponse(records []entities.DistributionRecord) httptransport.RecordListResponse {
	dtos := make([]httptransport.DistributionRecordDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, httptransport.DistributionRecordDTO{
			ID:            record.ID,
			HouseholdID:   record.HouseholdID,
			PackageID:     record.PackageID,
			CenterID:      record.CenterID,
			StaffID:       record.StaffID,
			Quantity:      record.Quantity,
			DistributedAt: record.DistributedAt.UTC().Format(time.RFC3339),
			Status:        string(record.Status),
			Notes:         record.Notes,
		})
	}
	return httptransport.RecordListResponse{Records: dtos, Total: len(dtos)}
}

func stockStatus(line entities.InventoryLine) string {
	switch {
	case line.QuantityOnHand == 0:
		return "OUT_OF_STOCK"
	case line.LowStock():
		return "LOW_STOCK"
	default:
		return "OK"
	}
}
