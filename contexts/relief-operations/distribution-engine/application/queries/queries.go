package queries

import (
	"context"
	"log/slog"
	"strings"

	application "almoner/contexts/relief-operations/distribution-engine/application"
	"almoner/contexts/relief-operations/distribution-engine/domain/entities"
	domainerrors "almoner/contexts/relief-operations/distribution-engine/domain/errors"
	"almoner/contexts/relief-operations/distribution-engine/ports"
)

// UseCase serves the engine's read side: the standalone eligibility probe,
// inventory lookups, and audit log listings. Everything here is unlocked.
type UseCase struct {
	References  ports.ReferenceStore
	Log         ports.DistributionLog
	Ledger      ports.InventoryLedger
	Eligibility application.EligibilityEvaluator
	Clock       ports.Clock
	Logger      *slog.Logger
}

// CheckEligibility is the advisory probe: no lock, no mutation, and the
// answer may be stale by the time a distribution is attempted.
func (uc UseCase) CheckEligibility(ctx context.Context, householdID, packageID string) (entities.Eligibility, error) {
	logger := application.ResolveLogger(uc.Logger)
	householdID = strings.TrimSpace(householdID)
	packageID = strings.TrimSpace(packageID)
	if householdID == "" || packageID == "" {
		return entities.Eligibility{}, domainerrors.ErrInvalidDistributionInput
	}

	household, err := uc.References.GetHouseholdRef(ctx, householdID)
	if err != nil {
		return entities.Eligibility{}, err
	}
	if household.Status != entities.HouseholdStatusActive {
		return entities.Eligibility{}, &domainerrors.InvalidStateError{
			Entity: "household",
			ID:     householdID,
			Status: string(household.Status),
		}
	}
	pkg, err := uc.References.GetPackageRef(ctx, packageID)
	if err != nil {
		return entities.Eligibility{}, err
	}
	if !pkg.IsActive {
		return entities.Eligibility{}, &domainerrors.InvalidStateError{
			Entity: "package",
			ID:     packageID,
			Status: "inactive",
		}
	}

	eligibility, err := uc.Eligibility.Evaluate(ctx, householdID, pkg, uc.Clock.Now())
	if err != nil {
		logger.Error("eligibility probe failed",
			"event", "eligibility_probe_failed",
			"module", "relief-operations/distribution-engine",
			"layer", "application",
			"household_id", householdID,
			"package_id", packageID,
			"error", err.Error(),
		)
		return entities.Eligibility{}, err
	}
	return eligibility, nil
}

func (uc UseCase) GetLine(ctx context.Context, centerID, packageID string) (entities.InventoryLine, error) {
	return uc.Ledger.GetLine(ctx, strings.TrimSpace(centerID), strings.TrimSpace(packageID))
}

func (uc UseCase) ListInventory(ctx context.Context, filter ports.InventoryFilter) ([]entities.InventoryLine, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return uc.Ledger.ListLines(ctx, filter)
}

// ListLowStock returns lines at or below their reorder level, out-of-stock
// lines first.
func (uc UseCase) ListLowStock(ctx context.Context) ([]entities.InventoryLine, error) {
	lines, err := uc.Ledger.ListLines(ctx, ports.InventoryFilter{LowStockOnly: true, Limit: 500})
	if err != nil {
		return nil, err
	}
	out := make([]entities.InventoryLine, 0, len(lines))
	for _, line := range lines {
		if line.QuantityOnHand == 0 {
			out = append(out, line)
		}
	}
	for _, line := range lines {
		if line.QuantityOnHand > 0 {
			out = append(out, line)
		}
	}
	return out, nil
}

func (uc UseCase) ListRecords(ctx context.Context, filter ports.RecordFilter) ([]entities.DistributionRecord, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return uc.Log.ListRecords(ctx, filter)
}

func (uc UseCase) HouseholdHistory(ctx context.Context, householdID string) ([]entities.DistributionRecord, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return nil, domainerrors.ErrInvalidDistributionInput
	}
	if _, err := uc.References.GetHouseholdRef(ctx, householdID); err != nil {
		return nil, err
	}
	return uc.Log.ListRecords(ctx, ports.RecordFilter{HouseholdID: householdID, Limit: 100})
}
