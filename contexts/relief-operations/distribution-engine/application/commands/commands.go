package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "almoner/contexts/relief-operations/distribution-engine/application"
	"almoner/contexts/relief-operations/distribution-engine/domain/entities"
	domainerrors "almoner/contexts/relief-operations/distribution-engine/domain/errors"
	"almoner/contexts/relief-operations/distribution-engine/ports"
)

const (
	EventAidDistributed     = "aid.distributed"
	EventInventoryRestocked = "inventory.restocked"
	EventInventoryLowStock  = "inventory.low_stock"

	defaultReorderLevel = 50
)

type DistributeCommand struct {
	HouseholdID string
	PackageID   string
	CenterID    string
	StaffID     string // optional
	Quantity    int
}

type RestockCommand struct {
	CenterID  string
	PackageID string
	Quantity  int
}

type Outcome struct {
	Status   string
	Message  string
	RecordID string
}

// UseCase coordinates the distribution transaction: validator, then
// eligibility, then the locked ledger section that debits stock and appends
// the audit record as one atomic unit. Any failure before commit leaves no
// partial effect.
type UseCase struct {
	Validator     application.EntityValidator
	Eligibility   application.EligibilityEvaluator
	Ledger        ports.InventoryLedger
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Logger        *slog.Logger
	SourceService string
}

func (uc UseCase) Distribute(ctx context.Context, cmd DistributeCommand) (Outcome, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Quantity < 1 {
		return Outcome{}, domainerrors.ErrInvalidDistributionInput
	}

	validated, err := uc.Validator.Validate(ctx, cmd.HouseholdID, cmd.PackageID, cmd.CenterID)
	if err != nil {
		return Outcome{}, err
	}

	now := uc.Clock.Now().UTC()
	eligibility, err := uc.Eligibility.Evaluate(ctx, validated.Household.ID, validated.Package, now)
	if err != nil {
		return Outcome{}, uc.transactionFailure(logger, "distribution_eligibility_read_failed", cmd, err)
	}
	if !eligibility.Eligible {
		reject := &domainerrors.IneligibleError{}
		if eligibility.DaysSinceLast != nil {
			reject.DaysSinceLast = *eligibility.DaysSinceLast
		}
		if eligibility.DaysRemaining != nil {
			reject.DaysRemaining = *eligibility.DaysRemaining
		}
		return Outcome{}, reject
	}

	// Callers may cancel freely up to this point. Once the critical section
	// starts it runs to commit or abort so the lock is never left held.
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	recordID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return Outcome{}, uc.transactionFailure(logger, "distribution_id_generation_failed", cmd, err)
	}

	err = uc.Ledger.WithLockedLine(ctx, validated.Center.ID, validated.Package.ID, func(tx ports.LineTx) error {
		before := tx.Line()
		if err := tx.Decrement(cmd.Quantity); err != nil {
			return err
		}
		after := tx.Line()

		tx.AppendRecord(entities.DistributionRecord{
			ID:            recordID,
			HouseholdID:   validated.Household.ID,
			PackageID:     validated.Package.ID,
			CenterID:      validated.Center.ID,
			StaffID:       strings.TrimSpace(cmd.StaffID),
			Quantity:      cmd.Quantity,
			DistributedAt: now,
			Status:        entities.RecordStatusSuccess,
			Notes:         "distributed via api",
		})
		tx.AppendEvent(uc.envelope(ctx, EventAidDistributed, "distribution_record", recordID, now, map[string]any{
			"household_id": validated.Household.ID,
			"package_id":   validated.Package.ID,
			"center_id":    validated.Center.ID,
			"quantity":     cmd.Quantity,
			"on_hand":      after.QuantityOnHand,
		}))
		if !before.LowStock() && after.LowStock() {
			tx.AppendEvent(uc.envelope(ctx, EventInventoryLowStock, "inventory_line", after.ID, now, map[string]any{
				"center_id":     after.CenterID,
				"package_id":    after.PackageID,
				"on_hand":       after.QuantityOnHand,
				"reorder_level": after.ReorderLevel,
			}))
		}
		return nil
	})
	if err != nil {
		if isRejection(err) {
			logger.Warn("distribution rejected in critical section",
				"event", "distribution_rejected",
				"module", "relief-operations/distribution-engine",
				"layer", "application",
				"household_id", validated.Household.ID,
				"package_id", validated.Package.ID,
				"center_id", validated.Center.ID,
				"quantity", cmd.Quantity,
				"error", err.Error(),
			)
			return Outcome{}, err
		}
		return Outcome{}, uc.transactionFailure(logger, "distribution_transaction_failed", cmd, err)
	}

	logger.Info("distribution committed",
		"event", "distribution_committed",
		"module", "relief-operations/distribution-engine",
		"layer", "application",
		"record_id", recordID,
		"household_id", validated.Household.ID,
		"package_id", validated.Package.ID,
		"center_id", validated.Center.ID,
		"quantity", cmd.Quantity,
	)
	return Outcome{
		Status:   "success",
		Message:  fmt.Sprintf("successfully distributed %d package(s)", cmd.Quantity),
		RecordID: recordID,
	}, nil
}

func (uc UseCase) Restock(ctx context.Context, cmd RestockCommand) (Outcome, error) {
	logger := application.ResolveLogger(uc.Logger)
	centerID := strings.TrimSpace(cmd.CenterID)
	packageID := strings.TrimSpace(cmd.PackageID)
	if centerID == "" || packageID == "" || cmd.Quantity <= 0 {
		return Outcome{}, domainerrors.ErrInvalidRestockInput
	}

	now := uc.Clock.Now().UTC()

	// First attempt increments under the same lock discipline as a
	// distribution so a concurrent debit on the line cannot be lost. When
	// no line exists yet we create one; losing the creation race against
	// another restocker falls back to the increment path.
	for attempt := 0; attempt < 2; attempt++ {
		err := uc.Ledger.WithLockedLine(ctx, centerID, packageID, func(tx ports.LineTx) error {
			tx.Increment(cmd.Quantity, now)
			line := tx.Line()
			tx.AppendEvent(uc.envelope(ctx, EventInventoryRestocked, "inventory_line", line.ID, now, map[string]any{
				"center_id":  centerID,
				"package_id": packageID,
				"quantity":   cmd.Quantity,
				"on_hand":    line.QuantityOnHand,
			}))
			return nil
		})
		if err == nil {
			logger.Info("inventory restocked",
				"event", "inventory_restocked",
				"module", "relief-operations/distribution-engine",
				"layer", "application",
				"center_id", centerID,
				"package_id", packageID,
				"quantity", cmd.Quantity,
			)
			return Outcome{
				Status:  "success",
				Message: fmt.Sprintf("successfully restocked %d units", cmd.Quantity),
			}, nil
		}
		if !errors.Is(err, domainerrors.ErrLineNotFound) {
			if errors.Is(err, domainerrors.ErrLockTimeout) {
				return Outcome{}, err
			}
			return Outcome{}, uc.restockFailure(logger, cmd, err)
		}

		lineID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return Outcome{}, uc.restockFailure(logger, cmd, err)
		}
		line := entities.InventoryLine{
			ID:                  lineID,
			CenterID:            centerID,
			PackageID:           packageID,
			QuantityOnHand:      cmd.Quantity,
			ReorderLevel:        defaultReorderLevel,
			LastRestockDate:     &now,
			LastRestockQuantity: cmd.Quantity,
			UpdatedAt:           now,
		}
		seed := []ports.EventEnvelope{
			uc.envelope(ctx, EventInventoryRestocked, "inventory_line", lineID, now, map[string]any{
				"center_id":  centerID,
				"package_id": packageID,
				"quantity":   cmd.Quantity,
				"on_hand":    cmd.Quantity,
			}),
		}
		createErr := uc.Ledger.CreateLine(ctx, line, seed)
		if createErr == nil {
			logger.Info("inventory line created by restock",
				"event", "inventory_line_created",
				"module", "relief-operations/distribution-engine",
				"layer", "application",
				"line_id", lineID,
				"center_id", centerID,
				"package_id", packageID,
				"quantity", cmd.Quantity,
			)
			return Outcome{
				Status:  "success",
				Message: fmt.Sprintf("successfully restocked %d units", cmd.Quantity),
			}, nil
		}
		if !errors.Is(createErr, domainerrors.ErrLineExists) {
			return Outcome{}, uc.restockFailure(logger, cmd, createErr)
		}
		// Lost the creation race; loop once more and increment the line the
		// winner just created.
	}
	return Outcome{}, uc.restockFailure(logger, cmd, domainerrors.ErrLineExists)
}

func (uc UseCase) envelope(ctx context.Context, eventType, entityType, entityID string, at time.Time, payload map[string]any) ports.EventEnvelope {
	source := uc.SourceService
	if source == "" {
		source = "almoner"
	}
	id := ""
	if generated, err := uc.IDGen.NewID(ctx); err == nil {
		id = generated
	}
	return ports.EventEnvelope{
		EventID:       id,
		EventType:     eventType,
		SourceService: source,
		OccurredAtUTC: at,
		EntityType:    entityType,
		EntityID:      entityID,
		Payload:       payload,
	}
}

func (uc UseCase) transactionFailure(logger *slog.Logger, event string, cmd DistributeCommand, err error) error {
	logger.Error("distribution transaction failed",
		"event", event,
		"module", "relief-operations/distribution-engine",
		"layer", "application",
		"household_id", strings.TrimSpace(cmd.HouseholdID),
		"package_id", strings.TrimSpace(cmd.PackageID),
		"center_id", strings.TrimSpace(cmd.CenterID),
		"quantity", cmd.Quantity,
		"error", err.Error(),
	)
	return fmt.Errorf("%w: %v", domainerrors.ErrTransactionFailure, err)
}

func (uc UseCase) restockFailure(logger *slog.Logger, cmd RestockCommand, err error) error {
	logger.Error("restock failed",
		"event", "inventory_restock_failed",
		"module", "relief-operations/distribution-engine",
		"layer", "application",
		"center_id", strings.TrimSpace(cmd.CenterID),
		"package_id", strings.TrimSpace(cmd.PackageID),
		"quantity", cmd.Quantity,
		"error", err.Error(),
	)
	return fmt.Errorf("%w: %v", domainerrors.ErrTransactionFailure, err)
}

func isRejection(err error) bool {
	return errors.Is(err, domainerrors.ErrInsufficientStock) ||
		errors.Is(err, domainerrors.ErrLineNotFound) ||
		errors.Is(err, domainerrors.ErrLockTimeout) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
