package application

import (
	"context"
	"log/slog"
	"strings"

	"almoner/contexts/relief-operations/distribution-engine/domain/entities"
	domainerrors "almoner/contexts/relief-operations/distribution-engine/domain/errors"
	"almoner/contexts/relief-operations/distribution-engine/ports"
)

// EntityValidator confirms the household, package, and center referenced in
// a request exist and are in an operable status. It runs before any lock is
// taken: cheap checks first, contended work last.
type EntityValidator struct {
	References ports.ReferenceStore
	Logger     *slog.Logger
}

type ValidationResult struct {
	Household entities.HouseholdRef
	Package   entities.PackageRef
	Center    entities.CenterRef
}

func (v EntityValidator) Validate(
	ctx context.Context,
	householdID, packageID, centerID string,
) (ValidationResult, error) {
	logger := ResolveLogger(v.Logger)
	result := ValidationResult{}

	householdID = strings.TrimSpace(householdID)
	packageID = strings.TrimSpace(packageID)
	centerID = strings.TrimSpace(centerID)
	if householdID == "" || packageID == "" || centerID == "" {
		return result, domainerrors.ErrInvalidDistributionInput
	}

	household, err := v.References.GetHouseholdRef(ctx, householdID)
	if err != nil {
		return result, err
	}
	if household.Status != entities.HouseholdStatusActive {
		logger.Warn("distribution validation rejected household",
			"event", "distribution_validation_household_rejected",
			"module", "relief-operations/distribution-engine",
			"layer", "application",
			"household_id", householdID,
			"status", string(household.Status),
		)
		return result, &domainerrors.InvalidStateError{
			Entity: "household",
			ID:     householdID,
			Status: string(household.Status),
		}
	}
	result.Household = household

	pkg, err := v.References.GetPackageRef(ctx, packageID)
	if err != nil {
		return result, err
	}
	if !pkg.IsActive {
		logger.Warn("distribution validation rejected package",
			"event", "distribution_validation_package_rejected",
			"module", "relief-operations/distribution-engine",
			"layer", "application",
			"package_id", packageID,
		)
		return result, &domainerrors.InvalidStateError{
			Entity: "package",
			ID:     packageID,
			Status: "inactive",
		}
	}
	result.Package = pkg

	center, err := v.References.GetCenterRef(ctx, centerID)
	if err != nil {
		return result, err
	}
	if center.Status != entities.CenterStatusActive {
		logger.Warn("distribution validation rejected center",
			"event", "distribution_validation_center_rejected",
			"module", "relief-operations/distribution-engine",
			"layer", "application",
			"center_id", centerID,
			"status", string(center.Status),
		)
		return result, &domainerrors.InvalidStateError{
			Entity: "center",
			ID:     centerID,
			Status: string(center.Status),
		}
	}
	result.Center = center

	return result, nil
}
