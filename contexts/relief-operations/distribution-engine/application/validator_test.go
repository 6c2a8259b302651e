package application

import (
	"context"
	"errors"
	"testing"

	"almoner/contexts/relief-operations/distribution-engine/domain/entities"
	domainerrors "almoner/contexts/relief-operations/distribution-engine/domain/errors"
)

type stubReferences struct {
	household entities.HouseholdRef
	pkg       entities.PackageRef
	center    entities.CenterRef
}

func (s stubReferences) GetHouseholdRef(_ context.Context, householdID string) (entities.HouseholdRef, error) {
	if s.household.ID != householdID {
		return entities.HouseholdRef{}, domainerrors.ErrHouseholdNotFound
	}
	return s.household, nil
}

func (s stubReferences) GetPackageRef(_ context.Context, packageID string) (entities.PackageRef, error) {
	if s.pkg.ID != packageID {
		return entities.PackageRef{}, domainerrors.ErrPackageNotFound
	}
	return s.pkg, nil
}

func (s stubReferences) GetCenterRef(_ context.Context, centerID string) (entities.CenterRef, error) {
	if s.center.ID != centerID {
		return entities.CenterRef{}, domainerrors.ErrCenterNotFound
	}
	return s.center, nil
}

func activeReferences() stubReferences {
	return stubReferences{
		household: entities.HouseholdRef{ID: "hh-1", Status: entities.HouseholdStatusActive},
		pkg:       entities.PackageRef{ID: "pkg-1", IsActive: true, ValidityPeriodDays: 30},
		center:    entities.CenterRef{ID: "ctr-1", Status: entities.CenterStatusActive},
	}
}

func TestValidateTrimsIdentifiers(t *testing.T) {
	validator := EntityValidator{References: activeReferences()}

	result, err := validator.Validate(context.Background(), " hh-1 ", "pkg-1\t", " ctr-1")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Household.ID != "hh-1" || result.Package.ID != "pkg-1" || result.Center.ID != "ctr-1" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestValidateRejectsBlankIdentifiers(t *testing.T) {
	validator := EntityValidator{References: activeReferences()}

	_, err := validator.Validate(context.Background(), "hh-1", "  ", "ctr-1")
	if !errors.Is(err, domainerrors.ErrInvalidDistributionInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestValidateMissingEntityMapsToNotFound(t *testing.T) {
	validator := EntityValidator{References: activeReferences()}

	_, err := validator.Validate(context.Background(), "hh-missing", "pkg-1", "ctr-1")
	if !errors.Is(err, domainerrors.ErrHouseholdNotFound) {
		t.Fatalf("expected household not found, got %v", err)
	}
}

func TestValidateInoperableStatuses(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*stubReferences)
		entity string
	}{
		{
			name:   "suspended household",
			mutate: func(s *stubReferences) { s.household.Status = entities.HouseholdStatusSuspended },
			entity: "household",
		},
		{
			name:   "inactive package",
			mutate: func(s *stubReferences) { s.pkg.IsActive = false },
			entity: "package",
		},
		{
			name:   "center in maintenance",
			mutate: func(s *stubReferences) { s.center.Status = entities.CenterStatusMaintenance },
			entity: "center",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			refs := activeReferences()
			tc.mutate(&refs)
			validator := EntityValidator{References: refs}

			_, err := validator.Validate(context.Background(), "hh-1", "pkg-1", "ctr-1")
			if !errors.Is(err, domainerrors.ErrInvalidState) {
				t.Fatalf("expected invalid state error, got %v", err)
			}
			var invalidState *domainerrors.InvalidStateError
			if !errors.As(err, &invalidState) || invalidState.Entity != tc.entity {
				t.Fatalf("expected %s invalid state detail, got %v", tc.entity, err)
			}
		})
	}
}
