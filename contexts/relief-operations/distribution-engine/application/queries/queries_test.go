package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	application "almoner/contexts/relief-operations/distribution-engine/application"
	"almoner/contexts/relief-operations/distribution-engine/adapters/memory"
	"almoner/contexts/relief-operations/distribution-engine/domain/entities"
	domainerrors "almoner/contexts/relief-operations/distribution-engine/domain/errors"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newUseCase(store *memory.Store, now time.Time) UseCase {
	return UseCase{
		References:  store,
		Log:         store,
		Ledger:      store,
		Eligibility: application.EligibilityEvaluator{Log: store},
		Clock:       fixedClock{now: now},
	}
}

func TestCheckEligibilityAdvisoryProbe(t *testing.T) {
	lastAt := time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC)
	store := memory.NewStore(memory.Seed{
		Households: []entities.HouseholdRef{{ID: "hh-1", Status: entities.HouseholdStatusActive}},
		Packages:   []entities.PackageRef{{ID: "pkg-1", IsActive: true, ValidityPeriodDays: 30}},
		Records: []entities.DistributionRecord{{
			ID: "rec-1", HouseholdID: "hh-1", PackageID: "pkg-1",
			DistributedAt: lastAt, Status: entities.RecordStatusSuccess,
		}},
	})
	uc := newUseCase(store, lastAt.AddDate(0, 0, 12))

	eligibility, err := uc.CheckEligibility(context.Background(), "hh-1", "pkg-1")
	if err != nil {
		t.Fatalf("check eligibility: %v", err)
	}
	if eligibility.Eligible {
		t.Fatalf("expected ineligible at day 12 of 30, got %+v", eligibility)
	}
	if eligibility.DaysRemaining == nil || *eligibility.DaysRemaining != 18 {
		t.Fatalf("unexpected days remaining %+v", eligibility.DaysRemaining)
	}
}

func TestCheckEligibilityRejectsInactiveParticipants(t *testing.T) {
	store := memory.NewStore(memory.Seed{
		Households: []entities.HouseholdRef{{ID: "hh-1", Status: entities.HouseholdStatusSuspended}},
		Packages:   []entities.PackageRef{{ID: "pkg-1", IsActive: true, ValidityPeriodDays: 30}},
	})
	uc := newUseCase(store, time.Now().UTC())

	if _, err := uc.CheckEligibility(context.Background(), "hh-1", "pkg-1"); !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected invalid state for suspended household, got %v", err)
	}
	if _, err := uc.CheckEligibility(context.Background(), "hh-missing", "pkg-1"); !errors.Is(err, domainerrors.ErrHouseholdNotFound) {
		t.Fatalf("expected household not found, got %v", err)
	}
}

func TestListLowStockOrdersOutOfStockFirst(t *testing.T) {
	store := memory.NewStore(memory.Seed{
		Lines: []entities.InventoryLine{
			{ID: "line-1", CenterID: "ctr-1", PackageID: "pkg-1", QuantityOnHand: 5, ReorderLevel: 10},
			{ID: "line-2", CenterID: "ctr-1", PackageID: "pkg-2", QuantityOnHand: 0, ReorderLevel: 10},
			{ID: "line-3", CenterID: "ctr-2", PackageID: "pkg-1", QuantityOnHand: 200, ReorderLevel: 10},
		},
	})
	uc := newUseCase(store, time.Now().UTC())

	lines, err := uc.ListLowStock(context.Background())
	if err != nil {
		t.Fatalf("list low stock: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected two low stock lines, got %d", len(lines))
	}
	if lines[0].QuantityOnHand != 0 {
		t.Fatalf("expected out-of-stock line first, got %+v", lines[0])
	}
}

func TestHouseholdHistoryRequiresKnownHousehold(t *testing.T) {
	store := memory.NewStore(memory.Seed{
		Households: []entities.HouseholdRef{{ID: "hh-1", Status: entities.HouseholdStatusActive}},
		Records: []entities.DistributionRecord{{
			ID: "rec-1", HouseholdID: "hh-1", PackageID: "pkg-1",
			DistributedAt: time.Now().UTC(), Status: entities.RecordStatusSuccess,
		}},
	})
	uc := newUseCase(store, time.Now().UTC())

	records, err := uc.HouseholdHistory(context.Background(), "hh-1")
	if err != nil {
		t.Fatalf("household history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}

	if _, err := uc.HouseholdHistory(context.Background(), "hh-ghost"); !errors.Is(err, domainerrors.ErrHouseholdNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
