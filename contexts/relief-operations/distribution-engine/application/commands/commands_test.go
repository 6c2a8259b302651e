package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	application "almoner/contexts/relief-operations/distribution-engine/application"
	"almoner/contexts/relief-operations/distribution-engine/adapters/memory"
	"almoner/contexts/relief-operations/distribution-engine/domain/entities"
	domainerrors "almoner/contexts/relief-operations/distribution-engine/domain/errors"
	"almoner/contexts/relief-operations/distribution-engine/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type seqIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGen) NewID(_ context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%03d", g.n), nil
}

func baseSeed() memory.Seed {
	return memory.Seed{
		Households: []entities.HouseholdRef{
			{ID: "hh-1", Status: entities.HouseholdStatusActive},
			{ID: "hh-2", Status: entities.HouseholdStatusActive},
		},
		Packages: []entities.PackageRef{
			{ID: "pkg-1", IsActive: true, ValidityPeriodDays: 30},
		},
		Centers: []entities.CenterRef{
			{ID: "ctr-1", Status: entities.CenterStatusActive},
		},
		Lines: []entities.InventoryLine{
			{ID: "line-1", CenterID: "ctr-1", PackageID: "pkg-1", QuantityOnHand: 10, ReorderLevel: 2},
		},
	}
}

func newUseCase(store *memory.Store, now time.Time) UseCase {
	return UseCase{
		Validator:   application.EntityValidator{References: store},
		Eligibility: application.EligibilityEvaluator{Log: store},
		Ledger:      store,
		Clock:       fixedClock{now: now},
		IDGen:       &seqIDGen{},
	}
}

func successRecords(t *testing.T, store *memory.Store) []entities.DistributionRecord {
	t.Helper()
	records, err := store.ListRecords(context.Background(), ports.RecordFilter{Status: entities.RecordStatusSuccess})
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	return records
}

func TestDistributeDebitsOnceAndAppendsRecord(t *testing.T) {
	store := memory.NewStore(baseSeed())
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	uc := newUseCase(store, now)

	outcome, err := uc.Distribute(context.Background(), DistributeCommand{
		HouseholdID: "hh-1",
		PackageID:   "pkg-1",
		CenterID:    "ctr-1",
		StaffID:     "staff-7",
		Quantity:    3,
	})
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if outcome.Status != "success" || outcome.RecordID == "" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}

	line, err := store.GetLine(context.Background(), "ctr-1", "pkg-1")
	if err != nil {
		t.Fatalf("get line: %v", err)
	}
	if line.QuantityOnHand != 7 {
		t.Fatalf("expected 7 on hand after single debit, got %d", line.QuantityOnHand)
	}

	records := successRecords(t, store)
	if len(records) != 1 {
		t.Fatalf("expected exactly one audit record, got %d", len(records))
	}
	record := records[0]
	if record.ID != outcome.RecordID || record.Quantity != 3 || record.StaffID != "staff-7" {
		t.Fatalf("unexpected record %+v", record)
	}
	if !record.DistributedAt.Equal(now) {
		t.Fatalf("expected record timestamp %v, got %v", now, record.DistributedAt)
	}
}

func TestDistributeConcurrentContentionOneWinner(t *testing.T) {
	store := memory.NewStore(baseSeed())
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	uc := newUseCase(store, now)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, household := range []string{"hh-1", "hh-2"} {
		wg.Add(1)
		go func(slot int, householdID string) {
			defer wg.Done()
			_, err := uc.Distribute(context.Background(), DistributeCommand{
				HouseholdID: householdID,
				PackageID:   "pkg-1",
				CenterID:    "ctr-1",
				Quantity:    6,
			})
			results[slot] = err
		}(i, household)
	}
	wg.Wait()

	var successes, insufficient int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domainerrors.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || insufficient != 1 {
		t.Fatalf("expected one success and one insufficient-stock rejection, got %d/%d", successes, insufficient)
	}

	line, _ := store.GetLine(context.Background(), "ctr-1", "pkg-1")
	if line.QuantityOnHand != 4 {
		t.Fatalf("expected 4 on hand, got %d", line.QuantityOnHand)
	}
	if records := successRecords(t, store); len(records) != 1 {
		t.Fatalf("expected one audit record, got %d", len(records))
	}
}

func TestDistributeWaitPeriodBoundary(t *testing.T) {
	lastAt := time.Date(2026, time.January, 1, 15, 30, 0, 0, time.UTC)
	seed := baseSeed()
	seed.Records = []entities.DistributionRecord{{
		ID:            "rec-old",
		HouseholdID:   "hh-1",
		PackageID:     "pkg-1",
		CenterID:      "ctr-1",
		Quantity:      1,
		DistributedAt: lastAt,
		Status:        entities.RecordStatusSuccess,
	}}

	// Day 29 of a 30-day validity period: still ineligible with one day left.
	store := memory.NewStore(seed)
	uc := newUseCase(store, lastAt.AddDate(0, 0, 29))
	_, err := uc.Distribute(context.Background(), DistributeCommand{
		HouseholdID: "hh-1", PackageID: "pkg-1", CenterID: "ctr-1", Quantity: 1,
	})
	var ineligible *domainerrors.IneligibleError
	if !errors.As(err, &ineligible) {
		t.Fatalf("expected ineligible error on day 29, got %v", err)
	}
	if ineligible.DaysSinceLast != 29 || ineligible.DaysRemaining != 1 {
		t.Fatalf("unexpected counters %+v", ineligible)
	}
	if records := successRecords(t, store); len(records) != 1 {
		t.Fatalf("rejection must not append records, got %d", len(records))
	}

	// Day 30: eligible again.
	store = memory.NewStore(seed)
	uc = newUseCase(store, lastAt.AddDate(0, 0, 30))
	if _, err := uc.Distribute(context.Background(), DistributeCommand{
		HouseholdID: "hh-1", PackageID: "pkg-1", CenterID: "ctr-1", Quantity: 1,
	}); err != nil {
		t.Fatalf("expected success on day 30, got %v", err)
	}
}

func TestDistributeInactiveCenterLeavesStateUntouched(t *testing.T) {
	seed := baseSeed()
	seed.Centers = []entities.CenterRef{{ID: "ctr-1", Status: entities.CenterStatusInactive}}
	store := memory.NewStore(seed)
	uc := newUseCase(store, time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	_, err := uc.Distribute(context.Background(), DistributeCommand{
		HouseholdID: "hh-1", PackageID: "pkg-1", CenterID: "ctr-1", Quantity: 1,
	})
	if !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected invalid state error, got %v", err)
	}

	line, _ := store.GetLine(context.Background(), "ctr-1", "pkg-1")
	if line.QuantityOnHand != 10 {
		t.Fatalf("stock must be untouched, got %d", line.QuantityOnHand)
	}
	if records := successRecords(t, store); len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestDistributeQuantityMustBePositive(t *testing.T) {
	store := memory.NewStore(baseSeed())
	uc := newUseCase(store, time.Now().UTC())

	for _, quantity := range []int{0, -4} {
		_, err := uc.Distribute(context.Background(), DistributeCommand{
			HouseholdID: "hh-1", PackageID: "pkg-1", CenterID: "ctr-1", Quantity: quantity,
		})
		if !errors.Is(err, domainerrors.ErrInvalidDistributionInput) {
			t.Fatalf("quantity %d: expected invalid input error, got %v", quantity, err)
		}
	}
}

func TestDistributeEmitsLowStockOnCrossingOnly(t *testing.T) {
	seed := baseSeed()
	seed.Lines = []entities.InventoryLine{
		{ID: "line-1", CenterID: "ctr-1", PackageID: "pkg-1", QuantityOnHand: 10, ReorderLevel: 8},
	}
	store := memory.NewStore(seed)
	uc := newUseCase(store, time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	// 10 -> 7 crosses the reorder level of 8.
	if _, err := uc.Distribute(context.Background(), DistributeCommand{
		HouseholdID: "hh-1", PackageID: "pkg-1", CenterID: "ctr-1", Quantity: 3,
	}); err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if got := countOutboxEvents(t, store, EventInventoryLowStock); got != 1 {
		t.Fatalf("expected one low stock event after crossing, got %d", got)
	}

	// Already below the level: a further debit must not emit again.
	if _, err := uc.Distribute(context.Background(), DistributeCommand{
		HouseholdID: "hh-2", PackageID: "pkg-1", CenterID: "ctr-1", Quantity: 2,
	}); err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if got := countOutboxEvents(t, store, EventInventoryLowStock); got != 1 {
		t.Fatalf("expected no additional low stock event, got %d", got)
	}
	if got := countOutboxEvents(t, store, EventAidDistributed); got != 2 {
		t.Fatalf("expected two distribution events, got %d", got)
	}
}

func TestRestockCreatesMissingLine(t *testing.T) {
	seed := baseSeed()
	seed.Lines = nil
	store := memory.NewStore(seed)
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	uc := newUseCase(store, now)

	outcome, err := uc.Restock(context.Background(), RestockCommand{
		CenterID: "ctr-1", PackageID: "pkg-1", Quantity: 20,
	})
	if err != nil {
		t.Fatalf("restock: %v", err)
	}
	if outcome.Status != "success" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}

	line, err := store.GetLine(context.Background(), "ctr-1", "pkg-1")
	if err != nil {
		t.Fatalf("expected line created, got %v", err)
	}
	if line.QuantityOnHand != 20 || line.ReorderLevel != defaultReorderLevel {
		t.Fatalf("unexpected line %+v", line)
	}
	if line.LastRestockDate == nil || !line.LastRestockDate.Equal(now) || line.LastRestockQuantity != 20 {
		t.Fatalf("restock metadata missing on %+v", line)
	}
	if got := countOutboxEvents(t, store, EventInventoryRestocked); got != 1 {
		t.Fatalf("expected one restocked event, got %d", got)
	}
}

func TestRestockIncrementsExistingLine(t *testing.T) {
	store := memory.NewStore(baseSeed())
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	uc := newUseCase(store, now)

	if _, err := uc.Restock(context.Background(), RestockCommand{
		CenterID: "ctr-1", PackageID: "pkg-1", Quantity: 5,
	}); err != nil {
		t.Fatalf("restock: %v", err)
	}

	line, _ := store.GetLine(context.Background(), "ctr-1", "pkg-1")
	if line.QuantityOnHand != 15 {
		t.Fatalf("expected 15 on hand, got %d", line.QuantityOnHand)
	}
	if line.LastRestockQuantity != 5 {
		t.Fatalf("expected restock metadata updated, got %+v", line)
	}
}

func TestRestockRejectsInvalidInput(t *testing.T) {
	store := memory.NewStore(baseSeed())
	uc := newUseCase(store, time.Now().UTC())

	cases := []RestockCommand{
		{CenterID: "", PackageID: "pkg-1", Quantity: 5},
		{CenterID: "ctr-1", PackageID: "  ", Quantity: 5},
		{CenterID: "ctr-1", PackageID: "pkg-1", Quantity: 0},
	}
	for _, cmd := range cases {
		if _, err := uc.Restock(context.Background(), cmd); !errors.Is(err, domainerrors.ErrInvalidRestockInput) {
			t.Fatalf("cmd %+v: expected invalid restock input, got %v", cmd, err)
		}
	}
}

func TestRestockConcurrentWithDistributeLosesNoUpdate(t *testing.T) {
	store := memory.NewStore(baseSeed())
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	uc := newUseCase(store, now)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := uc.Distribute(context.Background(), DistributeCommand{
			HouseholdID: "hh-1", PackageID: "pkg-1", CenterID: "ctr-1", Quantity: 6,
		}); err != nil {
			t.Errorf("distribute: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if _, err := uc.Restock(context.Background(), RestockCommand{
			CenterID: "ctr-1", PackageID: "pkg-1", Quantity: 20,
		}); err != nil {
			t.Errorf("restock: %v", err)
		}
	}()
	wg.Wait()

	line, _ := store.GetLine(context.Background(), "ctr-1", "pkg-1")
	if line.QuantityOnHand != 24 {
		t.Fatalf("expected 24 on hand after debit 6 and credit 20, got %d", line.QuantityOnHand)
	}
}

func countOutboxEvents(t *testing.T, store *memory.Store, eventType string) int {
	t.Helper()
	pending, err := store.ListPendingOutbox(context.Background(), 0)
	if err != nil {
		t.Fatalf("list outbox: %v", err)
	}
	count := 0
	for _, message := range pending {
		if message.EventType == eventType {
			count++
		}
	}
	return count
}
