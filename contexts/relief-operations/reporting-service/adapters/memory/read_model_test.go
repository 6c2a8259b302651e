package memory

import (
	"context"
	"testing"
	"time"

	"almoner/contexts/relief-operations/reporting-service/domain/entities"
)

func reportingSeed(asOf time.Time) Seed {
	return Seed{
		Households: []HouseholdRow{
			{ID: "hh-1", FamilyName: "Adams", City: "Springfield", PriorityLevel: "medium", Status: "active", RegistrationDate: asOf.AddDate(0, 0, -40)},
			{ID: "hh-2", FamilyName: "Baker", City: "Riverton", PriorityLevel: "critical", Status: "active", RegistrationDate: asOf.AddDate(0, 0, -30)},
			{ID: "hh-3", FamilyName: "Cole", City: "Springfield", PriorityLevel: "critical", Status: "active", RegistrationDate: asOf.AddDate(0, 0, -20)},
			{ID: "hh-4", FamilyName: "Diaz", City: "Springfield", PriorityLevel: "high", Status: "inactive", RegistrationDate: asOf.AddDate(0, 0, -10)},
		},
		Centers: []CenterRow{
			{ID: "ctr-1", Status: "active"},
			{ID: "ctr-2", Status: "maintenance"},
		},
		Lines: []LineRow{
			{CenterID: "ctr-1", PackageID: "pkg-1", QuantityOnHand: 12, ReorderLevel: 5},
			{CenterID: "ctr-1", PackageID: "pkg-2", QuantityOnHand: 3, ReorderLevel: 5},
			{CenterID: "ctr-2", PackageID: "pkg-1", QuantityOnHand: 0, ReorderLevel: 5},
		},
		Records: []RecordRow{
			{HouseholdID: "hh-1", CenterID: "ctr-1", PackageID: "pkg-1", Quantity: 2, Status: "success", DistributedAt: asOf.AddDate(0, 0, -2)},
			{HouseholdID: "hh-1", CenterID: "ctr-1", PackageID: "pkg-1", Quantity: 1, Status: "success", DistributedAt: asOf.AddDate(0, 0, -35)},
			{HouseholdID: "hh-2", CenterID: "ctr-1", PackageID: "pkg-2", Quantity: 4, Status: "success", DistributedAt: asOf.AddDate(0, 0, -1)},
			{HouseholdID: "hh-3", CenterID: "ctr-1", PackageID: "pkg-1", Quantity: 9, Status: "failed", DistributedAt: asOf.AddDate(0, 0, -1)},
		},
	}
}

func TestDashboardCounters(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	model := NewReadModel(reportingSeed(asOf))

	snapshot, err := model.Dashboard(context.Background(), asOf)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if snapshot.ActiveHouseholds != 3 {
		t.Fatalf("active households: got %d, want 3", snapshot.ActiveHouseholds)
	}
	if snapshot.ActiveCenters != 1 {
		t.Fatalf("active centers: got %d, want 1", snapshot.ActiveCenters)
	}
	// Failed records never count as distributions.
	if snapshot.TotalDistributions != 3 {
		t.Fatalf("total distributions: got %d, want 3", snapshot.TotalDistributions)
	}
	if snapshot.DistributionsLast7Days != 2 {
		t.Fatalf("last 7 days: got %d, want 2", snapshot.DistributionsLast7Days)
	}
	if snapshot.LowStockLines != 2 {
		t.Fatalf("low stock lines: got %d, want 2", snapshot.LowStockLines)
	}
	// hh-3 is critical and its only record failed, hh-2 was served.
	if snapshot.CriticalUnserved != 1 {
		t.Fatalf("critical unserved: got %d, want 1", snapshot.CriticalUnserved)
	}
	if !snapshot.GeneratedAt.Equal(asOf) {
		t.Fatalf("generated at: got %v, want %v", snapshot.GeneratedAt, asOf)
	}
}

func TestDistributionStatisticsGroupsByCenterAndPackage(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	model := NewReadModel(reportingSeed(asOf))

	stats, err := model.DistributionStatistics(context.Background())
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(stats))
	}
	first := stats[0]
	if first.CenterID != "ctr-1" || first.PackageID != "pkg-1" {
		t.Fatalf("unexpected first pair: %+v", first)
	}
	if first.TotalDistributions != 2 || first.TotalUnits != 3 {
		t.Fatalf("pkg-1 totals: %+v", first)
	}
	if !first.LastDistributionAt.Equal(asOf.AddDate(0, 0, -2)) {
		t.Fatalf("pkg-1 last distribution: %v", first.LastDistributionAt)
	}
	second := stats[1]
	if second.PackageID != "pkg-2" || second.TotalDistributions != 1 || second.TotalUnits != 4 {
		t.Fatalf("pkg-2 totals: %+v", second)
	}
}

func TestPendingHouseholdsOrdering(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	model := NewReadModel(reportingSeed(asOf))

	pending, err := model.PendingHouseholds(context.Background(), 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	// hh-1 and hh-2 were served, hh-4 is inactive. hh-3's record failed,
	// so it is still waiting.
	if len(pending) != 1 || pending[0].HouseholdID != "hh-3" {
		t.Fatalf("unexpected pending set: %+v", pending)
	}
}

func TestPendingHouseholdsPriorityThenRegistrationDate(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	seed := Seed{
		Households: []HouseholdRow{
			{ID: "hh-a", PriorityLevel: "medium", Status: "active", RegistrationDate: asOf.AddDate(0, 0, -50)},
			{ID: "hh-b", PriorityLevel: "critical", Status: "active", RegistrationDate: asOf.AddDate(0, 0, -5)},
			{ID: "hh-c", PriorityLevel: "critical", Status: "active", RegistrationDate: asOf.AddDate(0, 0, -15)},
			{ID: "hh-d", PriorityLevel: "high", Status: "active", RegistrationDate: asOf.AddDate(0, 0, -1)},
		},
	}
	model := NewReadModel(seed)

	pending, err := model.PendingHouseholds(context.Background(), 3)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("limit not applied, got %d rows", len(pending))
	}
	want := []string{"hh-c", "hh-b", "hh-d"}
	for i, id := range want {
		if pending[i].HouseholdID != id {
			t.Fatalf("position %d: got %s, want %s (full: %+v)", i, pending[i].HouseholdID, id, pending)
		}
	}
}

func TestMonthlySummaryGroupsByMonthAndCenter(t *testing.T) {
	now := time.Now().UTC()
	// Mid-month anchors keep AddDate from spilling into a neighboring month.
	thisMonth := time.Date(now.Year(), now.Month(), 15, 12, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)
	seed := Seed{
		Records: []RecordRow{
			{HouseholdID: "hh-1", CenterID: "ctr-1", PackageID: "pkg-1", Quantity: 2, Status: "success", DistributedAt: thisMonth},
			{HouseholdID: "hh-2", CenterID: "ctr-1", PackageID: "pkg-1", Quantity: 3, Status: "success", DistributedAt: thisMonth},
			{HouseholdID: "hh-3", CenterID: "ctr-2", PackageID: "pkg-1", Quantity: 1, Status: "success", DistributedAt: lastMonth},
			{HouseholdID: "hh-4", CenterID: "ctr-2", PackageID: "pkg-1", Quantity: 9, Status: "failed", DistributedAt: lastMonth},
		},
	}
	model := NewReadModel(seed)

	summary, err := model.MonthlySummary(context.Background(), 6)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(summary), summary)
	}
	if summary[0].Month != thisMonth.Format("2006-01") || summary[0].CenterID != "ctr-1" {
		t.Fatalf("newest month first: %+v", summary[0])
	}
	if summary[0].DistributionCount != 2 || summary[0].TotalUnits != 5 {
		t.Fatalf("ctr-1 totals: %+v", summary[0])
	}
	if summary[1].CenterID != "ctr-2" || summary[1].DistributionCount != 1 || summary[1].TotalUnits != 1 {
		t.Fatalf("ctr-2 totals: %+v", summary[1])
	}
}

func TestInventoryStatusClassification(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	model := NewReadModel(reportingSeed(asOf))

	lines, err := model.InventoryStatus(context.Background())
	if err != nil {
		t.Fatalf("inventory status: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	want := map[string]string{
		"ctr-1/pkg-1": entities.StockStatusOK,
		"ctr-1/pkg-2": entities.StockStatusLow,
		"ctr-2/pkg-1": entities.StockStatusOut,
	}
	for _, line := range lines {
		key := line.CenterID + "/" + line.PackageID
		if line.StockStatus != want[key] {
			t.Fatalf("%s: got %s, want %s", key, line.StockStatus, want[key])
		}
	}
}
