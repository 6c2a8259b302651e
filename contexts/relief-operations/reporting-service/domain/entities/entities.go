package entities

import "time"

// DashboardSnapshot is the operational overview served on the reports
// dashboard. All counters are computed as of GeneratedAt.
type DashboardSnapshot struct {
	ActiveHouseholds       int
	TotalDistributions     int
	ActiveCenters          int
	LowStockLines          int
	CriticalUnserved       int
	DistributionsLast7Days int
	GeneratedAt            time.Time
}

// DistributionStatistic aggregates successful distributions per
// (center, package) pair. Pairs with no activity are omitted.
type DistributionStatistic struct {
	CenterID           string
	PackageID          string
	TotalDistributions int
	TotalUnits         int
	LastDistributionAt time.Time
}

// PendingHousehold is an active household that has never received a
// successful distribution.
type PendingHousehold struct {
	HouseholdID      string
	FamilyName       string
	City             string
	PriorityLevel    string
	RegistrationDate time.Time
}

// MonthlySummaryRow aggregates distributions per calendar month and center.
// Month is formatted YYYY-MM in UTC.
type MonthlySummaryRow struct {
	Month             string
	CenterID          string
	DistributionCount int
	TotalUnits        int
}

type InventoryStatusLine struct {
	CenterID       string
	PackageID      string
	QuantityOnHand int
	ReorderLevel   int
	StockStatus    string
}

const (
	StockStatusOut = "OUT_OF_STOCK"
	StockStatusLow = "LOW_STOCK"
	StockStatusOK  = "OK"
)

// StockStatusFor classifies a quantity against its reorder level.
func StockStatusFor(quantityOnHand, reorderLevel int) string {
	switch {
	case quantityOnHand <= 0:
		return StockStatusOut
	case quantityOnHand <= reorderLevel:
		return StockStatusLow
	default:
		return StockStatusOK
	}
}
