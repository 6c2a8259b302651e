package http

type DashboardResponse struct {
	ActiveHouseholds       int    `json:"active_households"`
	TotalDistributions     int    `json:"total_distributions"`
	ActiveCenters          int    `json:"active_centers"`
	LowStockLines          int    `json:"low_stock_lines"`
	CriticalUnserved       int    `json:"critical_households_unserved"`
	DistributionsLast7Days int    `json:"distributions_last_7_days"`
	GeneratedAt            string `json:"generated_at"`
}

type DistributionStatisticDTO struct {
	CenterID           string `json:"center_id"`
	PackageID          string `json:"package_id"`
	TotalDistributions int    `json:"total_distributions"`
	TotalUnits         int    `json:"total_units"`
	LastDistributionAt string `json:"last_distribution_at"`
}

type DistributionStatisticsResponse struct {
	Statistics []DistributionStatisticDTO `json:"statistics"`
	Total      int                        `json:"total"`
}

type PendingHouseholdDTO struct {
	HouseholdID      string `json:"household_id"`
	FamilyName       string `json:"family_name"`
	City             string `json:"city"`
	PriorityLevel    string `json:"priority_level"`
	RegistrationDate string `json:"registration_date"`
}

type PendingHouseholdsResponse struct {
	Households []PendingHouseholdDTO `json:"households"`
	Total      int                   `json:"total"`
}

type MonthlySummaryRowDTO struct {
	Month             string `json:"month"`
	CenterID          string `json:"center_id"`
	DistributionCount int    `json:"distribution_count"`
	TotalUnits        int    `json:"total_units"`
}

type MonthlySummaryResponse struct {
	Summary []MonthlySummaryRowDTO `json:"summary"`
	Total   int                    `json:"total"`
}

type InventoryStatusLineDTO struct {
	CenterID       string `json:"center_id"`
	PackageID      string `json:"package_id"`
	QuantityOnHand int    `json:"quantity_on_hand"`
	ReorderLevel   int    `json:"reorder_level"`
	StockStatus    string `json:"stock_status"`
}

type InventoryStatusResponse struct {
	Lines []InventoryStatusLineDTO `json:"lines"`
	Total int                      `json:"total"`
}
