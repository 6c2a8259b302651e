package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DistributeRequest struct {
	HouseholdID string `json:"household_id"`
	PackageID   string `json:"package_id"`
	CenterID    string `json:"center_id"`
	StaffID     string `json:"staff_id,omitempty"`
	Quantity    int    `json:"quantity"`
}

type DistributeResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	RecordID string `json:"record_id,omitempty"`
}

type EligibilityCheckRequest struct {
	HouseholdID string `json:"household_id"`
	PackageID   string `json:"package_id"`
}

type EligibilityCheckResponse struct {
	Eligible      bool   `json:"eligible"`
	Reason        string `json:"reason"`
	DaysSinceLast *int   `json:"days_since_last,omitempty"`
	DaysRemaining *int   `json:"days_remaining,omitempty"`
}

type RestockRequest struct {
	CenterID  string `json:"center_id"`
	PackageID string `json:"package_id"`
	Quantity  int    `json:"quantity"`
}

type RestockResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type InventoryLineDTO struct {
	ID                  string `json:"id"`
	CenterID            string `json:"center_id"`
	PackageID           string `json:"package_id"`
	QuantityOnHand      int    `json:"quantity_on_hand"`
	ReorderLevel        int    `json:"reorder_level"`
	StockStatus         string `json:"stock_status"`
	LastRestockDate     string `json:"last_restock_date,omitempty"`
	LastRestockQuantity int    `json:"last_restock_quantity,omitempty"`
}

type InventoryListResponse struct {
	Inventory []InventoryLineDTO `json:"inventory"`
	Total     int                `json:"total"`
}

type DistributionRecordDTO struct {
	ID            string `json:"id"`
	HouseholdID   string `json:"household_id"`
	PackageID     string `json:"package_id"`
	CenterID      string `json:"center_id"`
	StaffID       string `json:"staff_id,omitempty"`
	Quantity      int    `json:"quantity"`
	DistributedAt string `json:"distributed_at"`
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
}

type RecordListResponse struct {
	Records []DistributionRecordDTO `json:"records"`
	Total   int                     `json:"total"`
}
