package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type HouseholdDTO struct {
	ID                 string  `json:"id"`
	FamilyName         string  `json:"family_name"`
	PrimaryContactName string  `json:"primary_contact_name"`
	PhoneNumber        string  `json:"phone_number"`
	Email              string  `json:"email,omitempty"`
	Address            string  `json:"address"`
	City               string  `json:"city"`
	State              string  `json:"state,omitempty"`
	ZipCode            string  `json:"zip_code,omitempty"`
	FamilySize         int     `json:"family_size"`
	IncomeLevel        string  `json:"income_level"`
	PriorityLevel      string  `json:"priority_level"`
	RegistrationDate   string  `json:"registration_date"`
	LastVerifiedDate   *string `json:"last_verified_date,omitempty"`
	Status             string  `json:"status"`
	Notes              string  `json:"notes,omitempty"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

type CreateHouseholdRequest struct {
	FamilyName         string `json:"family_name"`
	PrimaryContactName string `json:"primary_contact_name"`
	PhoneNumber        string `json:"phone_number"`
	Email              string `json:"email"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	ZipCode            string `json:"zip_code"`
	FamilySize         int    `json:"family_size"`
	IncomeLevel        string `json:"income_level"`
	PriorityLevel      string `json:"priority_level"`
	RegistrationDate   string `json:"registration_date,omitempty"`
	Notes              string `json:"notes"`
}

type UpdateHouseholdRequest struct {
	FamilyName         *string `json:"family_name"`
	PrimaryContactName *string `json:"primary_contact_name"`
	PhoneNumber        *string `json:"phone_number"`
	Email              *string `json:"email"`
	Address            *string `json:"address"`
	City               *string `json:"city"`
	State              *string `json:"state"`
	ZipCode            *string `json:"zip_code"`
	FamilySize         *int    `json:"family_size"`
	IncomeLevel        *string `json:"income_level"`
	PriorityLevel      *string `json:"priority_level"`
	LastVerifiedDate   *string `json:"last_verified_date"`
	Status             *string `json:"status"`
	Notes              *string `json:"notes"`
}

type HouseholdListResponse struct {
	Households []HouseholdDTO `json:"households"`
	Total      int            `json:"total"`
}

type CenterDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zip_code,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CreateCenterRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Capacity    int    `json:"capacity"`
}

type UpdateCenterRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zip_code"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	Capacity    *int    `json:"capacity"`
	Status      *string `json:"status"`
}

type CenterListResponse struct {
	Centers []CenterDTO `json:"centers"`
	Total   int         `json:"total"`
}

type PackageDTO struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description,omitempty"`
	Category           string  `json:"category"`
	UnitWeightKg       float64 `json:"unit_weight_kg"`
	EstimatedCost      float64 `json:"estimated_cost"`
	ValidityPeriodDays int     `json:"validity_period_days"`
	IsActive           bool    `json:"is_active"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

type CreatePackageRequest struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	UnitWeightKg       float64 `json:"unit_weight_kg"`
	EstimatedCost      float64 `json:"estimated_cost"`
	ValidityPeriodDays int     `json:"validity_period_days"`
}

type UpdatePackageRequest struct {
	Name               *string  `json:"name"`
	Description        *string  `json:"description"`
	Category           *string  `json:"category"`
	UnitWeightKg       *float64 `json:"unit_weight_kg"`
	EstimatedCost      *float64 `json:"estimated_cost"`
	ValidityPeriodDays *int     `json:"validity_period_days"`
	IsActive           *bool    `json:"is_active"`
}

type PackageListResponse struct {
	Packages []PackageDTO `json:"packages"`
	Total    int          `json:"total"`
}

type StaffDTO struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Role        string `json:"role"`
	CenterID    string `json:"center_id,omitempty"`
	HireDate    string `json:"hire_date"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CreateStaffRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	CenterID    string `json:"center_id"`
	HireDate    string `json:"hire_date,omitempty"`
}

type UpdateStaffRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Role        *string `json:"role"`
	CenterID    *string `json:"center_id"`
	Status      *string `json:"status"`
}

type StaffListResponse struct {
	Staff []StaffDTO `json:"staff"`
	Total int        `json:"total"`
}
