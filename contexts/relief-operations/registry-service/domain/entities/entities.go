package entities

import "time"

type HouseholdStatus string

const (
	HouseholdStatusActive    HouseholdStatus = "active"
	HouseholdStatusInactive  HouseholdStatus = "inactive"
	HouseholdStatusSuspended HouseholdStatus = "suspended"
)

type IncomeLevel string

const (
	IncomeLevelNone     IncomeLevel = "no_income"
	IncomeLevelVeryLow  IncomeLevel = "very_low"
	IncomeLevelLow      IncomeLevel = "low"
	IncomeLevelModerate IncomeLevel = "moderate"
)

type PriorityLevel string

const (
	PriorityCritical PriorityLevel = "critical"
	PriorityHigh     PriorityLevel = "high"
	PriorityMedium   PriorityLevel = "medium"
	PriorityLow      PriorityLevel = "low"
)

type Household struct {
	ID                 string
	FamilyName         string
	PrimaryContactName string
	PhoneNumber        string // unique
	Email              string
	Address            string
	City               string
	State              string
	ZipCode            string
	FamilySize         int
	IncomeLevel        IncomeLevel
	PriorityLevel      PriorityLevel
	RegistrationDate   time.Time
	LastVerifiedDate   *time.Time
	Status             HouseholdStatus
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type CenterStatus string

const (
	CenterStatusActive      CenterStatus = "active"
	CenterStatusInactive    CenterStatus = "inactive"
	CenterStatusMaintenance CenterStatus = "maintenance"
)

type DistributionCenter struct {
	ID          string
	Name        string
	Address     string
	City        string
	State       string
	ZipCode     string
	PhoneNumber string
	Email       string
	Capacity    int
	Status      CenterStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PackageCategory string

const (
	CategoryFood      PackageCategory = "food"
	CategoryMedical   PackageCategory = "medical"
	CategoryShelter   PackageCategory = "shelter"
	CategoryHygiene   PackageCategory = "hygiene"
	CategoryEducation PackageCategory = "education"
	CategoryEmergency PackageCategory = "emergency"
)

type AidPackage struct {
	ID                 string
	Name               string
	Description        string
	Category           PackageCategory
	UnitWeightKg       float64
	EstimatedCost      float64
	ValidityPeriodDays int
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type StaffRole string

const (
	RoleAdmin     StaffRole = "admin"
	RoleManager   StaffRole = "manager"
	RoleWorker    StaffRole = "worker"
	RoleVolunteer StaffRole = "volunteer"
)

type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "active"
	StaffStatusInactive StaffStatus = "inactive"
	StaffStatusOnLeave  StaffStatus = "on_leave"
)

type StaffMember struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string // unique
	PhoneNumber string
	Role        StaffRole
	CenterID    string // empty when unassigned
	HireDate    time.Time
	Status      StaffStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
