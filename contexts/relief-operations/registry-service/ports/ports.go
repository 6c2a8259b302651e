package ports

import (
	"context"
	"time"

	"almoner/contexts/relief-operations/registry-service/domain/entities"
)

type HouseholdFilter struct {
	Status   entities.HouseholdStatus
	Priority entities.PriorityLevel
	City     string
	Offset   int
	Limit    int
}

type CenterFilter struct {
	Status entities.CenterStatus
	City   string
	Offset int
	Limit  int
}

type PackageFilter struct {
	Category   entities.PackageCategory
	ActiveOnly bool
	Offset     int
	Limit      int
}

type StaffFilter struct {
	CenterID string
	Role     entities.StaffRole
	Offset   int
	Limit    int
}

type Repository interface {
	CreateHousehold(ctx context.Context, household entities.Household) error
	GetHousehold(ctx context.Context, householdID string) (entities.Household, error)
	UpdateHousehold(ctx context.Context, household entities.Household) error
	DeleteHousehold(ctx context.Context, householdID string) error
	ListHouseholds(ctx context.Context, filter HouseholdFilter) ([]entities.Household, error)

	CreateCenter(ctx context.Context, center entities.DistributionCenter) error
	GetCenter(ctx context.Context, centerID string) (entities.DistributionCenter, error)
	UpdateCenter(ctx context.Context, center entities.DistributionCenter) error
	DeleteCenter(ctx context.Context, centerID string) error
	ListCenters(ctx context.Context, filter CenterFilter) ([]entities.DistributionCenter, error)

	CreatePackage(ctx context.Context, pkg entities.AidPackage) error
	GetPackage(ctx context.Context, packageID string) (entities.AidPackage, error)
	UpdatePackage(ctx context.Context, pkg entities.AidPackage) error
	DeletePackage(ctx context.Context, packageID string) error
	ListPackages(ctx context.Context, filter PackageFilter) ([]entities.AidPackage, error)

	CreateStaff(ctx context.Context, staff entities.StaffMember) error
	GetStaff(ctx context.Context, staffID string) (entities.StaffMember, error)
	UpdateStaff(ctx context.Context, staff entities.StaffMember) error
	DeleteStaff(ctx context.Context, staffID string) error
	ListStaff(ctx context.Context, filter StaffFilter) ([]entities.StaffMember, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
