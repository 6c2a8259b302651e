package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"almoner/contexts/relief-operations/registry-service/domain/entities"
	domainerrors "almoner/contexts/relief-operations/registry-service/domain/errors"
	"almoner/contexts/relief-operations/registry-service/ports"
)

// Service is plain CRUD over the registry entities. The distribution engine
// reads these rows through its own reference projections; nothing here
// touches inventory or the audit log.
type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type CreateHouseholdInput struct {
	FamilyName         string
	PrimaryContactName string
	PhoneNumber        string
	Email              string
	Address            string
	City               string
	State              string
	ZipCode            string
	FamilySize         int
	IncomeLevel        entities.IncomeLevel
	PriorityLevel      entities.PriorityLevel
	RegistrationDate   time.Time
	Notes              string
}

type UpdateHouseholdInput struct {
	FamilyName         *string
	PrimaryContactName *string
	PhoneNumber        *string
	Email              *string
	Address            *string
	City               *string
	State              *string
	ZipCode            *string
	FamilySize         *int
	IncomeLevel        *entities.IncomeLevel
	PriorityLevel      *entities.PriorityLevel
	LastVerifiedDate   *time.Time
	Status             *entities.HouseholdStatus
	Notes              *string
}

func (s Service) CreateHousehold(ctx context.Context, input CreateHouseholdInput) (entities.Household, error) {
	logger := ResolveLogger(s.Logger)
	input.FamilyName = strings.TrimSpace(input.FamilyName)
	input.PrimaryContactName = strings.TrimSpace(input.PrimaryContactName)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	if input.FamilyName == "" || input.PrimaryContactName == "" || input.PhoneNumber == "" ||
		strings.TrimSpace(input.Address) == "" || strings.TrimSpace(input.City) == "" ||
		input.FamilySize < 1 {
		return entities.Household{}, domainerrors.ErrInvalidInput
	}
	if input.IncomeLevel == "" {
		return entities.Household{}, domainerrors.ErrInvalidInput
	}
	if input.PriorityLevel == "" {
		input.PriorityLevel = entities.PriorityMedium
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Household{}, err
	}
	now := s.Clock.Now().UTC()
	registration := input.RegistrationDate
	if registration.IsZero() {
		registration = now
	}
	household := entities.Household{
		ID:                 id,
		FamilyName:         input.FamilyName,
		PrimaryContactName: input.PrimaryContactName,
		PhoneNumber:        input.PhoneNumber,
		Email:              strings.TrimSpace(input.Email),
		Address:            strings.TrimSpace(input.Address),
		City:               strings.TrimSpace(input.City),
		State:              strings.TrimSpace(input.State),
		ZipCode:            strings.TrimSpace(input.ZipCode),
		FamilySize:         input.FamilySize,
		IncomeLevel:        input.IncomeLevel,
		PriorityLevel:      input.PriorityLevel,
		RegistrationDate:   registration,
		Status:             entities.HouseholdStatusActive,
		Notes:              input.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Repo.CreateHousehold(ctx, household); err != nil {
		return entities.Household{}, err
	}
	logger.Info("household registered",
		"event", "registry_household_created",
		"module", "relief-operations/registry-service",
		"layer", "application",
		"household_id", household.ID,
		"city", household.City,
		"priority", string(household.PriorityLevel),
	)
	return household, nil
}

func (s Service) GetHousehold(ctx context.Context, householdID string) (entities.Household, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return entities.Household{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.GetHousehold(ctx, householdID)
}

func (s Service) UpdateHousehold(ctx context.Context, householdID string, input UpdateHouseholdInput) (entities.Household, error) {
	household, err := s.GetHousehold(ctx, householdID)
	if err != nil {
		return entities.Household{}, err
	}
	if input.FamilyName != nil {
		household.FamilyName = strings.TrimSpace(*input.FamilyName)
	}
	if input.PrimaryContactName != nil {
		household.PrimaryContactName = strings.TrimSpace(*input.PrimaryContactName)
	}
	if input.PhoneNumber != nil {
		household.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.Email != nil {
		household.Email = strings.TrimSpace(*input.Email)
	}
	if input.Address != nil {
		household.Address = strings.TrimSpace(*input.Address)
	}
	if input.City != nil {
		household.City = strings.TrimSpace(*input.City)
	}
	if input.State != nil {
		household.State = strings.TrimSpace(*input.State)
	}
	if input.ZipCode != nil {
		household.ZipCode = strings.TrimSpace(*input.ZipCode)
	}
	if input.FamilySize != nil {
		if *input.FamilySize < 1 {
			return entities.Household{}, domainerrors.ErrInvalidInput
		}
		household.FamilySize = *input.FamilySize
	}
	if input.IncomeLevel != nil {
		household.IncomeLevel = *input.IncomeLevel
	}
	if input.PriorityLevel != nil {
		household.PriorityLevel = *input.PriorityLevel
	}
	if input.LastVerifiedDate != nil {
		household.LastVerifiedDate = input.LastVerifiedDate
	}
	if input.Status != nil {
		household.Status = *input.Status
	}
	if input.Notes != nil {
		household.Notes = *input.Notes
	}
	if household.FamilyName == "" || household.PhoneNumber == "" {
		return entities.Household{}, domainerrors.ErrInvalidInput
	}
	household.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Repo.UpdateHousehold(ctx, household); err != nil {
		return entities.Household{}, err
	}
	return household, nil
}

func (s Service) DeleteHousehold(ctx context.Context, householdID string) error {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		return domainerrors.ErrInvalidInput
	}
	return s.Repo.DeleteHousehold(ctx, householdID)
}

func (s Service) ListHouseholds(ctx context.Context, filter ports.HouseholdFilter) ([]entities.Household, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.Repo.ListHouseholds(ctx, filter)
}

type CreateCenterInput struct {
	Name        string
	Address     string
	City        string
	State       string
	ZipCode     string
	PhoneNumber string
	Email       string
	Capacity    int
}

type UpdateCenterInput struct {
	Name        *string
	Address     *string
	City        *string
	State       *string
	ZipCode     *string
	PhoneNumber *string
	Email       *string
	Capacity    *int
	Status      *entities.CenterStatus
}

func (s Service) CreateCenter(ctx context.Context, input CreateCenterInput) (entities.DistributionCenter, error) {
	logger := ResolveLogger(s.Logger)
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || strings.TrimSpace(input.Address) == "" || strings.TrimSpace(input.City) == "" {
		return entities.DistributionCenter{}, domainerrors.ErrInvalidInput
	}
	if input.Capacity <= 0 {
		input.Capacity = 1000
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.DistributionCenter{}, err
	}
	now := s.Clock.Now().UTC()
	center := entities.DistributionCenter{
		ID:          id,
		Name:        input.Name,
		Address:     strings.TrimSpace(input.Address),
		City:        strings.TrimSpace(input.City),
		State:       strings.TrimSpace(input.State),
		ZipCode:     strings.TrimSpace(input.ZipCode),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Email:       strings.TrimSpace(input.Email),
		Capacity:    input.Capacity,
		Status:      entities.CenterStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateCenter(ctx, center); err != nil {
		return entities.DistributionCenter{}, err
	}
	logger.Info("distribution center created",
		"event", "registry_center_created",
		"module", "relief-operations/registry-service",
		"layer", "application",
		"center_id", center.ID,
		"city", center.City,
	)
	return center, nil
}

func (s Service) GetCenter(ctx context.Context, centerID string) (entities.DistributionCenter, error) {
	centerID = strings.TrimSpace(centerID)
	if centerID == "" {
		return entities.DistributionCenter{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.GetCenter(ctx, centerID)
}

func (s Service) UpdateCenter(ctx context.Context, centerID string, input UpdateCenterInput) (entities.DistributionCenter, error) {
	center, err := s.GetCenter(ctx, centerID)
	if err != nil {
		return entities.DistributionCenter{}, err
	}
	if input.Name != nil {
		center.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		center.Address = strings.TrimSpace(*input.Address)
	}
	if input.City != nil {
		center.City = strings.TrimSpace(*input.City)
	}
	if input.State != nil {
		center.State = strings.TrimSpace(*input.State)
	}
	if input.ZipCode != nil {
		center.ZipCode = strings.TrimSpace(*input.ZipCode)
	}
	if input.PhoneNumber != nil {
		center.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.Email != nil {
		center.Email = strings.TrimSpace(*input.Email)
	}
	if input.Capacity != nil {
		if *input.Capacity <= 0 {
			return entities.DistributionCenter{}, domainerrors.ErrInvalidInput
		}
		center.Capacity = *input.Capacity
	}
	if input.Status != nil {
		center.Status = *input.Status
	}
	if center.Name == "" {
		return entities.DistributionCenter{}, domainerrors.ErrInvalidInput
	}
	center.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Repo.UpdateCenter(ctx, center); err != nil {
		return entities.DistributionCenter{}, err
	}
	return center, nil
}

func (s Service) DeleteCenter(ctx context.Context, centerID string) error {
	centerID = strings.TrimSpace(centerID)
	if centerID == "" {
		return domainerrors.ErrInvalidInput
	}
	return s.Repo.DeleteCenter(ctx, centerID)
}

func (s Service) ListCenters(ctx context.Context, filter ports.CenterFilter) ([]entities.DistributionCenter, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.Repo.ListCenters(ctx, filter)
}

type CreatePackageInput struct {
	Name               string
	Description        string
	Category           entities.PackageCategory
	UnitWeightKg       float64
	EstimatedCost      float64
	ValidityPeriodDays int
}

type UpdatePackageInput struct {
	Name               *string
	Description        *string
	Category           *entities.PackageCategory
	UnitWeightKg       *float64
	EstimatedCost      *float64
	ValidityPeriodDays *int
	IsActive           *bool
}

func (s Service) CreatePackage(ctx context.Context, input CreatePackageInput) (entities.AidPackage, error) {
	logger := ResolveLogger(s.Logger)
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || input.Category == "" || input.ValidityPeriodDays < 0 {
		return entities.AidPackage{}, domainerrors.ErrInvalidInput
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.AidPackage{}, err
	}
	now := s.Clock.Now().UTC()
	pkg := entities.AidPackage{
		ID:                 id,
		Name:               input.Name,
		Description:        input.Description,
		Category:           input.Category,
		UnitWeightKg:       input.UnitWeightKg,
		EstimatedCost:      input.EstimatedCost,
		ValidityPeriodDays: input.ValidityPeriodDays,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Repo.CreatePackage(ctx, pkg); err != nil {
		return entities.AidPackage{}, err
	}
	logger.Info("aid package created",
		"event", "registry_package_created",
		"module", "relief-operations/registry-service",
		"layer", "application",
		"package_id", pkg.ID,
		"category", string(pkg.Category),
		"validity_period_days", pkg.ValidityPeriodDays,
	)
	return pkg, nil
}

func (s Service) GetPackage(ctx context.Context, packageID string) (entities.AidPackage, error) {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return entities.AidPackage{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.GetPackage(ctx, packageID)
}

func (s Service) UpdatePackage(ctx context.Context, packageID string, input UpdatePackageInput) (entities.AidPackage, error) {
	pkg, err := s.GetPackage(ctx, packageID)
	if err != nil {
		return entities.AidPackage{}, err
	}
	if input.Name != nil {
		pkg.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		pkg.Description = *input.Description
	}
	if input.Category != nil {
		pkg.Category = *input.Category
	}
	if input.UnitWeightKg != nil {
		pkg.UnitWeightKg = *input.UnitWeightKg
	}
	if input.EstimatedCost != nil {
		pkg.EstimatedCost = *input.EstimatedCost
	}
	if input.ValidityPeriodDays != nil {
		if *input.ValidityPeriodDays < 0 {
			return entities.AidPackage{}, domainerrors.ErrInvalidInput
		}
		pkg.ValidityPeriodDays = *input.ValidityPeriodDays
	}
	if input.IsActive != nil {
		pkg.IsActive = *input.IsActive
	}
	if pkg.Name == "" {
		return entities.AidPackage{}, domainerrors.ErrInvalidInput
	}
	pkg.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Repo.UpdatePackage(ctx, pkg); err != nil {
		return entities.AidPackage{}, err
	}
	return pkg, nil
}

func (s Service) DeletePackage(ctx context.Context, packageID string) error {
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return domainerrors.ErrInvalidInput
	}
	return s.Repo.DeletePackage(ctx, packageID)
}

func (s Service) ListPackages(ctx context.Context, filter ports.PackageFilter) ([]entities.AidPackage, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.Repo.ListPackages(ctx, filter)
}

type CreateStaffInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Role        entities.StaffRole
	CenterID    string
	HireDate    time.Time
}

type UpdateStaffInput struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
	Role        *entities.StaffRole
	CenterID    *string
	Status      *entities.StaffStatus
}

func (s Service) CreateStaff(ctx context.Context, input CreateStaffInput) (entities.StaffMember, error) {
	logger := ResolveLogger(s.Logger)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	if input.FirstName == "" || input.LastName == "" || input.Email == "" {
		return entities.StaffMember{}, domainerrors.ErrInvalidInput
	}
	if input.Role == "" {
		input.Role = entities.RoleWorker
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.StaffMember{}, err
	}
	now := s.Clock.Now().UTC()
	hireDate := input.HireDate
	if hireDate.IsZero() {
		hireDate = now
	}
	staff := entities.StaffMember{
		ID:          id,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Role:        input.Role,
		CenterID:    strings.TrimSpace(input.CenterID),
		HireDate:    hireDate,
		Status:      entities.StaffStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateStaff(ctx, staff); err != nil {
		return entities.StaffMember{}, err
	}
	logger.Info("staff member created",
		"event", "registry_staff_created",
		"module", "relief-operations/registry-service",
		"layer", "application",
		"staff_id", staff.ID,
		"role", string(staff.Role),
	)
	return staff, nil
}

func (s Service) GetStaff(ctx context.Context, staffID string) (entities.StaffMember, error) {
	staffID = strings.TrimSpace(staffID)
	if staffID == "" {
		return entities.StaffMember{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.GetStaff(ctx, staffID)
}

func (s Service) UpdateStaff(ctx context.Context, staffID string, input UpdateStaffInput) (entities.StaffMember, error) {
	staff, err := s.GetStaff(ctx, staffID)
	if err != nil {
		return entities.StaffMember{}, err
	}
	if input.FirstName != nil {
		staff.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		staff.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		staff.Email = strings.TrimSpace(*input.Email)
	}
	if input.PhoneNumber != nil {
		staff.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.Role != nil {
		staff.Role = *input.Role
	}
	if input.CenterID != nil {
		staff.CenterID = strings.TrimSpace(*input.CenterID)
	}
	if input.Status != nil {
		staff.Status = *input.Status
	}
	if staff.FirstName == "" || staff.LastName == "" || staff.Email == "" {
		return entities.StaffMember{}, domainerrors.ErrInvalidInput
	}
	staff.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Repo.UpdateStaff(ctx, staff); err != nil {
		return entities.StaffMember{}, err
	}
	return staff, nil
}

func (s Service) DeleteStaff(ctx context.Context, staffID string) error {
	staffID = strings.TrimSpace(staffID)
	if staffID == "" {
		return domainerrors.ErrInvalidInput
	}
	return s.Repo.DeleteStaff(ctx, staffID)
}

func (s Service) ListStaff(ctx context.Context, filter ports.StaffFilter) ([]entities.StaffMember, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	return s.Repo.ListStaff(ctx, filter)
}
