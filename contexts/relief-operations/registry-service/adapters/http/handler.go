package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"almoner/contexts/relief-operations/registry-service/application"
	"almoner/contexts/relief-operations/registry-service/domain/entities"
	domainerrors "almoner/contexts/relief-operations/registry-service/domain/errors"
	"almoner/contexts/relief-operations/registry-service/ports"
	httptransport "almoner/contexts/relief-operations/registry-service/transport/http"
)

// Handler maps transport DTOs onto the registry application service.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, domainerrors.ErrInvalidInput
	}
	return parsed.UTC(), nil
}

func formatTimestamp(value time.Time) string {
	return value.UTC().Format(time.RFC3339)
}

// Households

func (h Handler) CreateHouseholdHandler(
	ctx context.Context,
	req httptransport.CreateHouseholdRequest,
) (httptransport.HouseholdDTO, error) {
	registration, err := parseTimestamp(req.RegistrationDate)
	if err != nil {
		return httptransport.HouseholdDTO{}, err
	}
	household, err := h.Service.CreateHousehold(ctx, application.CreateHouseholdInput{
		FamilyName:         req.FamilyName,
		PrimaryContactName: req.PrimaryContactName,
		PhoneNumber:        req.PhoneNumber,
		Email:              req.Email,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		ZipCode:            req.ZipCode,
		FamilySize:         req.FamilySize,
		IncomeLevel:        entities.IncomeLevel(req.IncomeLevel),
		PriorityLevel:      entities.PriorityLevel(req.PriorityLevel),
		RegistrationDate:   registration,
		Notes:              req.Notes,
	})
	if err != nil {
		return httptransport.HouseholdDTO{}, err
	}
	return householdDTO(household), nil
}

func (h Handler) GetHouseholdHandler(ctx context.Context, householdID string) (httptransport.HouseholdDTO, error) {
	household, err := h.Service.GetHousehold(ctx, householdID)
	if err != nil {
		return httptransport.HouseholdDTO{}, err
	}
	return householdDTO(household), nil
}

func (h Handler) UpdateHouseholdHandler(
	ctx context.Context,
	householdID string,
	req httptransport.UpdateHouseholdRequest,
) (httptransport.HouseholdDTO, error) {
	input := application.UpdateHouseholdInput{
		FamilyName:         req.FamilyName,
		PrimaryContactName: req.PrimaryContactName,
		PhoneNumber:        req.PhoneNumber,
		Email:              req.Email,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		ZipCode:            req.ZipCode,
		FamilySize:         req.FamilySize,
		Notes:              req.Notes,
	}
	if req.IncomeLevel != nil {
		level := entities.IncomeLevel(*req.IncomeLevel)
		input.IncomeLevel = &level
	}
	if req.PriorityLevel != nil {
		priority := entities.PriorityLevel(*req.PriorityLevel)
		input.PriorityLevel = &priority
	}
	if req.Status != nil {
		status := entities.HouseholdStatus(*req.Status)
		input.Status = &status
	}
	if req.LastVerifiedDate != nil {
		verified, err := parseTimestamp(*req.LastVerifiedDate)
		if err != nil {
			return httptransport.HouseholdDTO{}, err
		}
		input.LastVerifiedDate = &verified
	}
	household, err := h.Service.UpdateHousehold(ctx, householdID, input)
	if err != nil {
		return httptransport.HouseholdDTO{}, err
	}
	return householdDTO(household), nil
}

func (h Handler) DeleteHouseholdHandler(ctx context.Context, householdID string) error {
	return h.Service.DeleteHousehold(ctx, householdID)
}

func (h Handler) ListHouseholdsHandler(
	ctx context.Context,
	filter ports.HouseholdFilter,
) (httptransport.HouseholdListResponse, error) {
	households, err := h.Service.ListHouseholds(ctx, filter)
	if err != nil {
		return httptransport.HouseholdListResponse{}, err
	}
	dtos := make([]httptransport.HouseholdDTO, 0, len(households))
	for _, household := range households {
		dtos = append(dtos, householdDTO(household))
	}
	return httptransport.HouseholdListResponse{Households: dtos, Total: len(dtos)}, nil
}

// Distribution centers

func (h Handler) CreateCenterHandler(
	ctx context.Context,
	req httptransport.CreateCenterRequest,
) (httptransport.CenterDTO, error) {
	center, err := h.Service.CreateCenter(ctx, application.CreateCenterInput{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return httptransport.CenterDTO{}, err
	}
	return centerDTO(center), nil
}

func (h Handler) GetCenterHandler(ctx context.Context, centerID string) (httptransport.CenterDTO, error) {
	center, err := h.Service.GetCenter(ctx, centerID)
	if err != nil {
		return httptransport.CenterDTO{}, err
	}
	return centerDTO(center), nil
}

func (h Handler) UpdateCenterHandler(
	ctx context.Context,
	centerID string,
	req httptransport.UpdateCenterRequest,
) (httptransport.CenterDTO, error) {
	input := application.UpdateCenterInput{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Capacity:    req.Capacity,
	}
	if req.Status != nil {
		status := entities.CenterStatus(*req.Status)
		input.Status = &status
	}
	center, err := h.Service.UpdateCenter(ctx, centerID, input)
	if err != nil {
		return httptransport.CenterDTO{}, err
	}
	return centerDTO(center), nil
}

func (h Handler) DeleteCenterHandler(ctx context.Context, centerID string) error {
	return h.Service.DeleteCenter(ctx, centerID)
}

func (h Handler) ListCentersHandler(
	ctx context.Context,
	filter ports.CenterFilter,
) (httptransport.CenterListResponse, error) {
	centers, err := h.Service.ListCenters(ctx, filter)
	if err != nil {
		return httptransport.CenterListResponse{}, err
	}
	dtos := make([]httptransport.CenterDTO, 0, len(centers))
	for _, center := range centers {
		dtos = append(dtos, centerDTO(center))
	}
	return httptransport.CenterListResponse{Centers: dtos, Total: len(dtos)}, nil
}

// Aid packages

func (h Handler) CreatePackageHandler(
	ctx context.Context,
	req httptransport.CreatePackageRequest,
) (httptransport.PackageDTO, error) {
	pkg, err := h.Service.CreatePackage(ctx, application.CreatePackageInput{
		Name:               req.Name,
		Description:        req.Description,
		Category:           entities.PackageCategory(req.Category),
		UnitWeightKg:       req.UnitWeightKg,
		EstimatedCost:      req.EstimatedCost,
		ValidityPeriodDays: req.ValidityPeriodDays,
	})
	if err != nil {
		return httptransport.PackageDTO{}, err
	}
	return packageDTO(pkg), nil
}

func (h Handler) GetPackageHandler(ctx context.Context, packageID string) (httptransport.PackageDTO, error) {
	pkg, err := h.Service.GetPackage(ctx, packageID)
	if err != nil {
		return httptransport.PackageDTO{}, err
	}
	return packageDTO(pkg), nil
}

func (h Handler) UpdatePackageHandler(
	ctx context.Context,
	packageID string,
	req httptransport.UpdatePackageRequest,
) (httptransport.PackageDTO, error) {
	input := application.UpdatePackageInput{
		Name:               req.Name,
		Description:        req.Description,
		UnitWeightKg:       req.UnitWeightKg,
		EstimatedCost:      req.EstimatedCost,
		ValidityPeriodDays: req.ValidityPeriodDays,
		IsActive:           req.IsActive,
	}
	if req.Category != nil {
		category := entities.PackageCategory(*req.Category)
		input.Category = &category
	}
	pkg, err := h.Service.UpdatePackage(ctx, packageID, input)
	if err != nil {
		return httptransport.PackageDTO{}, err
	}
	return packageDTO(pkg), nil
}

func (h Handler) DeletePackageHandler(ctx context.Context, packageID string) error {
	return h.Service.DeletePackage(ctx, packageID)
}

func (h Handler) ListPackagesHandler(
	ctx context.Context,
	filter ports.PackageFilter,
) (httptransport.PackageListResponse, error) {
	packages, err := h.Service.ListPackages(ctx, filter)
	if err != nil {
		return httptransport.PackageListResponse{}, err
	}
	dtos := make([]httptransport.PackageDTO, 0, len(packages))
	for _, pkg := range packages {
		dtos = append(dtos, packageDTO(pkg))
	}
	return httptransport.PackageListResponse{Packages: dtos, Total: len(dtos)}, nil
}

// Staff

func (h Handler) CreateStaffHandler(
	ctx context.Context,
	req httptransport.CreateStaffRequest,
) (httptransport.StaffDTO, error) {
	hireDate, err := parseTimestamp(req.HireDate)
	if err != nil {
		return httptransport.StaffDTO{}, err
	}
	staff, err := h.Service.CreateStaff(ctx, application.CreateStaffInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        entities.StaffRole(req.Role),
		CenterID:    req.CenterID,
		HireDate:    hireDate,
	})
	if err != nil {
		return httptransport.StaffDTO{}, err
	}
	return staffDTO(staff), nil
}

func (h Handler) GetStaffHandler(ctx context.Context, staffID string) (httptransport.StaffDTO, error) {
	staff, err := h.Service.GetStaff(ctx, staffID)
	if err != nil {
		return httptransport.StaffDTO{}, err
	}
	return staffDTO(staff), nil
}

func (h Handler) UpdateStaffHandler(
	ctx context.Context,
	staffID string,
	req httptransport.UpdateStaffRequest,
) (httptransport.StaffDTO, error) {
	input := application.UpdateStaffInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		CenterID:    req.CenterID,
	}
	if req.Role != nil {
		role := entities.StaffRole(*req.Role)
		input.Role = &role
	}
	if req.Status != nil {
		status := entities.StaffStatus(*req.Status)
		input.Status = &status
	}
	staff, err := h.Service.UpdateStaff(ctx, staffID, input)
	if err != nil {
		return httptransport.StaffDTO{}, err
	}
	return staffDTO(staff), nil
}

func (h Handler) DeleteStaffHandler(ctx context.Context, staffID string) error {
	return h.Service.DeleteStaff(ctx, staffID)
}

func (h Handler) ListStaffHandler(
	ctx context.Context,
	filter ports.StaffFilter,
) (httptransport.StaffListResponse, error) {
	members, err := h.Service.ListStaff(ctx, filter)
	if err != nil {
		return httptransport.StaffListResponse{}, err
	}
	dtos := make([]httptransport.StaffDTO, 0, len(members))
	for _, staff := range members {
		dtos = append(dtos, staffDTO(staff))
	}
	return httptransport.StaffListResponse{Staff: dtos, Total: len(dtos)}, nil
}

// DTO conversion

func householdDTO(household entities.Household) httptransport.HouseholdDTO {
	dto := httptransport.HouseholdDTO{
		ID:                 household.ID,
		FamilyName:         household.FamilyName,
		PrimaryContactName: household.PrimaryContactName,
		PhoneNumber:        household.PhoneNumber,
		Email:              household.Email,
		Address:            household.Address,
		City:               household.City,
		State:              household.State,
		ZipCode:            household.ZipCode,
		FamilySize:         household.FamilySize,
		IncomeLevel:        string(household.IncomeLevel),
		PriorityLevel:      string(household.PriorityLevel),
		RegistrationDate:   formatTimestamp(household.RegistrationDate),
		Status:             string(household.Status),
		Notes:              household.Notes,
		CreatedAt:          formatTimestamp(household.CreatedAt),
		UpdatedAt:          formatTimestamp(household.UpdatedAt),
	}
	if household.LastVerifiedDate != nil {
		verified := formatTimestamp(*household.LastVerifiedDate)
		dto.LastVerifiedDate = &verified
	}
	return dto
}

func centerDTO(center entities.DistributionCenter) httptransport.CenterDTO {
	return httptransport.CenterDTO{
		ID:          center.ID,
		Name:        center.Name,
		Address:     center.Address,
		City:        center.City,
		State:       center.State,
		ZipCode:     center.ZipCode,
		PhoneNumber: center.PhoneNumber,
		Email:       center.Email,
		Capacity:    center.Capacity,
		Status:      string(center.Status),
		CreatedAt:   formatTimestamp(center.CreatedAt),
		UpdatedAt:   formatTimestamp(center.UpdatedAt),
	}
}

func packageDTO(pkg entities.AidPackage) httptransport.PackageDTO {
	return httptransport.PackageDTO{
		ID:                 pkg.ID,
		Name:               pkg.Name,
		Description:        pkg.Description,
		Category:           string(pkg.Category),
		UnitWeightKg:       pkg.UnitWeightKg,
		EstimatedCost:      pkg.EstimatedCost,
		ValidityPeriodDays: pkg.ValidityPeriodDays,
		IsActive:           pkg.IsActive,
		CreatedAt:          formatTimestamp(pkg.CreatedAt),
		UpdatedAt:          formatTimestamp(pkg.UpdatedAt),
	}
}

func staffDTO(staff entities.StaffMember) httptransport.StaffDTO {
	return httptransport.StaffDTO{
		ID:          staff.ID,
		FirstName:   staff.FirstName,
		LastName:    staff.LastName,
		Email:       staff.Email,
		PhoneNumber: staff.PhoneNumber,
		Role:        string(staff.Role),
		CenterID:    staff.CenterID,
		HireDate:    formatTimestamp(staff.HireDate),
		Status:      string(staff.Status),
		CreatedAt:   formatTimestamp(staff.CreatedAt),
		UpdatedAt:   formatTimestamp(staff.UpdatedAt),
	}
}
