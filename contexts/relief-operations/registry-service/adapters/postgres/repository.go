package postgresadapter

import (
	"context"
	"errors"
	"time"

	"almoner/contexts/relief-operations/registry-service/domain/entities"
	domainerrors "almoner/contexts/relief-operations/registry-service/domain/errors"
	"almoner/contexts/relief-operations/registry-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// Repository implements ports.Repository on top of postgres.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Households

func (r *Repository) CreateHousehold(ctx context.Context, household entities.Household) error {
	model := householdToModel(household)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicatePhone
		}
		return err
	}
	return nil
}

func (r *Repository) GetHousehold(ctx context.Context, householdID string) (entities.Household, error) {
	var model householdModel
	err := r.db.WithContext(ctx).Where("id = ?", householdID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Household{}, domainerrors.ErrHouseholdNotFound
	}
	if err != nil {
		return entities.Household{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) UpdateHousehold(ctx context.Context, household entities.Household) error {
	model := householdToModel(household)
	result := r.db.WithContext(ctx).Model(&householdModel{}).Where("id = ?", household.ID).Updates(model.updateMap())
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrDuplicatePhone
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrHouseholdNotFound
	}
	return nil
}

func (r *Repository) DeleteHousehold(ctx context.Context, householdID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", householdID).Delete(&householdModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrHouseholdNotFound
	}
	return nil
}

func (r *Repository) ListHouseholds(ctx context.Context, filter ports.HouseholdFilter) ([]entities.Household, error) {
	query := r.db.WithContext(ctx).Model(&householdModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Priority != "" {
		query = query.Where("priority_level = ?", string(filter.Priority))
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	var models []householdModel
	if err := query.Order("family_name ASC").Offset(filter.Offset).Limit(filter.Limit).Find(&models).Error; err != nil {
		return nil, err
	}
	households := make([]entities.Household, 0, len(models))
	for _, model := range models {
		households = append(households, model.toEntity())
	}
	return households, nil
}

// Distribution centers

func (r *Repository) CreateCenter(ctx context.Context, center entities.DistributionCenter) error {
	model := centerToModel(center)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *Repository) GetCenter(ctx context.Context, centerID string) (entities.DistributionCenter, error) {
	var model centerModel
	err := r.db.WithContext(ctx).Where("id = ?", centerID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.DistributionCenter{}, domainerrors.ErrCenterNotFound
	}
	if err != nil {
		return entities.DistributionCenter{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) UpdateCenter(ctx context.Context, center entities.DistributionCenter) error {
	model := centerToModel(center)
	result := r.db.WithContext(ctx).Model(&centerModel{}).Where("id = ?", center.ID).Updates(model.updateMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCenterNotFound
	}
	return nil
}

func (r *Repository) DeleteCenter(ctx context.Context, centerID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", centerID).Delete(&centerModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCenterNotFound
	}
	return nil
}

func (r *Repository) ListCenters(ctx context.Context, filter ports.CenterFilter) ([]entities.DistributionCenter, error) {
	query := r.db.WithContext(ctx).Model(&centerModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	var models []centerModel
	if err := query.Order("name ASC").Offset(filter.Offset).Limit(filter.Limit).Find(&models).Error; err != nil {
		return nil, err
	}
	centers := make([]entities.DistributionCenter, 0, len(models))
	for _, model := range models {
		centers = append(centers, model.toEntity())
	}
	return centers, nil
}

// Aid packages

func (r *Repository) CreatePackage(ctx context.Context, pkg entities.AidPackage) error {
	model := packageToModel(pkg)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *Repository) GetPackage(ctx context.Context, packageID string) (entities.AidPackage, error) {
	var model packageModel
	err := r.db.WithContext(ctx).Where("id = ?", packageID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.AidPackage{}, domainerrors.ErrPackageNotFound
	}
	if err != nil {
		return entities.AidPackage{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) UpdatePackage(ctx context.Context, pkg entities.AidPackage) error {
	model := packageToModel(pkg)
	result := r.db.WithContext(ctx).Model(&packageModel{}).Where("id = ?", pkg.ID).Updates(model.updateMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPackageNotFound
	}
	return nil
}

func (r *Repository) DeletePackage(ctx context.Context, packageID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", packageID).Delete(&packageModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPackageNotFound
	}
	return nil
}

func (r *Repository) ListPackages(ctx context.Context, filter ports.PackageFilter) ([]entities.AidPackage, error) {
	query := r.db.WithContext(ctx).Model(&packageModel{})
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	var models []packageModel
	if err := query.Order("name ASC").Offset(filter.Offset).Limit(filter.Limit).Find(&models).Error; err != nil {
		return nil, err
	}
	packages := make([]entities.AidPackage, 0, len(models))
	for _, model := range models {
		packages = append(packages, model.toEntity())
	}
	return packages, nil
}

// Staff

func (r *Repository) CreateStaff(ctx context.Context, staff entities.StaffMember) error {
	model := staffToModel(staff)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *Repository) GetStaff(ctx context.Context, staffID string) (entities.StaffMember, error) {
	var model staffModel
	err := r.db.WithContext(ctx).Where("id = ?", staffID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.StaffMember{}, domainerrors.ErrStaffNotFound
	}
	if err != nil {
		return entities.StaffMember{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) UpdateStaff(ctx context.Context, staff entities.StaffMember) error {
	model := staffToModel(staff)
	result := r.db.WithContext(ctx).Model(&staffModel{}).Where("id = ?", staff.ID).Updates(model.updateMap())
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrDuplicateEmail
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrStaffNotFound
	}
	return nil
}

func (r *Repository) DeleteStaff(ctx context.Context, staffID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", staffID).Delete(&staffModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrStaffNotFound
	}
	return nil
}

func (r *Repository) ListStaff(ctx context.Context, filter ports.StaffFilter) ([]entities.StaffMember, error) {
	query := r.db.WithContext(ctx).Model(&staffModel{})
	if filter.CenterID != "" {
		query = query.Where("center_id = ?", filter.CenterID)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", string(filter.Role))
	}
	var models []staffModel
	if err := query.Order("last_name ASC, first_name ASC").Offset(filter.Offset).Limit(filter.Limit).Find(&models).Error; err != nil {
		return nil, err
	}
	members := make([]entities.StaffMember, 0, len(models))
	for _, model := range models {
		members = append(members, model.toEntity())
	}
	return members, nil
}

// Models

type householdModel struct {
	ID                 string     `gorm:"column:id;primaryKey"`
	FamilyName         string     `gorm:"column:family_name"`
	PrimaryContactName string     `gorm:"column:primary_contact_name"`
	PhoneNumber        string     `gorm:"column:phone_number;uniqueIndex"`
	Email              string     `gorm:"column:email"`
	Address            string     `gorm:"column:address"`
	City               string     `gorm:"column:city"`
	State              string     `gorm:"column:state"`
	ZipCode            string     `gorm:"column:zip_code"`
	FamilySize         int        `gorm:"column:family_size"`
	IncomeLevel        string     `gorm:"column:income_level"`
	PriorityLevel      string     `gorm:"column:priority_level"`
	RegistrationDate   time.Time  `gorm:"column:registration_date"`
	LastVerifiedDate   *time.Time `gorm:"column:last_verified_date"`
	Status             string     `gorm:"column:status"`
	Notes              string     `gorm:"column:notes"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (householdModel) TableName() string { return "households" }

func householdToModel(household entities.Household) householdModel {
	return householdModel{
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
		RegistrationDate:   household.RegistrationDate,
		LastVerifiedDate:   household.LastVerifiedDate,
		Status:             string(household.Status),
		Notes:              household.Notes,
		CreatedAt:          household.CreatedAt,
		UpdatedAt:          household.UpdatedAt,
	}
}

func (m householdModel) toEntity() entities.Household {
	return entities.Household{
		ID:                 m.ID,
		FamilyName:         m.FamilyName,
		PrimaryContactName: m.PrimaryContactName,
		PhoneNumber:        m.PhoneNumber,
		Email:              m.Email,
		Address:            m.Address,
		City:               m.City,
		State:              m.State,
		ZipCode:            m.ZipCode,
		FamilySize:         m.FamilySize,
		IncomeLevel:        entities.IncomeLevel(m.IncomeLevel),
		PriorityLevel:      entities.PriorityLevel(m.PriorityLevel),
		RegistrationDate:   m.RegistrationDate,
		LastVerifiedDate:   m.LastVerifiedDate,
		Status:             entities.HouseholdStatus(m.Status),
		Notes:              m.Notes,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// updateMap spells every column out so zero values overwrite stale data.
func (m householdModel) updateMap() map[string]any {
	return map[string]any{
		"family_name":          m.FamilyName,
		"primary_contact_name": m.PrimaryContactName,
		"phone_number":         m.PhoneNumber,
		"email":                m.Email,
		"address":              m.Address,
		"city":                 m.City,
		"state":                m.State,
		"zip_code":             m.ZipCode,
		"family_size":          m.FamilySize,
		"income_level":         m.IncomeLevel,
		"priority_level":       m.PriorityLevel,
		"registration_date":    m.RegistrationDate,
		"last_verified_date":   m.LastVerifiedDate,
		"status":               m.Status,
		"notes":                m.Notes,
		"updated_at":           m.UpdatedAt,
	}
}

type centerModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Address     string    `gorm:"column:address"`
	City        string    `gorm:"column:city"`
	State       string    `gorm:"column:state"`
	ZipCode     string    `gorm:"column:zip_code"`
	PhoneNumber string    `gorm:"column:phone_number"`
	Email       string    `gorm:"column:email"`
	Capacity    int       `gorm:"column:capacity"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (centerModel) TableName() string { return "distribution_centers" }

func centerToModel(center entities.DistributionCenter) centerModel {
	return centerModel{
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
		CreatedAt:   center.CreatedAt,
		UpdatedAt:   center.UpdatedAt,
	}
}

func (m centerModel) toEntity() entities.DistributionCenter {
	return entities.DistributionCenter{
		ID:          m.ID,
		Name:        m.Name,
		Address:     m.Address,
		City:        m.City,
		State:       m.State,
		ZipCode:     m.ZipCode,
		PhoneNumber: m.PhoneNumber,
		Email:       m.Email,
		Capacity:    m.Capacity,
		Status:      entities.CenterStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (m centerModel) updateMap() map[string]any {
	return map[string]any{
		"name":         m.Name,
		"address":      m.Address,
		"city":         m.City,
		"state":        m.State,
		"zip_code":     m.ZipCode,
		"phone_number": m.PhoneNumber,
		"email":        m.Email,
		"capacity":     m.Capacity,
		"status":       m.Status,
		"updated_at":   m.UpdatedAt,
	}
}

type packageModel struct {
	ID                 string    `gorm:"column:id;primaryKey"`
	Name               string    `gorm:"column:name"`
	Description        string    `gorm:"column:description"`
	Category           string    `gorm:"column:category"`
	UnitWeightKg       float64   `gorm:"column:unit_weight_kg"`
	EstimatedCost      float64   `gorm:"column:estimated_cost"`
	ValidityPeriodDays int       `gorm:"column:validity_period_days"`
	IsActive           bool      `gorm:"column:is_active"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (packageModel) TableName() string { return "aid_packages" }

func packageToModel(pkg entities.AidPackage) packageModel {
	return packageModel{
		ID:                 pkg.ID,
		Name:               pkg.Name,
		Description:        pkg.Description,
		Category:           string(pkg.Category),
		UnitWeightKg:       pkg.UnitWeightKg,
		EstimatedCost:      pkg.EstimatedCost,
		ValidityPeriodDays: pkg.ValidityPeriodDays,
		IsActive:           pkg.IsActive,
		CreatedAt:          pkg.CreatedAt,
		UpdatedAt:          pkg.UpdatedAt,
	}
}

func (m packageModel) toEntity() entities.AidPackage {
	return entities.AidPackage{
		ID:                 m.ID,
		Name:               m.Name,
		Description:        m.Description,
		Category:           entities.PackageCategory(m.Category),
		UnitWeightKg:       m.UnitWeightKg,
		EstimatedCost:      m.EstimatedCost,
		ValidityPeriodDays: m.ValidityPeriodDays,
		IsActive:           m.IsActive,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func (m packageModel) updateMap() map[string]any {
	return map[string]any{
		"name":                 m.Name,
		"description":          m.Description,
		"category":             m.Category,
		"unit_weight_kg":       m.UnitWeightKg,
		"estimated_cost":       m.EstimatedCost,
		"validity_period_days": m.ValidityPeriodDays,
		"is_active":            m.IsActive,
		"updated_at":           m.UpdatedAt,
	}
}

type staffModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	FirstName   string    `gorm:"column:first_name"`
	LastName    string    `gorm:"column:last_name"`
	Email       string    `gorm:"column:email;uniqueIndex"`
	PhoneNumber string    `gorm:"column:phone_number"`
	Role        string    `gorm:"column:role"`
	CenterID    string    `gorm:"column:center_id"`
	HireDate    time.Time `gorm:"column:hire_date"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (staffModel) TableName() string { return "staff_members" }

func staffToModel(staff entities.StaffMember) staffModel {
	return staffModel{
		ID:          staff.ID,
		FirstName:   staff.FirstName,
		LastName:    staff.LastName,
		Email:       staff.Email,
		PhoneNumber: staff.PhoneNumber,
		Role:        string(staff.Role),
		CenterID:    staff.CenterID,
		HireDate:    staff.HireDate,
		Status:      string(staff.Status),
		CreatedAt:   staff.CreatedAt,
		UpdatedAt:   staff.UpdatedAt,
	}
}

func (m staffModel) toEntity() entities.StaffMember {
	return entities.StaffMember{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Role:        entities.StaffRole(m.Role),
		CenterID:    m.CenterID,
		HireDate:    m.HireDate,
		Status:      entities.StaffStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (m staffModel) updateMap() map[string]any {
	return map[string]any{
		"first_name":   m.FirstName,
		"last_name":    m.LastName,
		"email":        m.Email,
		"phone_number": m.PhoneNumber,
		"role":         m.Role,
		"center_id":    m.CenterID,
		"hire_date":    m.HireDate,
		"status":       m.Status,
		"updated_at":   m.UpdatedAt,
	}
}
