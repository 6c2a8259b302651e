package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"almoner/contexts/relief-operations/registry-service/domain/entities"
	domainerrors "almoner/contexts/relief-operations/registry-service/domain/errors"
	"almoner/contexts/relief-operations/registry-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory registry repository used by tests.
type Store struct {
	mu sync.RWMutex

	households map[string]entities.Household
	centers    map[string]entities.DistributionCenter
	packages   map[string]entities.AidPackage
	staff      map[string]entities.StaffMember
}

func NewStore() *Store {
	return &Store{
		households: make(map[string]entities.Household),
		centers:    make(map[string]entities.DistributionCenter),
		packages:   make(map[string]entities.AidPackage),
		staff:      make(map[string]entities.StaffMember),
	}
}

func (s *Store) CreateHousehold(_ context.Context, household entities.Household) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.households {
		if existing.PhoneNumber == household.PhoneNumber {
			return domainerrors.ErrDuplicatePhone
		}
	}
	s.households[household.ID] = household
	return nil
}

func (s *Store) GetHousehold(_ context.Context, householdID string) (entities.Household, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	household, ok := s.households[householdID]
	if !ok {
		return entities.Household{}, domainerrors.ErrHouseholdNotFound
	}
	return household, nil
}

func (s *Store) UpdateHousehold(_ context.Context, household entities.Household) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.households[household.ID]; !ok {
		return domainerrors.ErrHouseholdNotFound
	}
	for id, existing := range s.households {
		if id != household.ID && existing.PhoneNumber == household.PhoneNumber {
			return domainerrors.ErrDuplicatePhone
		}
	}
	s.households[household.ID] = household
	return nil
}

func (s *Store) DeleteHousehold(_ context.Context, householdID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.households[householdID]; !ok {
		return domainerrors.ErrHouseholdNotFound
	}
	delete(s.households, householdID)
	return nil
}

func (s *Store) ListHouseholds(_ context.Context, filter ports.HouseholdFilter) ([]entities.Household, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	households := make([]entities.Household, 0, len(s.households))
	for _, household := range s.households {
		if filter.Status != "" && household.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && household.PriorityLevel != filter.Priority {
			continue
		}
		if filter.City != "" && household.City != filter.City {
			continue
		}
		households = append(households, household)
	}
	sort.Slice(households, func(i, j int) bool {
		return households[i].FamilyName < households[j].FamilyName
	})
	return paginate(households, filter.Offset, filter.Limit), nil
}

func (s *Store) CreateCenter(_ context.Context, center entities.DistributionCenter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centers[center.ID] = center
	return nil
}

func (s *Store) GetCenter(_ context.Context, centerID string) (entities.DistributionCenter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	center, ok := s.centers[centerID]
	if !ok {
		return entities.DistributionCenter{}, domainerrors.ErrCenterNotFound
	}
	return center, nil
}

func (s *Store) UpdateCenter(_ context.Context, center entities.DistributionCenter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.centers[center.ID]; !ok {
		return domainerrors.ErrCenterNotFound
	}
	s.centers[center.ID] = center
	return nil
}

func (s *Store) DeleteCenter(_ context.Context, centerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.centers[centerID]; !ok {
		return domainerrors.ErrCenterNotFound
	}
	delete(s.centers, centerID)
	return nil
}

func (s *Store) ListCenters(_ context.Context, filter ports.CenterFilter) ([]entities.DistributionCenter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	centers := make([]entities.DistributionCenter, 0, len(s.centers))
	for _, center := range s.centers {
		if filter.Status != "" && center.Status != filter.Status {
			continue
		}
		if filter.City != "" && center.City != filter.City {
			continue
		}
		centers = append(centers, center)
	}
	sort.Slice(centers, func(i, j int) bool {
		return centers[i].Name < centers[j].Name
	})
	return paginate(centers, filter.Offset, filter.Limit), nil
}

func (s *Store) CreatePackage(_ context.Context, pkg entities.AidPackage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages[pkg.ID] = pkg
	return nil
}

func (s *Store) GetPackage(_ context.Context, packageID string) (entities.AidPackage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pkg, ok := s.packages[packageID]
	if !ok {
		return entities.AidPackage{}, domainerrors.ErrPackageNotFound
	}
	return pkg, nil
}

func (s *Store) UpdatePackage(_ context.Context, pkg entities.AidPackage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.packages[pkg.ID]; !ok {
		return domainerrors.ErrPackageNotFound
	}
	s.packages[pkg.ID] = pkg
	return nil
}

func (s *Store) DeletePackage(_ context.Context, packageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.packages[packageID]; !ok {
		return domainerrors.ErrPackageNotFound
	}
	delete(s.packages, packageID)
	return nil
}

func (s *Store) ListPackages(_ context.Context, filter ports.PackageFilter) ([]entities.AidPackage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	packages := make([]entities.AidPackage, 0, len(s.packages))
	for _, pkg := range s.packages {
		if filter.Category != "" && pkg.Category != filter.Category {
			continue
		}
		if filter.ActiveOnly && !pkg.IsActive {
			continue
		}
		packages = append(packages, pkg)
	}
	sort.Slice(packages, func(i, j int) bool {
		return packages[i].Name < packages[j].Name
	})
	return paginate(packages, filter.Offset, filter.Limit), nil
}

func (s *Store) CreateStaff(_ context.Context, staff entities.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.staff {
		if existing.Email == staff.Email {
			return domainerrors.ErrDuplicateEmail
		}
	}
	s.staff[staff.ID] = staff
	return nil
}

func (s *Store) GetStaff(_ context.Context, staffID string) (entities.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	staff, ok := s.staff[staffID]
	if !ok {
		return entities.StaffMember{}, domainerrors.ErrStaffNotFound
	}
	return staff, nil
}

func (s *Store) UpdateStaff(_ context.Context, staff entities.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[staff.ID]; !ok {
		return domainerrors.ErrStaffNotFound
	}
	for id, existing := range s.staff {
		if id != staff.ID && existing.Email == staff.Email {
			return domainerrors.ErrDuplicateEmail
		}
	}
	s.staff[staff.ID] = staff
	return nil
}

func (s *Store) DeleteStaff(_ context.Context, staffID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[staffID]; !ok {
		return domainerrors.ErrStaffNotFound
	}
	delete(s.staff, staffID)
	return nil
}

func (s *Store) ListStaff(_ context.Context, filter ports.StaffFilter) ([]entities.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members := make([]entities.StaffMember, 0, len(s.staff))
	for _, staff := range s.staff {
		if filter.CenterID != "" && staff.CenterID != filter.CenterID {
			continue
		}
		if filter.Role != "" && staff.Role != filter.Role {
			continue
		}
		members = append(members, staff)
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].LastName == members[j].LastName {
			return members[i].FirstName < members[j].FirstName
		}
		return members[i].LastName < members[j].LastName
	})
	return paginate(members, filter.Offset, filter.Limit), nil
}

// Clock / IDGenerator

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
