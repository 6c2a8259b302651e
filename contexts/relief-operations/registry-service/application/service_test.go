package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"almoner/contexts/relief-operations/registry-service/adapters/memory"
	"almoner/contexts/relief-operations/registry-service/domain/entities"
	domainerrors "almoner/contexts/relief-operations/registry-service/domain/errors"
	"almoner/contexts/relief-operations/registry-service/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type seqIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGen) NewID(_ context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%03d", g.n), nil
}

func newService(now time.Time) (Service, *memory.Store) {
	store := memory.NewStore()
	return Service{
		Repo:  store,
		Clock: fixedClock{now: now},
		IDGen: &seqIDGen{},
	}, store
}

func validHousehold() CreateHouseholdInput {
	return CreateHouseholdInput{
		FamilyName:         "Okafor",
		PrimaryContactName: "Adaeze Okafor",
		PhoneNumber:        "+1-555-0100",
		Address:            "14 Mill Road",
		City:               "Springfield",
		FamilySize:         4,
		IncomeLevel:        entities.IncomeLevelLow,
	}
}

func TestCreateHouseholdAppliesDefaults(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	household, err := svc.CreateHousehold(context.Background(), validHousehold())
	if err != nil {
		t.Fatalf("create household: %v", err)
	}
	if household.ID != "id-001" {
		t.Fatalf("expected generated id, got %q", household.ID)
	}
	if household.PriorityLevel != entities.PriorityMedium {
		t.Fatalf("expected medium priority default, got %q", household.PriorityLevel)
	}
	if household.Status != entities.HouseholdStatusActive {
		t.Fatalf("expected active status, got %q", household.Status)
	}
	if !household.RegistrationDate.Equal(now) {
		t.Fatalf("expected registration date to default to now, got %v", household.RegistrationDate)
	}
	if !household.CreatedAt.Equal(now) || !household.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps %v / %v", household.CreatedAt, household.UpdatedAt)
	}
}

func TestCreateHouseholdValidation(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	cases := []struct {
		name   string
		mutate func(*CreateHouseholdInput)
	}{
		{"blank family name", func(in *CreateHouseholdInput) { in.FamilyName = "   " }},
		{"blank contact", func(in *CreateHouseholdInput) { in.PrimaryContactName = "" }},
		{"blank phone", func(in *CreateHouseholdInput) { in.PhoneNumber = "" }},
		{"blank city", func(in *CreateHouseholdInput) { in.City = " " }},
		{"zero family size", func(in *CreateHouseholdInput) { in.FamilySize = 0 }},
		{"missing income level", func(in *CreateHouseholdInput) { in.IncomeLevel = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validHousehold()
			tc.mutate(&input)
			if _, err := svc.CreateHousehold(context.Background(), input); !errors.Is(err, domainerrors.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreateHouseholdRejectsDuplicatePhone(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	if _, err := svc.CreateHousehold(context.Background(), validHousehold()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	second := validHousehold()
	second.FamilyName = "Nwosu"
	if _, err := svc.CreateHousehold(context.Background(), second); !errors.Is(err, domainerrors.ErrDuplicatePhone) {
		t.Fatalf("expected ErrDuplicatePhone, got %v", err)
	}
}

func TestUpdateHouseholdIsPartial(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	created, err := svc.CreateHousehold(context.Background(), validHousehold())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	svc.Clock = fixedClock{now: now.Add(48 * time.Hour)}
	size := 6
	priority := entities.PriorityCritical
	updated, err := svc.UpdateHousehold(context.Background(), created.ID, UpdateHouseholdInput{
		FamilySize:    &size,
		PriorityLevel: &priority,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FamilySize != 6 || updated.PriorityLevel != entities.PriorityCritical {
		t.Fatalf("patched fields not applied: %+v", updated)
	}
	if updated.FamilyName != created.FamilyName || updated.PhoneNumber != created.PhoneNumber {
		t.Fatalf("untouched fields must survive a partial update: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("expected UpdatedAt to advance, got %v", updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("CreatedAt must not change on update")
	}
}

func TestUpdateHouseholdRejectsBlankedRequiredFields(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	created, err := svc.CreateHousehold(context.Background(), validHousehold())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	blank := "  "
	if _, err := svc.UpdateHousehold(context.Background(), created.ID, UpdateHouseholdInput{FamilyName: &blank}); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blanked family name, got %v", err)
	}
}

func TestUpdateHouseholdUnknownID(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	name := "Okafor"
	if _, err := svc.UpdateHousehold(context.Background(), "hh-missing", UpdateHouseholdInput{FamilyName: &name}); !errors.Is(err, domainerrors.ErrHouseholdNotFound) {
		t.Fatalf("expected ErrHouseholdNotFound, got %v", err)
	}
}

func TestDeleteHouseholdThenGet(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	created, err := svc.CreateHousehold(context.Background(), validHousehold())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeleteHousehold(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetHousehold(context.Background(), created.ID); !errors.Is(err, domainerrors.ErrHouseholdNotFound) {
		t.Fatalf("expected ErrHouseholdNotFound after delete, got %v", err)
	}
}

func TestListHouseholdsFiltersAndPaginates(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	seed := []struct {
		family string
		phone  string
		city   string
	}{
		{"Adams", "p-1", "Springfield"},
		{"Baker", "p-2", "Riverton"},
		{"Cole", "p-3", "Springfield"},
	}
	for _, row := range seed {
		input := validHousehold()
		input.FamilyName = row.family
		input.PhoneNumber = row.phone
		input.City = row.city
		if _, err := svc.CreateHousehold(context.Background(), input); err != nil {
			t.Fatalf("seed %s: %v", row.family, err)
		}
	}

	springfield, err := svc.ListHouseholds(context.Background(), ports.HouseholdFilter{City: "Springfield"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(springfield) != 2 || springfield[0].FamilyName != "Adams" || springfield[1].FamilyName != "Cole" {
		t.Fatalf("unexpected city filter result: %+v", springfield)
	}

	page, err := svc.ListHouseholds(context.Background(), ports.HouseholdFilter{Offset: 1, Limit: 1})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 1 || page[0].FamilyName != "Baker" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestCreateCenterDefaultsCapacity(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	center, err := svc.CreateCenter(context.Background(), CreateCenterInput{
		Name:    "North Depot",
		Address: "2 Dock Street",
		City:    "Springfield",
	})
	if err != nil {
		t.Fatalf("create center: %v", err)
	}
	if center.Capacity != 1000 {
		t.Fatalf("expected default capacity 1000, got %d", center.Capacity)
	}
	if center.Status != entities.CenterStatusActive {
		t.Fatalf("expected active center, got %q", center.Status)
	}
}

func TestUpdateCenterRejectsNonPositiveCapacity(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	center, err := svc.CreateCenter(context.Background(), CreateCenterInput{
		Name:    "North Depot",
		Address: "2 Dock Street",
		City:    "Springfield",
	})
	if err != nil {
		t.Fatalf("create center: %v", err)
	}
	zero := 0
	if _, err := svc.UpdateCenter(context.Background(), center.ID, UpdateCenterInput{Capacity: &zero}); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreatePackageStartsActive(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	pkg, err := svc.CreatePackage(context.Background(), CreatePackageInput{
		Name:               "Family Food Box",
		Category:           entities.CategoryFood,
		ValidityPeriodDays: 30,
	})
	if err != nil {
		t.Fatalf("create package: %v", err)
	}
	if !pkg.IsActive {
		t.Fatal("new packages start active")
	}
	if pkg.ValidityPeriodDays != 30 {
		t.Fatalf("unexpected validity period %d", pkg.ValidityPeriodDays)
	}

	if _, err := svc.CreatePackage(context.Background(), CreatePackageInput{Name: "x", Category: ""}); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing category, got %v", err)
	}
	if _, err := svc.CreatePackage(context.Background(), CreatePackageInput{
		Name:               "Negative",
		Category:           entities.CategoryFood,
		ValidityPeriodDays: -1,
	}); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative validity, got %v", err)
	}
}

func TestUpdatePackageCanDeactivate(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	pkg, err := svc.CreatePackage(context.Background(), CreatePackageInput{
		Name:               "Hygiene Kit",
		Category:           entities.CategoryHygiene,
		ValidityPeriodDays: 14,
	})
	if err != nil {
		t.Fatalf("create package: %v", err)
	}
	inactive := false
	updated, err := svc.UpdatePackage(context.Background(), pkg.ID, UpdatePackageInput{IsActive: &inactive})
	if err != nil {
		t.Fatalf("update package: %v", err)
	}
	if updated.IsActive {
		t.Fatal("expected package to be deactivated")
	}
}

func TestCreateStaffDefaultsAndDuplicateEmail(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	staff, err := svc.CreateStaff(context.Background(), CreateStaffInput{
		FirstName: "Maya",
		LastName:  "Lindqvist",
		Email:     "maya@example.org",
	})
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}
	if staff.Role != entities.RoleWorker {
		t.Fatalf("expected worker role default, got %q", staff.Role)
	}
	if staff.Status != entities.StaffStatusActive {
		t.Fatalf("expected active staff, got %q", staff.Status)
	}
	if !staff.HireDate.Equal(now) {
		t.Fatalf("expected hire date default of now, got %v", staff.HireDate)
	}

	if _, err := svc.CreateStaff(context.Background(), CreateStaffInput{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "maya@example.org",
	}); !errors.Is(err, domainerrors.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestGetWithBlankIDIsInvalidInput(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	if _, err := svc.GetHousehold(context.Background(), "  "); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("household: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.GetCenter(context.Background(), ""); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("center: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.GetPackage(context.Background(), ""); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("package: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.GetStaff(context.Background(), ""); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("staff: expected ErrInvalidInput, got %v", err)
	}
}
