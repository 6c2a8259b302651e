package entities

import (
	"time"

	domainerrors "almoner/contexts/relief-operations/distribution-engine/domain/errors"
)

type HouseholdStatus string

const (
	HouseholdStatusActive    HouseholdStatus = "active"
	HouseholdStatusInactive  HouseholdStatus = "inactive"
	HouseholdStatusSuspended HouseholdStatus = "suspended"
)

type CenterStatus string

const (
	CenterStatusActive      CenterStatus = "active"
	CenterStatusInactive    CenterStatus = "inactive"
	CenterStatusMaintenance CenterStatus = "maintenance"
)

type RecordStatus string

// The schema carries failed and cancelled for imported historical data;
// the engine itself only ever writes success rows.
const (
	RecordStatusSuccess   RecordStatus = "success"
	RecordStatusFailed    RecordStatus = "failed"
	RecordStatusCancelled RecordStatus = "cancelled"
)

// HouseholdRef is the read-only projection of a household the engine needs.
// The registry module owns the full row.
type HouseholdRef struct {
	ID     string
	Status HouseholdStatus
}

type PackageRef struct {
	ID                 string
	IsActive           bool
	ValidityPeriodDays int
}

type CenterRef struct {
	ID     string
	Status CenterStatus
}

// InventoryLine is the contended resource: exactly one line exists per
// (center, package) pair and QuantityOnHand may only change inside a
// lock-guarded transaction.
type InventoryLine struct {
	ID                  string
	CenterID            string
	PackageID           string
	QuantityOnHand      int
	ReorderLevel        int
	LastRestockDate     *time.Time
	LastRestockQuantity int
	UpdatedAt           time.Time
}

// LowStock reports whether the line is at or below its reorder level.
func (l InventoryLine) LowStock() bool {
	return l.QuantityOnHand <= l.ReorderLevel
}

// Debit removes quantity from the line, refusing any decrement that would
// take it below zero. Callers must hold the line lock.
func (l *InventoryLine) Debit(quantity int) error {
	if l.QuantityOnHand < quantity {
		return &domainerrors.InsufficientStockError{
			Available: l.QuantityOnHand,
			Requested: quantity,
		}
	}
	l.QuantityOnHand -= quantity
	return nil
}

// Credit adds quantity and records the restock metadata.
func (l *InventoryLine) Credit(quantity int, restockedAt time.Time) {
	l.QuantityOnHand += quantity
	l.LastRestockDate = &restockedAt
	l.LastRestockQuantity = quantity
}

// DistributionRecord is the append-only audit log. Rows are never updated
// or deleted by the engine.
type DistributionRecord struct {
	ID            string
	HouseholdID   string
	PackageID     string
	CenterID      string
	StaffID       string // empty when the distribution is unattributed
	Quantity      int
	DistributedAt time.Time
	Status        RecordStatus
	FailureReason string
	Notes         string
}

type Eligibility struct {
	Eligible      bool
	Reason        string
	DaysSinceLast *int
	DaysRemaining *int
}
