package errors

import (
	"errors"
	"fmt"
)

var (
	ErrHouseholdNotFound = errors.New("household not found")
	ErrPackageNotFound   = errors.New("aid package not found")
	ErrCenterNotFound    = errors.New("distribution center not found")
	ErrLineNotFound      = errors.New("no inventory line for this package at this center")
	ErrLineExists        = errors.New("inventory line already exists for this center and package")

	ErrInvalidDistributionInput = errors.New("invalid distribution input")
	ErrInvalidRestockInput      = errors.New("invalid restock input")

	// Class sentinels matched with errors.Is against the typed errors below.
	ErrInvalidState      = errors.New("entity is not in an operable state")
	ErrIneligible        = errors.New("household is not eligible for this package yet")
	ErrInsufficientStock = errors.New("insufficient inventory")

	ErrLockTimeout        = errors.New("timed out waiting for inventory line lock")
	ErrTransactionFailure = errors.New("distribution transaction failed")
)

// InvalidStateError names the entity that exists but cannot take part in a
// distribution, and its current status.
type InvalidStateError struct {
	Entity string // household, package, center
	ID     string
	Status string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s status is %s", e.Entity, e.ID, e.Status)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

type IneligibleError struct {
	DaysSinceLast int
	DaysRemaining int
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf(
		"household not eligible: last received %d days ago, must wait %d more days",
		e.DaysSinceLast, e.DaysRemaining,
	)
}

func (e *IneligibleError) Is(target error) bool {
	return target == ErrIneligible
}

type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient inventory: available %d, requested %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
