package errors

import "errors"

var (
	ErrHouseholdNotFound = errors.New("household not found")
	ErrCenterNotFound    = errors.New("distribution center not found")
	ErrPackageNotFound   = errors.New("aid package not found")
	ErrStaffNotFound     = errors.New("staff member not found")

	ErrDuplicatePhone = errors.New("a household with this phone number already exists")
	ErrDuplicateEmail = errors.New("a staff member with this email already exists")

	ErrInvalidInput = errors.New("invalid registry input")
)
