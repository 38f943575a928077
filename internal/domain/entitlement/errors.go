package entitlement

import "errors"

var (
	// ErrEntitlementNotFound is returned when an entitlement is not found
	ErrEntitlementNotFound = errors.New("entitlement not found")

	// ErrDuplicateEntitlement is returned when the household already has an entitlement for the assistance type
	ErrDuplicateEntitlement = errors.New("entitlement already exists")

	// ErrInvalidAmount is returned for negative programme totals and non-positive draws
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientBalance is returned when a draw exceeds the remaining balance
	ErrInsufficientBalance = errors.New("insufficient balance")

	ErrHouseholdIDRequired      = errors.New("household ID is required")
	ErrAssistanceTypeIDRequired = errors.New("assistance type ID is required")

	// ErrVersionConflict indicates an optimistic locking conflict
	ErrVersionConflict = errors.New("version conflict: entitlement was modified")
)
