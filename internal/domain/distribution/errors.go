package distribution

import "errors"

var (
	ErrDistributionNotFound = errors.New("distribution not found")
	ErrRecordNotFound       = errors.New("distribution record not found")

	// ErrInvalidState is returned when an operation is attempted outside its lifecycle window
	ErrInvalidState = errors.New("invalid distribution state")

	// ErrDistributionClosed is returned for confirmations against a completed or cancelled distribution
	ErrDistributionClosed = errors.New("distribution is closed")

	// ErrAlreadyFinalized is returned when a record has already been confirmed
	ErrAlreadyFinalized = errors.New("distribution record already finalized")

	// ErrInvalidOutcome is returned when the requested outcome breaks the record invariants
	ErrInvalidOutcome = errors.New("invalid distribution outcome")

	ErrInvalidAmount = errors.New("invalid planned amount")

	// ErrNoEntitlement is returned when a planned household has no entitlement for the assistance type
	ErrNoEntitlement = errors.New("household has no entitlement for assistance type")

	ErrNameRequired = errors.New("distribution name is required")

	// ErrVersionConflict indicates an optimistic locking conflict
	ErrVersionConflict = errors.New("version conflict: distribution was modified")
)
