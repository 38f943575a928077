package household

import "errors"

var (
	ErrHouseholdNotFound = errors.New("household not found")

	// ErrDuplicateRegistration is returned when the registration number is taken within the project
	ErrDuplicateRegistration = errors.New("registration number already exists in project")

	ErrInvalidState    = errors.New("invalid household state")
	ErrConsentRequired = errors.New("consent is required before activation")
	ErrMultipleHeads   = errors.New("household can only have one head")

	ErrRegistrationNumberRequired = errors.New("registration number is required")
	ErrInvalidMember              = errors.New("invalid household member")

	// ErrVersionConflict indicates an optimistic locking conflict
	ErrVersionConflict = errors.New("version conflict: household was modified")
)
