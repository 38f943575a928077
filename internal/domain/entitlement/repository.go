package entitlement

import "context"

// Repository defines the interface for entitlement persistence operations.
// There is no delete: entitlements are only ever zeroed out.
type Repository interface {
	// Create inserts a new entitlement; ErrDuplicateEntitlement if the pair exists
	Create(ctx context.Context, e *Entitlement) error

	// Update persists a mutated entitlement, guarded by its version.
	// Returns ErrVersionConflict when another writer got there first.
	Update(ctx context.Context, e *Entitlement) error

	GetByID(ctx context.Context, id uint) (*Entitlement, error)

	// GetByIDForUpdate loads the row and holds a row lock for the rest of the transaction
	GetByIDForUpdate(ctx context.Context, id uint) (*Entitlement, error)

	GetByHouseholdAndType(ctx context.Context, householdID, assistanceTypeID uint) (*Entitlement, error)

	ListByHousehold(ctx context.Context, householdID uint) ([]*Entitlement, error)
}
