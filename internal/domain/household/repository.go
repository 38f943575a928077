package household

import "context"

// ListFilter narrows household listings.
type ListFilter struct {
	ProjectID uint
	Status    Status
	Page      int
	PageSize  int
}

// Repository persists households together with their members
type Repository interface {
	// Create inserts the household and its members; ErrDuplicateRegistration on a taken registration number
	Create(ctx context.Context, h *Household) error

	// Update persists household fields guarded by the version. Members are not rewritten.
	Update(ctx context.Context, h *Household) error

	GetByID(ctx context.Context, id uint) (*Household, error)

	List(ctx context.Context, filter ListFilter) ([]*Household, int64, error)
}
