package project

import (
	"context"

	"github.com/shopspring/decimal"
)

// ListFilter narrows project listings.
type ListFilter struct {
	CountryCode string
	Status      Status
	Page        int
	PageSize    int
}

// Stats are the ledger-side counts and totals of one project.
type Stats struct {
	Households        int64
	Distributions     int64
	OpenDistributions int64
	Budget            decimal.Decimal
	Distributed       decimal.Decimal
}

// Repository persists projects
type Repository interface {
	Create(ctx context.Context, p *Project) error

	// Update persists details and status, guarded by the aggregate version
	Update(ctx context.Context, p *Project) error

	GetByID(ctx context.Context, id uint) (*Project, error)

	// GetByIDForShare reads under a shared row lock so that closing the project
	// waits for the caller's transaction
	GetByIDForShare(ctx context.Context, id uint) (*Project, error)

	// GetByIDForUpdate reads under an exclusive row lock held until the transaction ends
	GetByIDForUpdate(ctx context.Context, id uint) (*Project, error)

	List(ctx context.Context, filter ListFilter) ([]*Project, int64, error)

	// Stats counts households and distributions and sums the entitlements of the project
	Stats(ctx context.Context, id uint) (*Stats, error)
}
