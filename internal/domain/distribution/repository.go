package distribution

import (
	"context"

	"github.com/shopspring/decimal"
)

// ListFilter narrows distribution listings.
type ListFilter struct {
	ProjectID uint
	Status    Status
	Page      int
	PageSize  int
}

// Repository persists distributions
type Repository interface {
	Create(ctx context.Context, d *Distribution) error

	// Update persists a status change, guarded by the aggregate version
	Update(ctx context.Context, d *Distribution) error

	GetByID(ctx context.Context, id uint) (*Distribution, error)

	// GetByIDForShare reads under a shared row lock held until the transaction ends,
	// so a concurrent status change waits for it
	GetByIDForShare(ctx context.Context, id uint) (*Distribution, error)

	List(ctx context.Context, filter ListFilter) ([]*Distribution, int64, error)
}

// RecordRepository persists distribution records
type RecordRepository interface {
	// CreateIfAbsent inserts records, leaving any whose natural key already exists
	// untouched, and returns the stored IDs in input order.
	CreateIfAbsent(ctx context.Context, records []*Record) ([]uint, error)

	GetByID(ctx context.Context, id uint) (*Record, error)

	ListByDistribution(ctx context.Context, distributionID uint) ([]*Record, error)

	// ConfirmIfOpen writes the confirmed outcome only while the stored record is
	// still pending and its distribution is neither completed nor cancelled.
	// It reports whether a row was written.
	ConfirmIfOpen(ctx context.Context, r *Record) (bool, error)

	// Aggregate computes planned/actual totals and status counts for one distribution
	Aggregate(ctx context.Context, distributionID uint) (*Aggregate, error)

	// AggregateByProject is Aggregate across every distribution of a project
	AggregateByProject(ctx context.Context, projectID uint) (*Aggregate, error)
}

// StatusTotals groups records of one status.
type StatusTotals struct {
	Status  RecordStatus
	Count   int64
	Planned decimal.Decimal
	Actual  decimal.Decimal
}

// Aggregate is the per-status breakdown of a distribution's records.
type Aggregate struct {
	ByStatus []StatusTotals
}

// Totals folds the breakdown into overall planned and actual sums and the
// record count per status. Statuses without records are left out.
func (a *Aggregate) Totals() (planned, actual decimal.Decimal, byStatus map[RecordStatus]int64, count int64) {
	planned, actual = decimal.Zero, decimal.Zero
	byStatus = make(map[RecordStatus]int64)
	if a == nil {
		return planned, actual, byStatus, 0
	}
	for _, st := range a.ByStatus {
		if st.Count == 0 {
			continue
		}
		byStatus[st.Status] += st.Count
		count += st.Count
		planned = planned.Add(st.Planned)
		actual = actual.Add(st.Actual)
	}
	return planned, actual, byStatus, count
}
