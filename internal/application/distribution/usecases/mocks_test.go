package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/reliefops/cva/internal/domain/distribution"
)

type mockDistributionRepository struct {
	CreateFunc          func(ctx context.Context, d *distribution.Distribution) error
	UpdateFunc          func(ctx context.Context, d *distribution.Distribution) error
	GetByIDFunc         func(ctx context.Context, id uint) (*distribution.Distribution, error)
	GetByIDForShareFunc func(ctx context.Context, id uint) (*distribution.Distribution, error)
	ListFunc            func(ctx context.Context, filter distribution.ListFilter) ([]*distribution.Distribution, int64, error)
}

func (m *mockDistributionRepository) Create(ctx context.Context, d *distribution.Distribution) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, d)
	}
	return nil
}

func (m *mockDistributionRepository) Update(ctx context.Context, d *distribution.Distribution) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, d)
	}
	return nil
}

func (m *mockDistributionRepository) GetByID(ctx context.Context, id uint) (*distribution.Distribution, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, distribution.ErrDistributionNotFound
}

func (m *mockDistributionRepository) GetByIDForShare(ctx context.Context, id uint) (*distribution.Distribution, error) {
	if m.GetByIDForShareFunc != nil {
		return m.GetByIDForShareFunc(ctx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *mockDistributionRepository) List(ctx context.Context, filter distribution.ListFilter) ([]*distribution.Distribution, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockRecordRepository struct {
	CreateIfAbsentFunc     func(ctx context.Context, records []*distribution.Record) ([]uint, error)
	GetByIDFunc            func(ctx context.Context, id uint) (*distribution.Record, error)
	ListByDistributionFunc func(ctx context.Context, distributionID uint) ([]*distribution.Record, error)
	ConfirmIfOpenFunc      func(ctx context.Context, r *distribution.Record) (bool, error)
	AggregateFunc          func(ctx context.Context, distributionID uint) (*distribution.Aggregate, error)
}

func (m *mockRecordRepository) CreateIfAbsent(ctx context.Context, records []*distribution.Record) ([]uint, error) {
	if m.CreateIfAbsentFunc != nil {
		return m.CreateIfAbsentFunc(ctx, records)
	}
	return nil, nil
}

func (m *mockRecordRepository) GetByID(ctx context.Context, id uint) (*distribution.Record, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, distribution.ErrRecordNotFound
}

func (m *mockRecordRepository) ListByDistribution(ctx context.Context, distributionID uint) ([]*distribution.Record, error) {
	if m.ListByDistributionFunc != nil {
		return m.ListByDistributionFunc(ctx, distributionID)
	}
	return nil, nil
}

func (m *mockRecordRepository) ConfirmIfOpen(ctx context.Context, r *distribution.Record) (bool, error) {
	if m.ConfirmIfOpenFunc != nil {
		return m.ConfirmIfOpenFunc(ctx, r)
	}
	return true, nil
}

func (m *mockRecordRepository) Aggregate(ctx context.Context, distributionID uint) (*distribution.Aggregate, error) {
	if m.AggregateFunc != nil {
		return m.AggregateFunc(ctx, distributionID)
	}
	return &distribution.Aggregate{}, nil
}

func (m *mockRecordRepository) AggregateByProject(ctx context.Context, projectID uint) (*distribution.Aggregate, error) {
	return &distribution.Aggregate{}, nil
}

type mockLedger struct {
	ApplyFunc func(ctx context.Context, entitlementID uint, amount decimal.Decimal) (decimal.Decimal, error)
	calls     int
}

func (m *mockLedger) ApplyDistribution(ctx context.Context, entitlementID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	m.calls++
	if m.ApplyFunc != nil {
		return m.ApplyFunc(ctx, entitlementID, amount)
	}
	return decimal.Zero, nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
