package distribution

import (
	"context"

	"github.com/reliefops/cva/internal/application/distribution/dto"
	"github.com/reliefops/cva/internal/application/distribution/usecases"
	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/domain/reconciliation"
)

type mockCreate struct {
	fn func(ctx context.Context, req dto.CreateDistributionRequest) (*dto.DistributionResponse, error)
}

func (m *mockCreate) Execute(ctx context.Context, req dto.CreateDistributionRequest) (*dto.DistributionResponse, error) {
	return m.fn(ctx, req)
}

type mockChangeStatus struct {
	calls []usecases.ChangeStatusCommand
	err   error
}

func (m *mockChangeStatus) Execute(_ context.Context, cmd usecases.ChangeStatusCommand) (*dto.DistributionResponse, error) {
	m.calls = append(m.calls, cmd)
	if m.err != nil {
		return nil, m.err
	}
	return &dto.DistributionResponse{ID: cmd.DistributionID}, nil
}

type mockPlan struct {
	fn    func(ctx context.Context, cmd usecases.PlanDistributionCommand) (*dto.PlanDistributionResponse, error)
	calls int
}

func (m *mockPlan) Execute(ctx context.Context, cmd usecases.PlanDistributionCommand) (*dto.PlanDistributionResponse, error) {
	m.calls++
	return m.fn(ctx, cmd)
}

type mockConfirm struct {
	fn    func(ctx context.Context, cmd usecases.ConfirmRecordCommand) (*dto.ConfirmRecordResponse, error)
	calls int
}

func (m *mockConfirm) Execute(ctx context.Context, cmd usecases.ConfirmRecordCommand) (*dto.ConfirmRecordResponse, error) {
	m.calls++
	return m.fn(ctx, cmd)
}

type mockQuerier struct {
	getFn         func(ctx context.Context, id uint) (*dto.DistributionResponse, error)
	listFn        func(ctx context.Context, filter distribution.ListFilter) ([]*dto.DistributionResponse, int64, error)
	listRecordsFn func(ctx context.Context, distributionID uint) ([]*dto.RecordResponse, error)
	getRecordFn   func(ctx context.Context, id uint) (*dto.RecordResponse, error)
}

func (m *mockQuerier) Get(ctx context.Context, id uint) (*dto.DistributionResponse, error) {
	return m.getFn(ctx, id)
}

func (m *mockQuerier) List(ctx context.Context, filter distribution.ListFilter) ([]*dto.DistributionResponse, int64, error) {
	return m.listFn(ctx, filter)
}

func (m *mockQuerier) ListRecords(ctx context.Context, distributionID uint) ([]*dto.RecordResponse, error) {
	return m.listRecordsFn(ctx, distributionID)
}

func (m *mockQuerier) GetRecord(ctx context.Context, id uint) (*dto.RecordResponse, error) {
	return m.getRecordFn(ctx, id)
}

type mockSummarizer struct {
	fn func(ctx context.Context, distributionID uint) (*reconciliation.Summary, error)
}

func (m *mockSummarizer) Summarize(ctx context.Context, distributionID uint) (*reconciliation.Summary, error) {
	return m.fn(ctx, distributionID)
}
