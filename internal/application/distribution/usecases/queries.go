package usecases

import (
	"context"

	"github.com/reliefops/cva/internal/application/common"
	"github.com/reliefops/cva/internal/application/distribution/dto"
	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/shared/constants"
	apperrors "github.com/reliefops/cva/internal/shared/errors"
	"github.com/reliefops/cva/internal/shared/logger"
)

// QueryUseCase serves the read side of distributions.
type QueryUseCase struct {
	distributions distribution.Repository
	records       distribution.RecordRepository
	logger        logger.Interface
}

func NewQueryUseCase(distributions distribution.Repository, records distribution.RecordRepository, logger logger.Interface) *QueryUseCase {
	return &QueryUseCase{
		distributions: distributions,
		records:       records,
		logger:        logger,
	}
}

func (uc *QueryUseCase) Get(ctx context.Context, id uint) (*dto.DistributionResponse, error) {
	d, err := uc.distributions.GetByID(ctx, id)
	if err != nil {
		return nil, common.ToAppError(err, "failed to get distribution")
	}
	return dto.ToDistributionResponse(d), nil
}

func (uc *QueryUseCase) List(ctx context.Context, filter distribution.ListFilter) ([]*dto.DistributionResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = constants.DefaultPage
	}
	if filter.PageSize < 1 || filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, apperrors.NewValidationError("invalid distribution status", filter.Status.String())
	}

	list, total, err := uc.distributions.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list distributions", "error", err)
		return nil, 0, common.ToAppError(err, "failed to list distributions")
	}
	return dto.ToDistributionResponses(list), total, nil
}

// ListRecords returns every record of a distribution in creation order.
func (uc *QueryUseCase) ListRecords(ctx context.Context, distributionID uint) ([]*dto.RecordResponse, error) {
	if _, err := uc.distributions.GetByID(ctx, distributionID); err != nil {
		return nil, common.ToAppError(err, "failed to get distribution")
	}
	records, err := uc.records.ListByDistribution(ctx, distributionID)
	if err != nil {
		uc.logger.Errorw("failed to list distribution records", "distribution_id", distributionID, "error", err)
		return nil, common.ToAppError(err, "failed to list distribution records")
	}
	return dto.ToRecordResponses(records), nil
}

func (uc *QueryUseCase) GetRecord(ctx context.Context, id uint) (*dto.RecordResponse, error) {
	rec, err := uc.records.GetByID(ctx, id)
	if err != nil {
		return nil, common.ToAppError(err, "failed to get distribution record")
	}
	return dto.ToRecordResponse(rec), nil
}
