package usecases

import (
	"context"

	"github.com/reliefops/cva/internal/application/common"
	"github.com/reliefops/cva/internal/application/distribution/dto"
	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/shared/authorization"
	"github.com/reliefops/cva/internal/shared/constants"
	"github.com/reliefops/cva/internal/shared/db"
	"github.com/reliefops/cva/internal/shared/logger"
)

type CreateDistributionUseCase struct {
	distributions distribution.Repository
	projects      common.ProjectGuard
	txm           db.Transactor
	audit         AuditRecorder
	logger        logger.Interface
}

func NewCreateDistributionUseCase(
	distributions distribution.Repository,
	projects common.ProjectGuard,
	txm db.Transactor,
	recorder AuditRecorder,
	logger logger.Interface,
) *CreateDistributionUseCase {
	return &CreateDistributionUseCase{
		distributions: distributions,
		projects:      projects,
		txm:           txm,
		audit:         recorder,
		logger:        logger,
	}
}

func (uc *CreateDistributionUseCase) Execute(ctx context.Context, req dto.CreateDistributionRequest) (*dto.DistributionResponse, error) {
	actor := authorization.ActorFromContext(ctx)

	d, err := distribution.NewDistribution(req.ProjectID, req.Name, req.DistributionDate, req.LocationID, actor.ID)
	if err != nil {
		uc.logger.Warnw("invalid distribution", "name", req.Name, "error", err)
		return nil, common.ToAppError(err, "invalid distribution")
	}

	err = uc.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.projects.EnsureWritable(ctx, d.ProjectID()); err != nil {
			return err
		}
		if err := uc.distributions.Create(ctx, d); err != nil {
			return err
		}
		return uc.audit.Record(ctx, audit.ActionCreate, constants.TableDistributions, d.ID(), nil, distributionValues(d))
	})
	if err != nil {
		uc.logger.Warnw("failed to create distribution", "name", req.Name, "project_id", req.ProjectID, "error", err)
		return nil, common.ToAppError(err, "failed to create distribution")
	}

	uc.logger.Infow("distribution created", "distribution_id", d.ID(), "project_id", d.ProjectID())
	return dto.ToDistributionResponse(d), nil
}

func distributionValues(d *distribution.Distribution) map[string]any {
	return map[string]any{
		"name":              d.Name(),
		"distribution_date": d.DistributionDate().Format("2006-01-02"),
		"status":            d.Status().String(),
		"version":           d.Version(),
	}
}
