package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/reliefops/cva/internal/application/common"
	"github.com/reliefops/cva/internal/application/distribution/dto"
	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/domain/entitlement"
	"github.com/reliefops/cva/internal/shared/constants"
	"github.com/reliefops/cva/internal/shared/db"
	"github.com/reliefops/cva/internal/shared/logger"
	"github.com/reliefops/cva/internal/shared/money"
)

type PlanDistributionCommand struct {
	DistributionID uint
	Items          []dto.PlanItem
}

// PlanDistributionUseCase creates one pending record per planned item. It is
// safe to retry: records are keyed by (distribution, household, assistance type)
// and a repeated plan returns the IDs already stored. Balances are not checked
// here; they are checked when each record is confirmed.
type PlanDistributionUseCase struct {
	distributions distribution.Repository
	records       distribution.RecordRepository
	entitlements  entitlement.Repository
	txm           db.Transactor
	audit         AuditRecorder
	logger        logger.Interface
}

func NewPlanDistributionUseCase(
	distributions distribution.Repository,
	records distribution.RecordRepository,
	entitlements entitlement.Repository,
	txm db.Transactor,
	recorder AuditRecorder,
	logger logger.Interface,
) *PlanDistributionUseCase {
	return &PlanDistributionUseCase{
		distributions: distributions,
		records:       records,
		entitlements:  entitlements,
		txm:           txm,
		audit:         recorder,
		logger:        logger,
	}
}

func (uc *PlanDistributionUseCase) Execute(ctx context.Context, cmd PlanDistributionCommand) (*dto.PlanDistributionResponse, error) {
	uc.logger.Infow("planning distribution", "distribution_id", cmd.DistributionID, "items", len(cmd.Items))

	for _, item := range cmd.Items {
		if !item.PlannedAmount.IsPositive() {
			err := fmt.Errorf("%w: planned amount for household %d must be positive, got %s",
				distribution.ErrInvalidAmount, item.HouseholdID, item.PlannedAmount)
			return nil, common.ToAppError(err, "")
		}
		if !money.Fits(item.PlannedAmount) {
			err := fmt.Errorf("%w: planned amount for household %d has more than %d decimal places",
				distribution.ErrInvalidAmount, item.HouseholdID, money.Scale)
			return nil, common.ToAppError(err, "")
		}
	}

	var ids []uint
	err := uc.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		d, err := uc.distributions.GetByIDForShare(ctx, cmd.DistributionID)
		if err != nil {
			return err
		}
		if !d.IsOpen() {
			return fmt.Errorf("%w: cannot plan a %s distribution", distribution.ErrInvalidState, d.Status())
		}

		records, err := uc.buildRecords(ctx, d.ID(), cmd.Items)
		if err != nil {
			return err
		}

		stored, err := uc.records.CreateIfAbsent(ctx, records)
		if err != nil {
			return err
		}

		index := make(map[distribution.RecordKey]uint, len(records))
		for i, rec := range records {
			index[rec.Key()] = stored[i]
		}
		ids = make([]uint, 0, len(cmd.Items))
		for _, item := range cmd.Items {
			ids = append(ids, index[keyOf(d.ID(), item)])
		}

		return uc.audit.Record(ctx, audit.ActionPlan, constants.TableDistributions, d.ID(), nil, map[string]any{
			"items":      len(cmd.Items),
			"record_ids": stored,
		})
	})
	if err != nil {
		uc.logger.Warnw("failed to plan distribution", "distribution_id", cmd.DistributionID, "error", err)
		return nil, common.ToAppError(err, "failed to plan distribution")
	}

	uc.logger.Infow("distribution planned", "distribution_id", cmd.DistributionID, "records", len(ids))
	return &dto.PlanDistributionResponse{DistributionID: cmd.DistributionID, RecordIDs: ids}, nil
}

// buildRecords resolves each item's entitlement. Items repeating a key collapse
// into the first occurrence.
func (uc *PlanDistributionUseCase) buildRecords(ctx context.Context, distributionID uint, items []dto.PlanItem) ([]*distribution.Record, error) {
	seen := make(map[distribution.RecordKey]bool, len(items))
	records := make([]*distribution.Record, 0, len(items))
	for _, item := range items {
		key := keyOf(distributionID, item)
		if seen[key] {
			continue
		}
		seen[key] = true

		ent, err := uc.entitlements.GetByHouseholdAndType(ctx, item.HouseholdID, item.AssistanceTypeID)
		if err != nil {
			if errors.Is(err, entitlement.ErrEntitlementNotFound) {
				return nil, fmt.Errorf("%w: household %d, assistance type %d",
					distribution.ErrNoEntitlement, item.HouseholdID, item.AssistanceTypeID)
			}
			return nil, err
		}

		rec, err := distribution.NewRecord(key, ent.ID(), item.PlannedAmount)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func keyOf(distributionID uint, item dto.PlanItem) distribution.RecordKey {
	return distribution.RecordKey{
		DistributionID:   distributionID,
		HouseholdID:      item.HouseholdID,
		AssistanceTypeID: item.AssistanceTypeID,
	}
}
