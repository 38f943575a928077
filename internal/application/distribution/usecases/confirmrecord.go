package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reliefops/cva/internal/application/common"
	"github.com/reliefops/cva/internal/application/distribution/dto"
	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/infrastructure/lock"
	"github.com/reliefops/cva/internal/shared/authorization"
	"github.com/reliefops/cva/internal/shared/constants"
	"github.com/reliefops/cva/internal/shared/db"
	"github.com/reliefops/cva/internal/shared/logger"
)

type ConfirmRecordCommand struct {
	RecordID     uint
	Status       distribution.RecordStatus
	ActualAmount *decimal.Decimal
	Notes        string
}

// ConfirmRecordUseCase finalizes a record with its field outcome and draws the
// actual amount from the entitlement. Both writes share one transaction: if the
// ledger refuses the draw, the record stays pending.
type ConfirmRecordUseCase struct {
	distributions distribution.Repository
	records       distribution.RecordRepository
	ledger        LedgerApplier
	txm           db.Transactor
	locker        lock.Locker
	audit         AuditRecorder
	logger        logger.Interface
	now           func() time.Time
}

func NewConfirmRecordUseCase(
	distributions distribution.Repository,
	records distribution.RecordRepository,
	ledger LedgerApplier,
	txm db.Transactor,
	locker lock.Locker,
	recorder AuditRecorder,
	logger logger.Interface,
) *ConfirmRecordUseCase {
	return &ConfirmRecordUseCase{
		distributions: distributions,
		records:       records,
		ledger:        ledger,
		txm:           txm,
		locker:        locker,
		audit:         recorder,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (uc *ConfirmRecordUseCase) Execute(ctx context.Context, cmd ConfirmRecordCommand) (*dto.ConfirmRecordResponse, error) {
	uc.logger.Infow("confirming distribution record", "record_id", cmd.RecordID, "status", cmd.Status)

	rec, err := uc.records.GetByID(ctx, cmd.RecordID)
	if err != nil {
		uc.logger.Warnw("distribution record not found", "record_id", cmd.RecordID, "error", err)
		return nil, common.ToAppError(err, "failed to get distribution record")
	}

	// The entitlement lock is taken before the transaction so that the ledger
	// call inside it never waits on a lock while holding a connection.
	ctx, unlock, err := lock.Hold(ctx, uc.locker, lock.EntitlementKey(rec.EntitlementID()))
	if err != nil {
		uc.logger.Warnw("entitlement lock not obtained", "record_id", cmd.RecordID, "error", err)
		return nil, common.ToAppError(err, "")
	}
	defer unlock()

	var remaining *decimal.Decimal
	err = uc.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		d, err := uc.distributions.GetByIDForShare(ctx, rec.DistributionID())
		if err != nil {
			return err
		}
		if !d.IsOpen() {
			return fmt.Errorf("%w: distribution %d is %s", distribution.ErrDistributionClosed, d.ID(), d.Status())
		}

		current, err := uc.records.GetByID(ctx, cmd.RecordID)
		if err != nil {
			return err
		}
		before := recordValues(current)

		outcome := distribution.Outcome{Status: cmd.Status, ActualAmount: cmd.ActualAmount, Notes: cmd.Notes}
		if err := current.Confirm(outcome, authorization.ActorFromContext(ctx).ID, uc.now()); err != nil {
			return err
		}

		if current.Status().MovesLedger() {
			left, err := uc.ledger.ApplyDistribution(ctx, current.EntitlementID(), current.ActualOrZero())
			if err != nil {
				return err
			}
			remaining = &left
		}

		written, err := uc.records.ConfirmIfOpen(ctx, current)
		if err != nil {
			return err
		}
		if !written {
			return uc.lostRace(ctx, current)
		}

		rec = current
		return uc.audit.Record(ctx, audit.ActionConfirm, constants.TableDistributionRecords, current.ID(), before, recordValues(current))
	})
	if err != nil {
		uc.logger.Warnw("distribution record not confirmed", "record_id", cmd.RecordID, "error", err)
		return nil, common.ToAppError(err, "failed to confirm distribution record")
	}

	uc.logger.Infow("distribution record confirmed",
		"record_id", rec.ID(),
		"status", rec.Status(),
		"entitlement_id", rec.EntitlementID())
	return &dto.ConfirmRecordResponse{Record: dto.ToRecordResponse(rec), Remaining: remaining}, nil
}

// lostRace explains why the conditional record update matched no row.
func (uc *ConfirmRecordUseCase) lostRace(ctx context.Context, rec *distribution.Record) error {
	d, err := uc.distributions.GetByID(ctx, rec.DistributionID())
	if err != nil {
		return err
	}
	if !d.IsOpen() {
		return fmt.Errorf("%w: distribution %d is %s", distribution.ErrDistributionClosed, d.ID(), d.Status())
	}

	stored, err := uc.records.GetByID(ctx, rec.ID())
	if err != nil {
		return err
	}
	if !stored.IsPending() {
		return fmt.Errorf("%w: record %d is %s", distribution.ErrAlreadyFinalized, stored.ID(), stored.Status())
	}
	return fmt.Errorf("%w: record %d", distribution.ErrVersionConflict, rec.ID())
}

func recordValues(r *distribution.Record) map[string]any {
	values := map[string]any{
		"status":         r.Status().String(),
		"planned_amount": r.PlannedAmount().String(),
		"entitlement_id": r.EntitlementID(),
	}
	if r.ActualAmount() != nil {
		values["actual_amount"] = r.ActualAmount().String()
	}
	if r.Notes() != "" {
		values["notes"] = r.Notes()
	}
	return values
}
