package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/reliefops/cva/internal/application/common"
	"github.com/reliefops/cva/internal/application/distribution/dto"
	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/shared/constants"
	"github.com/reliefops/cva/internal/shared/db"
	"github.com/reliefops/cva/internal/shared/goroutine"
	"github.com/reliefops/cva/internal/shared/logger"
)

// Transition names a lifecycle step requested for a distribution.
type Transition string

const (
	TransitionStart    Transition = "start"
	TransitionComplete Transition = "complete"
	TransitionCancel   Transition = "cancel"
)

const notifyTimeout = 2 * time.Minute

type ChangeStatusCommand struct {
	DistributionID uint
	Transition     Transition
}

// ChangeStatusUseCase moves a distribution through its lifecycle. A cancel or
// complete that commits is seen by every later confirmation of its records.
type ChangeStatusUseCase struct {
	distributions distribution.Repository
	txm           db.Transactor
	audit         AuditRecorder
	notifier      ClosureNotifier
	logger        logger.Interface
}

func NewChangeStatusUseCase(
	distributions distribution.Repository,
	txm db.Transactor,
	recorder AuditRecorder,
	notifier ClosureNotifier,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		distributions: distributions,
		txm:           txm,
		audit:         recorder,
		notifier:      notifier,
		logger:        logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.DistributionResponse, error) {
	var d *distribution.Distribution
	err := uc.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		d, err = uc.distributions.GetByID(ctx, cmd.DistributionID)
		if err != nil {
			return err
		}
		before := distributionValues(d)

		switch cmd.Transition {
		case TransitionStart:
			err = d.Start()
		case TransitionComplete:
			err = d.Complete()
		case TransitionCancel:
			err = d.Cancel()
		default:
			err = fmt.Errorf("%w: unknown transition %q", distribution.ErrInvalidState, cmd.Transition)
		}
		if err != nil {
			return err
		}

		if err := uc.distributions.Update(ctx, d); err != nil {
			return err
		}
		return uc.audit.Record(ctx, audit.ActionStatusChange, constants.TableDistributions, d.ID(), before, distributionValues(d))
	})
	if err != nil {
		uc.logger.Warnw("distribution status change failed",
			"distribution_id", cmd.DistributionID,
			"transition", cmd.Transition,
			"error", err)
		return nil, common.ToAppError(err, "failed to change distribution status")
	}

	uc.logger.Infow("distribution status changed",
		"distribution_id", d.ID(),
		"status", d.Status())

	if d.Status() == distribution.StatusCompleted && uc.notifier != nil {
		id := d.ID()
		goroutine.SafeGo(uc.logger, "distribution-closure-report", func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			if err := uc.notifier.NotifyCompleted(notifyCtx, id); err != nil {
				uc.logger.Errorw("failed to send closure report", "distribution_id", id, "error", err)
			}
		})
	}

	return dto.ToDistributionResponse(d), nil
}
