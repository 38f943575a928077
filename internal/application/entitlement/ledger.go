// Package entitlement is the entitlement ledger: it owns every change to a
// household's programme total and distributed total.
package entitlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/reliefops/cva/internal/application/common"
	"github.com/reliefops/cva/internal/application/entitlement/dto"
	"github.com/reliefops/cva/internal/domain/assistance"
	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/domain/entitlement"
	"github.com/reliefops/cva/internal/domain/household"
	"github.com/reliefops/cva/internal/infrastructure/lock"
	"github.com/reliefops/cva/internal/shared/constants"
	"github.com/reliefops/cva/internal/shared/db"
	"github.com/reliefops/cva/internal/shared/logger"
)

const defaultMaxCASRetries = 3

// AuditRecorder appends an audit entry in the caller's transaction
type AuditRecorder interface {
	Record(ctx context.Context, action audit.Action, table string, recordID uint, oldValues, newValues map[string]any) error
}

type Ledger struct {
	entitlements  entitlement.Repository
	households    household.Repository
	assistance    assistance.Repository
	projects      common.ProjectGuard
	txm           db.Transactor
	locker        lock.Locker
	audit         AuditRecorder
	maxCASRetries int
	logger        logger.Interface
}

func NewLedger(
	entitlements entitlement.Repository,
	households household.Repository,
	assistanceTypes assistance.Repository,
	projects common.ProjectGuard,
	txm db.Transactor,
	locker lock.Locker,
	recorder AuditRecorder,
	maxCASRetries int,
	log logger.Interface,
) *Ledger {
	if maxCASRetries <= 0 {
		maxCASRetries = defaultMaxCASRetries
	}
	return &Ledger{
		entitlements:  entitlements,
		households:    households,
		assistance:    assistanceTypes,
		projects:      projects,
		txm:           txm,
		locker:        locker,
		audit:         recorder,
		maxCASRetries: maxCASRetries,
		logger:        log,
	}
}

// GetBalance returns the totals for one household and assistance type.
func (l *Ledger) GetBalance(ctx context.Context, householdID, assistanceTypeID uint) (*dto.BalanceResponse, error) {
	e, err := l.entitlements.GetByHouseholdAndType(ctx, householdID, assistanceTypeID)
	if err != nil {
		return nil, common.ToAppError(err, "failed to get balance")
	}
	return dto.ToBalanceResponse(e.Balance()), nil
}

func (l *Ledger) Get(ctx context.Context, entitlementID uint) (*dto.EntitlementResponse, error) {
	e, err := l.entitlements.GetByID(ctx, entitlementID)
	if err != nil {
		return nil, common.ToAppError(err, "failed to get entitlement")
	}
	return dto.ToEntitlementResponse(e), nil
}

func (l *Ledger) ListByHousehold(ctx context.Context, householdID uint) ([]*dto.EntitlementResponse, error) {
	if _, err := l.households.GetByID(ctx, householdID); err != nil {
		return nil, common.ToAppError(err, "failed to list entitlements")
	}
	list, err := l.entitlements.ListByHousehold(ctx, householdID)
	if err != nil {
		l.logger.Errorw("failed to list entitlements", "household_id", householdID, "error", err)
		return nil, common.ToAppError(err, "failed to list entitlements")
	}
	return dto.ToEntitlementResponses(list), nil
}

// CreateEntitlement opens a balance for a household. A registered household
// becomes enrolled as part of the same transaction.
func (l *Ledger) CreateEntitlement(ctx context.Context, req dto.CreateEntitlementRequest) (*dto.EntitlementResponse, error) {
	l.logger.Infow("creating entitlement",
		"household_id", req.HouseholdID,
		"assistance_type_id", req.AssistanceTypeID,
		"programme_total", req.ProgrammeTotal)

	ent, err := entitlement.NewEntitlement(req.HouseholdID, req.AssistanceTypeID, req.ProgrammeTotal)
	if err != nil {
		return nil, common.ToAppError(err, "failed to create entitlement")
	}

	err = l.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		hh, err := l.households.GetByID(ctx, req.HouseholdID)
		if err != nil {
			return err
		}
		if !hh.CanHoldEntitlement() {
			return fmt.Errorf("%w: household %d is %s", household.ErrInvalidState, hh.ID(), hh.Status())
		}
		if err := l.projects.EnsureWritable(ctx, hh.ProjectID()); err != nil {
			return err
		}
		if _, err := l.assistance.GetByID(ctx, req.AssistanceTypeID); err != nil {
			return err
		}

		existing, err := l.entitlements.GetByHouseholdAndType(ctx, req.HouseholdID, req.AssistanceTypeID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: entitlement %d", entitlement.ErrDuplicateEntitlement, existing.ID())
		case !errors.Is(err, entitlement.ErrEntitlementNotFound):
			return err
		}

		if err := l.entitlements.Create(ctx, ent); err != nil {
			return err
		}
		if err := l.audit.Record(ctx, audit.ActionCreate, constants.TableEntitlements, ent.ID(), nil, balanceValues(ent)); err != nil {
			return err
		}

		previous := hh.Status()
		if hh.EnrollIfRegistered() {
			if err := l.households.Update(ctx, hh); err != nil {
				return err
			}
			return l.audit.Record(ctx, audit.ActionStatusChange, constants.TableHouseholds, hh.ID(),
				map[string]any{"status": previous.String()},
				map[string]any{"status": hh.Status().String()})
		}
		return nil
	})
	if err != nil {
		l.logger.Warnw("entitlement not created",
			"household_id", req.HouseholdID,
			"assistance_type_id", req.AssistanceTypeID,
			"error", err)
		return nil, common.ToAppError(err, "failed to create entitlement")
	}

	l.logger.Infow("entitlement created", "entitlement_id", ent.ID())
	return dto.ToEntitlementResponse(ent), nil
}

// ApplyDistribution draws amount from the entitlement and returns what remains.
// Inside a caller's transaction the change commits or rolls back with it.
func (l *Ledger) ApplyDistribution(ctx context.Context, entitlementID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, common.ToAppError(
			fmt.Errorf("%w: distribution amount must be positive, got %s", entitlement.ErrInvalidAmount, amount), "")
	}

	var remaining decimal.Decimal
	err := l.mutate(ctx, entitlementID, func(ctx context.Context, e *entitlement.Entitlement) (audit.Action, map[string]any, error) {
		newRemaining, err := e.Apply(amount)
		if err != nil {
			return "", nil, err
		}
		remaining = newRemaining
		return audit.ActionApplyDistribution, map[string]any{"amount": amount.String()}, nil
	})
	if err != nil {
		return decimal.Zero, common.ToAppError(err, "failed to apply distribution")
	}

	l.logger.Infow("distribution applied to entitlement",
		"entitlement_id", entitlementID,
		"amount", amount,
		"remaining", remaining)
	return remaining, nil
}

// ZeroOut lowers the programme total to the distributed total. A balance that
// is already zero is left as is and no audit entry is written.
func (l *Ledger) ZeroOut(ctx context.Context, entitlementID uint) (*dto.EntitlementResponse, error) {
	var result *entitlement.Entitlement
	err := l.mutate(ctx, entitlementID, func(ctx context.Context, e *entitlement.Entitlement) (audit.Action, map[string]any, error) {
		result = e
		if !e.ZeroOut() {
			return "", nil, nil
		}
		return audit.ActionZeroOut, nil, nil
	})
	if err != nil {
		return nil, common.ToAppError(err, "failed to zero out entitlement")
	}
	return dto.ToEntitlementResponse(result), nil
}

type mutation func(ctx context.Context, e *entitlement.Entitlement) (action audit.Action, extra map[string]any, err error)

// mutate runs the serialized read-modify-write of one entitlement: keyed lock,
// row lock, change, version compare-and-swap, audit. An empty action means nothing changed.
func (l *Ledger) mutate(ctx context.Context, entitlementID uint, fn mutation) error {
	ctx, unlock, err := lock.Hold(ctx, l.locker, lock.EntitlementKey(entitlementID))
	if err != nil {
		l.logger.Warnw("entitlement lock not obtained", "entitlement_id", entitlementID, "error", err)
		return err
	}
	defer unlock()

	return l.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		for attempt := 1; ; attempt++ {
			e, err := l.entitlements.GetByIDForUpdate(ctx, entitlementID)
			if err != nil {
				return err
			}
			before := balanceValues(e)

			action, extra, err := fn(ctx, e)
			if err != nil || action == "" {
				return err
			}

			if err := l.entitlements.Update(ctx, e); err != nil {
				if errors.Is(err, entitlement.ErrVersionConflict) && attempt < l.maxCASRetries {
					l.logger.Debugw("retrying entitlement update after version conflict",
						"entitlement_id", entitlementID,
						"attempt", attempt)
					continue
				}
				return err
			}

			after := balanceValues(e)
			for k, v := range extra {
				after[k] = v
			}
			return l.audit.Record(ctx, action, constants.TableEntitlements, e.ID(), before, after)
		}
	})
}

func balanceValues(e *entitlement.Entitlement) map[string]any {
	return map[string]any{
		"programme_total":   e.ProgrammeTotal().String(),
		"distributed_total": e.DistributedTotal().String(),
		"remaining":         e.Remaining().String(),
		"version":           e.Version(),
	}
}
