package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/reliefops/cva/internal/domain/audit"
)

// LedgerApplier draws a confirmed amount from an entitlement. It joins the
// caller's transaction and lock when they are present in ctx.
type LedgerApplier interface {
	ApplyDistribution(ctx context.Context, entitlementID uint, amount decimal.Decimal) (decimal.Decimal, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, action audit.Action, table string, recordID uint, oldValues, newValues map[string]any) error
}

// ClosureNotifier is told when a distribution has been completed
type ClosureNotifier interface {
	NotifyCompleted(ctx context.Context, distributionID uint) error
}
