// Package reconciliation compares planned and actual amounts of a distribution.
package reconciliation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reliefops/cva/internal/domain/distribution"
)

// Summary is the planned versus actual view of one distribution.
// ByStatus only holds statuses that occur. MissedConfirmations counts records
// left pending when the distribution closed, which differs from the missed status.
type Summary struct {
	DistributionID      uint                                `json:"distribution_id"`
	DistributionStatus  distribution.Status                 `json:"distribution_status"`
	PlannedTotal        decimal.Decimal                     `json:"planned_total"`
	ActualTotal         decimal.Decimal                     `json:"actual_total"`
	Variance            decimal.Decimal                     `json:"variance"`
	ByStatus            map[distribution.RecordStatus]int64 `json:"by_status"`
	RecordCount         int64                               `json:"record_count"`
	MissedConfirmations int64                               `json:"missed_confirmations"`
	GeneratedAt         time.Time                           `json:"generated_at"`
}

// Summarize folds per-status totals into a summary. A missing actual amount counts as zero.
func Summarize(d *distribution.Distribution, agg *distribution.Aggregate) *Summary {
	s := &Summary{
		DistributionID:     d.ID(),
		DistributionStatus: d.Status(),
		GeneratedAt:        time.Now().UTC(),
	}
	s.PlannedTotal, s.ActualTotal, s.ByStatus, s.RecordCount = agg.Totals()
	s.Variance = s.ActualTotal.Sub(s.PlannedTotal)
	if d.Status().IsTerminal() {
		s.MissedConfirmations = s.ByStatus[distribution.RecordStatusPending]
	}
	return s
}

// Cacheable reports whether the summary can no longer change.
func (s *Summary) Cacheable() bool {
	return s.DistributionStatus.IsTerminal()
}

// Cache stores summaries of closed distributions. Get returns nil on a miss.
type Cache interface {
	Get(ctx context.Context, distributionID uint) (*Summary, error)
	Set(ctx context.Context, summary *Summary) error
	Invalidate(ctx context.Context, distributionID uint) error
}
