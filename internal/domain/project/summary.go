package project

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reliefops/cva/internal/domain/distribution"
)

// Summary is the budget and delivery rollup of one project.
// Budget and Distributed come from the entitlement ledger; Planned and Actual
// fold the records of every distribution in the project.
type Summary struct {
	ProjectID          uint                                `json:"project_id"`
	Status             Status                              `json:"status"`
	Households         int64                               `json:"households"`
	Distributions      int64                               `json:"distributions"`
	OpenDistributions  int64                               `json:"open_distributions"`
	Budget             decimal.Decimal                     `json:"budget"`
	Distributed        decimal.Decimal                     `json:"distributed"`
	Remaining          decimal.Decimal                     `json:"remaining"`
	DistributedPercent decimal.Decimal                     `json:"distributed_percent"`
	PlannedTotal       decimal.Decimal                     `json:"planned_total"`
	ActualTotal        decimal.Decimal                     `json:"actual_total"`
	RecordsByStatus    map[distribution.RecordStatus]int64 `json:"records_by_status"`
	RecordCount        int64                               `json:"record_count"`
	GeneratedAt        time.Time                           `json:"generated_at"`
}

var hundred = decimal.NewFromInt(100)

// Summarize combines ledger stats and record totals. The percentage is zero for
// a project without budget and is rounded to two places.
func Summarize(p *Project, stats *Stats, agg *distribution.Aggregate) *Summary {
	s := &Summary{
		ProjectID:          p.ID(),
		Status:             p.Status(),
		Budget:             decimal.Zero,
		Distributed:        decimal.Zero,
		DistributedPercent: decimal.Zero,
		GeneratedAt:        time.Now().UTC(),
	}
	if stats != nil {
		s.Households = stats.Households
		s.Distributions = stats.Distributions
		s.OpenDistributions = stats.OpenDistributions
		s.Budget = stats.Budget
		s.Distributed = stats.Distributed
	}
	s.Remaining = s.Budget.Sub(s.Distributed)
	if s.Budget.IsPositive() {
		s.DistributedPercent = s.Distributed.Mul(hundred).Div(s.Budget).Round(2)
	}
	s.PlannedTotal, s.ActualTotal, s.RecordsByStatus, s.RecordCount = agg.Totals()
	return s
}
