package reconciliation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/cva/internal/domain/distribution"
)

func dist(t *testing.T, status distribution.Status) *distribution.Distribution {
	t.Helper()
	d, err := distribution.ReconstructDistribution(7, 1, "Round 1", time.Now(), nil, status, "u", time.Now(), time.Now(), 1)
	require.NoError(t, err)
	return d
}

func TestSummarize(t *testing.T) {
	agg := &distribution.Aggregate{ByStatus: []distribution.StatusTotals{
		{Status: distribution.RecordStatusDistributed, Count: 1, Planned: decimal.NewFromInt(450), Actual: decimal.NewFromInt(450)},
		{Status: distribution.RecordStatusMissed, Count: 1, Planned: decimal.NewFromInt(100), Actual: decimal.Zero},
		{Status: distribution.RecordStatusPending, Count: 1, Planned: decimal.NewFromInt(200), Actual: decimal.Zero},
	}}

	s := Summarize(dist(t, distribution.StatusInProgress), agg)

	assert.True(t, s.PlannedTotal.Equal(decimal.NewFromInt(750)))
	assert.True(t, s.ActualTotal.Equal(decimal.NewFromInt(450)))
	assert.True(t, s.Variance.Equal(decimal.NewFromInt(-300)))
	assert.Equal(t, map[distribution.RecordStatus]int64{
		distribution.RecordStatusDistributed: 1,
		distribution.RecordStatusMissed:      1,
		distribution.RecordStatusPending:     1,
	}, s.ByStatus)
	assert.Equal(t, int64(3), s.RecordCount)
	assert.Zero(t, s.MissedConfirmations)
	assert.False(t, s.Cacheable())
}

func TestSummarize_ClosedDistributionReportsMissedConfirmations(t *testing.T) {
	agg := &distribution.Aggregate{ByStatus: []distribution.StatusTotals{
		{Status: distribution.RecordStatusPending, Count: 2, Planned: decimal.NewFromInt(200), Actual: decimal.Zero},
	}}

	s := Summarize(dist(t, distribution.StatusCancelled), agg)

	assert.Equal(t, int64(2), s.MissedConfirmations)
	assert.True(t, s.Cacheable())
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(dist(t, distribution.StatusPlanned), &distribution.Aggregate{})

	assert.True(t, s.PlannedTotal.IsZero())
	assert.True(t, s.Variance.IsZero())
	assert.Empty(t, s.ByStatus)
}
