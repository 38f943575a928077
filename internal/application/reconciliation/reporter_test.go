package reconciliation

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/cva/internal/application/apptest"
	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/domain/reconciliation"
	"github.com/reliefops/cva/internal/infrastructure/cache"
	apperrors "github.com/reliefops/cva/internal/shared/errors"
)

type memoryCache struct {
	items  map[uint]*reconciliation.Summary
	gets   int
	getErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[uint]*reconciliation.Summary)}
}

func (c *memoryCache) Get(_ context.Context, id uint) (*reconciliation.Summary, error) {
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.items[id], nil
}

func (c *memoryCache) Set(_ context.Context, s *reconciliation.Summary) error {
	c.items[s.DistributionID] = s
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, id uint) error {
	delete(c.items, id)
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seed plans three records (450, 200, 300) and confirms them as distributed, missed and left pending.
func seed(t *testing.T, env *apptest.Env) *distribution.Distribution {
	t.Helper()
	ctx := context.Background()
	at, hh, _ := env.Funded(t, 3, "1000")
	d := env.Distribution(t, "Round 1")

	planned := []string{"450", "200", "300"}
	records := make([]*distribution.Record, 0, len(planned))
	for i, amt := range planned {
		ent, err := env.Entitlements.GetByHouseholdAndType(ctx, hh[i].ID(), at.ID())
		require.NoError(t, err)
		rec, err := distribution.NewRecord(distribution.RecordKey{
			DistributionID: d.ID(), HouseholdID: hh[i].ID(), AssistanceTypeID: at.ID(),
		}, ent.ID(), dec(amt))
		require.NoError(t, err)
		records = append(records, rec)
	}
	ids, err := env.Records.CreateIfAbsent(ctx, records)
	require.NoError(t, err)

	confirm := func(id uint, o distribution.Outcome) {
		rec, err := env.Records.GetByID(ctx, id)
		require.NoError(t, err)
		require.NoError(t, rec.Confirm(o, "field", rec.CreatedAt()))
		ok, err := env.Records.ConfirmIfOpen(ctx, rec)
		require.NoError(t, err)
		require.True(t, ok)
	}
	actual := dec("450")
	confirm(ids[0], distribution.Outcome{Status: distribution.RecordStatusDistributed, ActualAmount: &actual})
	confirm(ids[1], distribution.Outcome{Status: distribution.RecordStatusMissed})
	return d
}

func TestReporter_Summarize(t *testing.T) {
	env := apptest.New(t)
	d := seed(t, env)
	c := newMemoryCache()
	reporter := NewReporter(env.Distributions, env.Records, c, env.Logger)

	s, err := reporter.Summarize(context.Background(), d.ID())
	require.NoError(t, err)

	assert.True(t, s.PlannedTotal.Equal(dec("950")))
	assert.True(t, s.ActualTotal.Equal(dec("450")))
	assert.True(t, s.Variance.Equal(dec("-500")))
	assert.Equal(t, map[distribution.RecordStatus]int64{
		distribution.RecordStatusDistributed: 1,
		distribution.RecordStatusMissed:      1,
		distribution.RecordStatusPending:     1,
	}, s.ByStatus)
	assert.Equal(t, int64(3), s.RecordCount)
	assert.Zero(t, s.MissedConfirmations, "an open distribution has no missed confirmations yet")
	assert.Empty(t, c.items, "open distributions are not cached")
}

func TestReporter_ClosedDistributionIsCached(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	d := seed(t, env)

	stored, err := env.Distributions.GetByID(ctx, d.ID())
	require.NoError(t, err)
	require.NoError(t, stored.Cancel())
	require.NoError(t, env.Distributions.Update(ctx, stored))

	c := newMemoryCache()
	reporter := NewReporter(env.Distributions, env.Records, c, env.Logger)

	first, err := reporter.Summarize(ctx, d.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.MissedConfirmations)
	require.Contains(t, c.items, d.ID())

	second, err := reporter.Summarize(ctx, d.ID())
	require.NoError(t, err)
	assert.Same(t, c.items[d.ID()], second)
}

func TestReporter_EmptyDistribution(t *testing.T) {
	env := apptest.New(t)
	d := env.Distribution(t, "Nothing planned")
	reporter := NewReporter(env.Distributions, env.Records, cache.NopSummaryCache{}, env.Logger)

	s, err := reporter.Summarize(context.Background(), d.ID())
	require.NoError(t, err)
	assert.True(t, s.PlannedTotal.IsZero())
	assert.True(t, s.Variance.IsZero())
	assert.Empty(t, s.ByStatus)
}

func TestReporter_UnknownDistribution(t *testing.T) {
	env := apptest.New(t)
	c := newMemoryCache()
	c.getErr = errors.New("redis down")
	reporter := NewReporter(env.Distributions, env.Records, c, env.Logger)

	_, err := reporter.Summarize(context.Background(), 31337)
	assert.ErrorIs(t, err, distribution.ErrDistributionNotFound)
	assert.True(t, apperrors.IsNotFoundError(err))
	assert.Equal(t, 1, c.gets)
}
