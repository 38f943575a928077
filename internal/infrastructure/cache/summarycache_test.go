package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/domain/reconciliation"
	"github.com/reliefops/cva/internal/shared/logger"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})
	return client
}

func TestRedisSummaryCache_RoundTrip(t *testing.T) {
	c := NewRedisSummaryCache(setupTestRedis(t), time.Minute, logger.NewNopLogger())
	ctx := context.Background()

	miss, err := c.Get(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, miss)

	summary := &reconciliation.Summary{
		DistributionID:     3,
		DistributionStatus: distribution.StatusCompleted,
		PlannedTotal:       decimal.RequireFromString("750.50"),
		ActualTotal:        decimal.NewFromInt(450),
		Variance:           decimal.RequireFromString("-300.50"),
		ByStatus:           map[distribution.RecordStatus]int64{distribution.RecordStatusDistributed: 1},
		RecordCount:        1,
	}
	require.NoError(t, c.Set(ctx, summary))

	got, err := c.Get(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.PlannedTotal.Equal(summary.PlannedTotal))
	assert.True(t, got.Variance.Equal(summary.Variance))
	assert.Equal(t, summary.ByStatus, got.ByStatus)

	require.NoError(t, c.Invalidate(ctx, 3))
	got, err = c.Get(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSummaryCache_SkipsOpenDistributions(t *testing.T) {
	c := NewRedisSummaryCache(setupTestRedis(t), time.Minute, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, &reconciliation.Summary{DistributionID: 4, DistributionStatus: distribution.StatusInProgress}))

	got, err := c.Get(ctx, 4)
	require.NoError(t, err)
	assert.Nil(t, got)
}
