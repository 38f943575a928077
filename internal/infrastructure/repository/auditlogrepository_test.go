package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/infrastructure/persistence/testdb"
	"github.com/reliefops/cva/internal/shared/logger"
)

func TestAuditLogRepository_AppendAndList(t *testing.T) {
	repo := NewAuditLogRepository(testdb.New(t), logger.NewNopLogger())
	ctx := context.Background()

	entries := []*audit.Entry{
		{ActorID: "u-1", Action: audit.ActionCreate, TableName: "entitlements", RecordID: 5,
			NewValues: map[string]any{"programme_total": "450"}},
		{ActorID: "u-2", Action: audit.ActionApplyDistribution, TableName: "entitlements", RecordID: 5,
			OldValues: map[string]any{"distributed_total": "0"}, NewValues: map[string]any{"distributed_total": "450"}},
		{ActorID: "u-2", Action: audit.ActionConfirm, TableName: "distribution_records", RecordID: 9},
	}
	for _, e := range entries {
		e.CreatedAt = time.Now().UTC()
		require.NoError(t, repo.Append(ctx, e))
		assert.NotZero(t, e.ID)
	}

	list, total, err := repo.List(ctx, audit.Filter{TableName: "entitlements", RecordID: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)

	latest := list[0]
	assert.Equal(t, audit.ActionApplyDistribution, latest.Action)
	assert.Equal(t, "0", latest.OldValues["distributed_total"])
	assert.Equal(t, "450", latest.NewValues["distributed_total"])

	_, total, err = repo.List(ctx, audit.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
