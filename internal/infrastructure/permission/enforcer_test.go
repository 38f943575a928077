package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/cva/internal/domain/permission"
	"github.com/reliefops/cva/internal/infrastructure/persistence/testdb"
	"github.com/reliefops/cva/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	e, err := NewEnforcer(testdb.New(t), logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, e.EnsureDefaults())
	return e
}

func TestEnforcer_DefaultPolicies(t *testing.T) {
	e := newTestEnforcer(t)

	tests := []struct {
		role     string
		resource permission.Resource
		action   permission.Action
		allowed  bool
	}{
		{"viewer", permission.ResourceEntitlement, permission.ActionRead, true},
		{"viewer", permission.ResourceSummary, permission.ActionRead, true},
		{"viewer", permission.ResourceRecord, permission.ActionConfirm, false},
		{"viewer", permission.ResourceAudit, permission.ActionRead, false},
		{"field_staff", permission.ResourceRecord, permission.ActionConfirm, true},
		{"field_staff", permission.ResourceHousehold, permission.ActionCreate, true},
		{"field_staff", permission.ResourceDistribution, permission.ActionCreate, false},
		{"field_staff", permission.ResourceDistribution, permission.ActionRead, true},
		{"programme_manager", permission.ResourceDistribution, permission.ActionUpdate, true},
		{"programme_manager", permission.ResourceEntitlement, permission.ActionCreate, true},
		{"programme_manager", permission.ResourceRecord, permission.ActionConfirm, true},
		{"programme_manager", permission.ResourceAudit, permission.ActionRead, false},
		{"admin", permission.ResourceAudit, permission.ActionRead, true},
		{"stranger", permission.ResourceHousehold, permission.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+string(tt.resource)+"/"+string(tt.action), func(t *testing.T) {
			allowed, err := e.Enforce(tt.role, tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestEnforcer_EnsureDefaultsIsRepeatable(t *testing.T) {
	e := newTestEnforcer(t)

	require.NoError(t, e.EnsureDefaults())
	require.NoError(t, e.LoadPolicy())

	allowed, err := e.Enforce("field_staff", permission.ResourceRecord, permission.ActionConfirm)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestEnforcer_RemovePolicy(t *testing.T) {
	e := newTestEnforcer(t)

	require.NoError(t, e.AddPolicy("viewer", permission.ResourceAudit, permission.ActionRead))
	allowed, err := e.Enforce("viewer", permission.ResourceAudit, permission.ActionRead)
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, e.RemovePolicy("viewer", permission.ResourceAudit, permission.ActionRead))
	allowed, err = e.Enforce("viewer", permission.ResourceAudit, permission.ActionRead)
	require.NoError(t, err)
	assert.False(t, allowed)
}
