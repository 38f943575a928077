package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/cva/internal/shared/config"
)

func TestInit_SQLite(t *testing.T) {
	require.NoError(t, Init(&config.DatabaseConfig{Driver: "sqlite", Database: ":memory:"}))
	t.Cleanup(func() { _ = Close() })

	got := Get()
	require.NotNil(t, got)
	assert.Equal(t, "sqlite", got.Dialector.Name())

	var one int
	require.NoError(t, got.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestDriverName(t *testing.T) {
	assert.Equal(t, "mysql", driverName(&config.DatabaseConfig{}))
	assert.Equal(t, "sqlite", driverName(&config.DatabaseConfig{Driver: "SQLite"}))
}
