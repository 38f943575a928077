package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
database:
  driver: sqlite
  database: ":memory:"
ledger:
  lock_backend: redis
email:
  report_to: ["pm@example.org"]
`), 0o600))

	t.Setenv("CVA_LEDGER_MAX_CAS_RETRIES", "7")

	cfg, err := Load("release", path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "redis", cfg.Ledger.LockBackend)
	assert.Equal(t, 7, cfg.Ledger.MaxCASRetries)
	assert.Equal(t, 30, cfg.Ledger.LockTTLSecond)
	assert.Equal(t, []string{"pm@example.org"}, cfg.Email.ReportTo)
	assert.False(t, cfg.Email.Enabled())
	assert.Same(t, cfg, Get())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
