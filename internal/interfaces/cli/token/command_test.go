package token

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/cva/internal/infrastructure/auth"
	"github.com/reliefops/cva/internal/shared/authorization"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
auth:
  jwt:
    secret: test-secret
    issuer: cva-test
    access_exp_minutes: 30
logger:
  level: error
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestIssue(t *testing.T) {
	t.Setenv("CVA_ENV", "test")
	cfgPath := writeConfig(t)

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"issue", "--config", cfgPath, "--actor", "ops-1", "--role", "field_staff"})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "expires_at: "))

	claims, err := auth.NewJWTService("test-secret", "cva-test", 30).Verify(lines[0])
	require.NoError(t, err)
	assert.Equal(t, "ops-1", claims.Subject)
	assert.Equal(t, authorization.RoleFieldStaff, claims.Role)
}

func TestIssue_UnknownRole(t *testing.T) {
	t.Setenv("CVA_ENV", "test")
	cfgPath := writeConfig(t)

	cmd := NewCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"issue", "--config", cfgPath, "--actor", "ops-1", "--role", "root"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}
