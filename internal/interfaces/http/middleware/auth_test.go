package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/cva/internal/domain/permission"
	"github.com/reliefops/cva/internal/infrastructure/auth"
	"github.com/reliefops/cva/internal/shared/authorization"
	"github.com/reliefops/cva/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubEnforcer struct {
	allowed map[string]bool
	err     error
}

func (s *stubEnforcer) Enforce(role string, resource permission.Resource, action permission.Action) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.allowed[role+":"+string(resource)+":"+string(action)], nil
}

func newProtectedEngine(jwtSvc *auth.JWTService, enforcer permission.Enforcer) *gin.Engine {
	log := logger.NewNopLogger()
	authMW := NewAuthMiddleware(jwtSvc, log)
	permMW := NewPermissionMiddleware(enforcer, log)

	engine := gin.New()
	engine.POST("/records/:id/confirm",
		authMW.RequireAuth(),
		permMW.RequirePermission(permission.ResourceRecord, permission.ActionConfirm),
		func(c *gin.Context) {
			actor := authorization.ActorFromContext(c.Request.Context())
			c.JSON(http.StatusOK, gin.H{"actor": actor.ID, "role": string(actor.Role)})
		})
	return engine
}

func issue(t *testing.T, svc *auth.JWTService, actor string, role authorization.UserRole) string {
	t.Helper()
	tok, err := svc.Issue(actor, role, time.Hour)
	require.NoError(t, err)
	return tok.AccessToken
}

func TestRequireAuth(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", "cva-test", 60)
	other := auth.NewJWTService("other-secret", "cva-test", 60)
	enforcer := &stubEnforcer{allowed: map[string]bool{"field_staff:record:confirm": true}}
	engine := newProtectedEngine(jwtSvc, enforcer)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"foreign signature", "Bearer " + issue(t, other, "u-1", authorization.RoleFieldStaff), http.StatusUnauthorized},
		{"viewer forbidden", "Bearer " + issue(t, jwtSvc, "u-2", authorization.RoleViewer), http.StatusForbidden},
		{"field staff allowed", "Bearer " + issue(t, jwtSvc, "u-3", authorization.RoleFieldStaff), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/records/1/confirm", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireAuth_PutsActorOnRequestContext(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", "cva-test", 60)
	enforcer := &stubEnforcer{allowed: map[string]bool{"field_staff:record:confirm": true}}
	engine := newProtectedEngine(jwtSvc, enforcer)

	req := httptest.NewRequest(http.MethodPost, "/records/1/confirm", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, jwtSvc, "enumerator-9", authorization.RoleFieldStaff))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"actor":"enumerator-9","role":"field_staff"}`, w.Body.String())
}

func TestRequirePermission_EnforcerError(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", "cva-test", 60)
	engine := newProtectedEngine(jwtSvc, &stubEnforcer{err: assert.AnError})

	req := httptest.NewRequest(http.MethodPost, "/records/1/confirm", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, jwtSvc, "u-1", authorization.RoleAdmin))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
