package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/reliefops/cva/internal/shared/constants"
	"github.com/reliefops/cva/internal/shared/logger"
)

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(logger.NewNopLogger()))
	engine.GET("/boom", func(c *gin.Context) { panic("ledger exploded") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestCORS(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"https://field.example.org"}))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://field.example.org")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://field.example.org", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAllowedOrigin_Wildcard(t *testing.T) {
	assert.Equal(t, "https://a.example", allowedOrigin("https://a.example", []string{"*"}))
	assert.Empty(t, allowedOrigin("", []string{"*"}))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, "fo-9")
		c.Set(constants.ContextKeyUserRole, "field_officer")
		c.Next()
	})
	engine.Use(Logger(log))
	engine.POST("/api/v1/distributions/:id/records/:recordId/confirm", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/api/v1/households/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.POST("/api/v1/entitlements", func(c *gin.Context) { c.Status(http.StatusConflict) })

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/distributions/4/records/9/confirm", nil))
	out := buf.String()
	assert.Contains(t, out, `msg="ledger write"`)
	assert.Contains(t, out, "route=/api/v1/distributions/:id/records/:recordId/confirm")
	assert.Contains(t, out, "resource=distributions")
	assert.Contains(t, out, "actor=fo-9")
	assert.Contains(t, out, "actor_role=field_officer")

	buf.Reset()
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/households/3", nil))
	assert.Empty(t, buf.String(), "reads are debug only")

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/entitlements", nil))
	assert.Contains(t, buf.String(), `msg="request rejected"`)
	assert.Contains(t, buf.String(), "status=409")

	buf.Reset()
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/nowhere", nil))
	assert.Contains(t, buf.String(), "route=unmatched")
}

func TestResourceOf(t *testing.T) {
	assert.Equal(t, "entitlements", resourceOf("/api/v1/entitlements/:id/balance"))
	assert.Equal(t, "projects", resourceOf("/api/v1/projects"))
	assert.Equal(t, "health", resourceOf("/health"))
	assert.Equal(t, "", resourceOf(""))
}
