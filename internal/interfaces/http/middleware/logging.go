package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reliefops/cva/internal/shared/constants"
	"github.com/reliefops/cva/internal/shared/logger"
)

// Logger writes one access entry per request. Requests that may change the
// ledger (any method other than GET, HEAD or OPTIONS) are logged at info so
// field writes stay traceable next to the audit log; reads are logged at debug.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		resource := resourceOf(route)
		if route == "" {
			route = "unmatched"
		}
		args := []any{
			"method", c.Request.Method,
			"route", route,
			"resource", resource,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			args = append(args, "query", q)
		}
		if requestID := c.GetString(constants.ContextKeyRequestID); requestID != "" {
			args = append(args, "request_id", requestID)
		}
		if actor := c.GetString(constants.ContextKeyUserID); actor != "" {
			args = append(args, "actor", actor, "actor_role", c.GetString(constants.ContextKeyUserRole))
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Errorw("request failed", args...)
		case status >= http.StatusBadRequest:
			log.Warnw("request rejected", args...)
		case isWrite(c.Request.Method):
			log.Infow("ledger write", args...)
		default:
			log.Debugw("request served", args...)
		}
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// resourceOf returns the first route segment after the API version, e.g.
// "entitlements" for /api/v1/entitlements/:id/balance.
func resourceOf(route string) string {
	parts := strings.Split(strings.Trim(route, "/"), "/")
	for i, p := range parts {
		if p == "api" && i+2 < len(parts) {
			return parts[i+2]
		}
	}
	if len(parts) > 0 && parts[0] != "" && !strings.HasPrefix(parts[0], ":") {
		return parts[0]
	}
	return ""
}
