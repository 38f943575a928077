package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/reliefops/cva/internal/domain/permission"
	audithandlers "github.com/reliefops/cva/internal/interfaces/http/handlers/audit"
	"github.com/reliefops/cva/internal/interfaces/http/middleware"
)

type AuditRouteConfig struct {
	AuditHandler         *audithandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupAuditRoutes(api *gin.RouterGroup, config *AuditRouteConfig) {
	logs := api.Group("/audit-logs")
	logs.Use(config.AuthMiddleware.RequireAuth())
	{
		logs.GET("",
			config.PermissionMiddleware.RequirePermission(permission.ResourceAudit, permission.ActionRead),
			config.AuditHandler.List)
	}
}
