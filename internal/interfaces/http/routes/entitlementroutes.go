package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/reliefops/cva/internal/domain/permission"
	entitlementhandlers "github.com/reliefops/cva/internal/interfaces/http/handlers/entitlement"
	"github.com/reliefops/cva/internal/interfaces/http/middleware"
)

type EntitlementRouteConfig struct {
	EntitlementHandler   *entitlementhandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupEntitlementRoutes(api *gin.RouterGroup, config *EntitlementRouteConfig) {
	perm := config.PermissionMiddleware.RequirePermission

	entitlements := api.Group("/entitlements")
	entitlements.Use(config.AuthMiddleware.RequireAuth())
	{
		entitlements.POST("",
			perm(permission.ResourceEntitlement, permission.ActionCreate),
			config.EntitlementHandler.Create)

		// Static paths before /:id
		entitlements.GET("/balance",
			perm(permission.ResourceEntitlement, permission.ActionRead),
			config.EntitlementHandler.GetBalance)
		entitlements.POST("/:id/zero-out",
			perm(permission.ResourceEntitlement, permission.ActionUpdate),
			config.EntitlementHandler.ZeroOut)

		entitlements.GET("/:id",
			perm(permission.ResourceEntitlement, permission.ActionRead),
			config.EntitlementHandler.Get)
	}
}
