package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/reliefops/cva/internal/domain/permission"
	entitlementhandlers "github.com/reliefops/cva/internal/interfaces/http/handlers/entitlement"
	householdhandlers "github.com/reliefops/cva/internal/interfaces/http/handlers/household"
	"github.com/reliefops/cva/internal/interfaces/http/middleware"
)

type HouseholdRouteConfig struct {
	HouseholdHandler     *householdhandlers.Handler
	EntitlementHandler   *entitlementhandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupHouseholdRoutes(api *gin.RouterGroup, config *HouseholdRouteConfig) {
	perm := config.PermissionMiddleware.RequirePermission

	households := api.Group("/households")
	households.Use(config.AuthMiddleware.RequireAuth())
	{
		households.POST("",
			perm(permission.ResourceHousehold, permission.ActionCreate),
			config.HouseholdHandler.Register)
		households.GET("",
			perm(permission.ResourceHousehold, permission.ActionRead),
			config.HouseholdHandler.List)

		households.POST("/:id/consent",
			perm(permission.ResourceHousehold, permission.ActionUpdate),
			config.HouseholdHandler.GiveConsent)
		households.POST("/:id/enroll",
			perm(permission.ResourceHousehold, permission.ActionUpdate),
			config.HouseholdHandler.Enroll)
		households.POST("/:id/activate",
			perm(permission.ResourceHousehold, permission.ActionUpdate),
			config.HouseholdHandler.Activate)
		households.POST("/:id/deactivate",
			perm(permission.ResourceHousehold, permission.ActionUpdate),
			config.HouseholdHandler.Deactivate)
		households.GET("/:id/entitlements",
			perm(permission.ResourceEntitlement, permission.ActionRead),
			config.EntitlementHandler.ListByHousehold)

		households.GET("/:id",
			perm(permission.ResourceHousehold, permission.ActionRead),
			config.HouseholdHandler.Get)
	}
}
