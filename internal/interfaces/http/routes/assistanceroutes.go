package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/reliefops/cva/internal/domain/permission"
	assistancehandlers "github.com/reliefops/cva/internal/interfaces/http/handlers/assistance"
	"github.com/reliefops/cva/internal/interfaces/http/middleware"
)

type AssistanceRouteConfig struct {
	AssistanceHandler    *assistancehandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupAssistanceRoutes(api *gin.RouterGroup, config *AssistanceRouteConfig) {
	perm := config.PermissionMiddleware.RequirePermission

	types := api.Group("/assistance-types")
	types.Use(config.AuthMiddleware.RequireAuth())
	{
		types.POST("",
			perm(permission.ResourceAssistance, permission.ActionCreate),
			config.AssistanceHandler.Create)
		types.GET("",
			perm(permission.ResourceAssistance, permission.ActionRead),
			config.AssistanceHandler.List)
		types.GET("/:id",
			perm(permission.ResourceAssistance, permission.ActionRead),
			config.AssistanceHandler.Get)
	}
}
