package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/reliefops/cva/internal/domain/permission"
	projecthandlers "github.com/reliefops/cva/internal/interfaces/http/handlers/project"
	"github.com/reliefops/cva/internal/interfaces/http/middleware"
)

type ProjectRouteConfig struct {
	ProjectHandler       *projecthandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupProjectRoutes(api *gin.RouterGroup, config *ProjectRouteConfig) {
	perm := config.PermissionMiddleware.RequirePermission

	projects := api.Group("/projects")
	projects.Use(config.AuthMiddleware.RequireAuth())
	{
		projects.POST("",
			perm(permission.ResourceProject, permission.ActionCreate),
			config.ProjectHandler.Create)
		projects.GET("",
			perm(permission.ResourceProject, permission.ActionRead),
			config.ProjectHandler.List)

		projects.PUT("/:id",
			perm(permission.ResourceProject, permission.ActionUpdate),
			config.ProjectHandler.Update)
		projects.POST("/:id/activate",
			perm(permission.ResourceProject, permission.ActionUpdate),
			config.ProjectHandler.Activate)
		projects.POST("/:id/close",
			perm(permission.ResourceProject, permission.ActionUpdate),
			config.ProjectHandler.Close)
		projects.GET("/:id/summary",
			perm(permission.ResourceSummary, permission.ActionRead),
			config.ProjectHandler.Summary)

		projects.GET("/:id",
			perm(permission.ResourceProject, permission.ActionRead),
			config.ProjectHandler.Get)
	}
}
