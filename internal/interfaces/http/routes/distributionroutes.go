package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/reliefops/cva/internal/domain/permission"
	distributionhandlers "github.com/reliefops/cva/internal/interfaces/http/handlers/distribution"
	"github.com/reliefops/cva/internal/interfaces/http/middleware"
)

type DistributionRouteConfig struct {
	DistributionHandler  *distributionhandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	// RateLimiter guards record confirmation. Nil disables limiting.
	RateLimiter *middleware.RateLimiter
}

func SetupDistributionRoutes(api *gin.RouterGroup, config *DistributionRouteConfig) {
	perm := config.PermissionMiddleware.RequirePermission

	distributions := api.Group("/distributions")
	distributions.Use(config.AuthMiddleware.RequireAuth())
	{
		distributions.POST("",
			perm(permission.ResourceDistribution, permission.ActionCreate),
			config.DistributionHandler.Create)
		distributions.GET("",
			perm(permission.ResourceDistribution, permission.ActionRead),
			config.DistributionHandler.List)

		distributions.POST("/:id/start",
			perm(permission.ResourceDistribution, permission.ActionUpdate),
			config.DistributionHandler.Start)
		distributions.POST("/:id/complete",
			perm(permission.ResourceDistribution, permission.ActionUpdate),
			config.DistributionHandler.Complete)
		distributions.POST("/:id/cancel",
			perm(permission.ResourceDistribution, permission.ActionUpdate),
			config.DistributionHandler.Cancel)
		distributions.POST("/:id/plan",
			perm(permission.ResourceDistribution, permission.ActionUpdate),
			config.DistributionHandler.Plan)
		distributions.GET("/:id/records",
			perm(permission.ResourceRecord, permission.ActionRead),
			config.DistributionHandler.ListRecords)
		distributions.GET("/:id/summary",
			perm(permission.ResourceSummary, permission.ActionRead),
			config.DistributionHandler.Summary)

		distributions.GET("/:id",
			perm(permission.ResourceDistribution, permission.ActionRead),
			config.DistributionHandler.Get)
	}

	records := api.Group("/distribution-records")
	records.Use(config.AuthMiddleware.RequireAuth())
	{
		confirm := []gin.HandlerFunc{perm(permission.ResourceRecord, permission.ActionConfirm)}
		if config.RateLimiter != nil {
			confirm = append(confirm, config.RateLimiter.Limit())
		}
		confirm = append(confirm, config.DistributionHandler.ConfirmRecord)

		records.POST("/:id/confirm", confirm...)
		records.GET("/:id",
			perm(permission.ResourceRecord, permission.ActionRead),
			config.DistributionHandler.GetRecord)
	}
}
