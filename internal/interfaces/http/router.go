package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/reliefops/cva/internal/interfaces/http/docs"
	"github.com/reliefops/cva/internal/interfaces/http/middleware"
	"github.com/reliefops/cva/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	c.engine.GET("/health", c.hdlrs.health.Check)

	api := c.engine.Group("/api/v1")

	routes.SetupProjectRoutes(api, &routes.ProjectRouteConfig{
		ProjectHandler:       c.hdlrs.project,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
	routes.SetupHouseholdRoutes(api, &routes.HouseholdRouteConfig{
		HouseholdHandler:     c.hdlrs.household,
		EntitlementHandler:   c.hdlrs.entitlement,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
	routes.SetupAssistanceRoutes(api, &routes.AssistanceRouteConfig{
		AssistanceHandler:    c.hdlrs.assistance,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
	routes.SetupEntitlementRoutes(api, &routes.EntitlementRouteConfig{
		EntitlementHandler:   c.hdlrs.entitlement,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
	routes.SetupDistributionRoutes(api, &routes.DistributionRouteConfig{
		DistributionHandler:  c.hdlrs.distribution,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		RateLimiter:          c.rateLimiter,
	})
	routes.SetupAuditRoutes(api, &routes.AuditRouteConfig{
		AuditHandler:         c.hdlrs.audit,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

// GetEngine returns the Gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}
