package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/reliefops/cva/internal/domain/permission"
	"github.com/reliefops/cva/internal/infrastructure/auth"
	"github.com/reliefops/cva/internal/infrastructure/config"
	permissionInfra "github.com/reliefops/cva/internal/infrastructure/permission"
	"github.com/reliefops/cva/internal/interfaces/http/middleware"
	"github.com/reliefops/cva/internal/shared/logger"
)

// Version is reported by /health. It is set at build time.
var Version = "dev"

const (
	confirmRateLimit  = 120
	confirmRateWindow = time.Minute
)

// Container wires repositories, application services, handlers and
// middleware into one gin engine.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	services *Services
	hdlrs    *allHandlers

	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
}

// Option customizes the container; used by tests to swap the permission enforcer.
type Option func(*containerOptions)

type containerOptions struct {
	enforcer permission.Enforcer
}

func WithEnforcer(e permission.Enforcer) Option {
	return func(o *containerOptions) { o.enforcer = e }
}

// NewContainer builds the API. rdb may be nil when Redis is disabled.
func NewContainer(gdb *gorm.DB, rdb *redis.Client, cfg *config.Config, log logger.Interface, opts ...Option) (*Container, error) {
	o := &containerOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if o.enforcer == nil {
		enforcer, err := permissionInfra.NewEnforcer(gdb, log.Named("permission"))
		if err != nil {
			return nil, fmt.Errorf("failed to create permission enforcer: %w", err)
		}
		if err := enforcer.EnsureDefaults(); err != nil {
			return nil, fmt.Errorf("failed to seed default policies: %w", err)
		}
		o.enforcer = enforcer
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
		redis:  rdb,
	}

	c.services = newServices(newRepositories(gdb, log), gdb, rdb, cfg, log)
	c.hdlrs = newHandlers(c.services, sqlDB, Version, log)

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	c.authMiddleware = middleware.NewAuthMiddleware(jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(o.enforcer, log)
	if rdb != nil {
		c.rateLimiter = middleware.NewRateLimiter(rdb, confirmRateLimit, confirmRateWindow, log)
	}

	return c, nil
}

// Services exposes the wired application services.
func (c *Container) Services() *Services {
	return c.services
}
