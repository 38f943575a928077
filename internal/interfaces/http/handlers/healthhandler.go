// Package handlers holds endpoints that do not belong to a domain module.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reliefops/cva/internal/shared/logger"
	"github.com/reliefops/cva/internal/shared/utils"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	version string
	logger  logger.Interface
}

func NewHealthHandler(db Pinger, version string, log logger.Interface) *HealthHandler {
	return &HealthHandler{
		db:      db,
		version: version,
		logger:  log,
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version,omitempty"`
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Database: "up", Version: h.version}
	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Errorw("health check: database unreachable", "error", err)
		resp.Status = "degraded"
		resp.Database = "down"
		utils.SuccessResponse(c, http.StatusServiceUnavailable, "", resp)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}
