package audit

import (
	"context"

	"github.com/gin-gonic/gin"

	auditApp "github.com/reliefops/cva/internal/application/audit"
	"github.com/reliefops/cva/internal/domain/audit"
	apperrors "github.com/reliefops/cva/internal/shared/errors"
	"github.com/reliefops/cva/internal/shared/logger"
	"github.com/reliefops/cva/internal/shared/utils"
)

type Lister interface {
	List(ctx context.Context, filter audit.Filter) ([]*auditApp.EntryResponse, int64, error)
}

type Handler struct {
	lister Lister
	logger logger.Interface
}

func NewHandler(lister Lister, log logger.Interface) *Handler {
	return &Handler{
		lister: lister,
		logger: log,
	}
}

// List handles GET /audit-logs?table=&record_id=&page=&page_size=
func (h *Handler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := audit.Filter{
		TableName: c.Query("table"),
		Page:      p.Page,
		PageSize:  p.PageSize,
	}
	if c.Query("record_id") != "" {
		if filter.TableName == "" {
			utils.ErrorResponseWithError(c, apperrors.NewValidationError("table is required when record_id is given"))
			return
		}
		recordID, err := utils.ParseUintQuery(c, "record_id")
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		filter.RecordID = recordID
	}

	items, total, err := h.lister.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}
