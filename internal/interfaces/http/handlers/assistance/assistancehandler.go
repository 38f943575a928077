package assistance

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reliefops/cva/internal/application/assistance/dto"
	"github.com/reliefops/cva/internal/shared/logger"
	"github.com/reliefops/cva/internal/shared/utils"
)

type Service interface {
	Create(ctx context.Context, req dto.CreateAssistanceTypeRequest) (*dto.AssistanceTypeResponse, error)
	Get(ctx context.Context, id uint) (*dto.AssistanceTypeResponse, error)
	ListByProject(ctx context.Context, projectID uint) ([]*dto.AssistanceTypeResponse, error)
}

type Handler struct {
	service Service
	logger  logger.Interface
}

func NewHandler(service Service, log logger.Interface) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Create handles POST /assistance-types
func (h *Handler) Create(c *gin.Context) {
	var req dto.CreateAssistanceTypeRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create assistance type", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Assistance type created successfully")
}

// List handles GET /assistance-types?project_id=
func (h *Handler) List(c *gin.Context) {
	projectID, err := utils.ParseUintQuery(c, "project_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Get handles GET /assistance-types/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "assistance type")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
