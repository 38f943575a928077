package household

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reliefops/cva/internal/application/household/dto"
	"github.com/reliefops/cva/internal/domain/household"
	"github.com/reliefops/cva/internal/shared/logger"
	"github.com/reliefops/cva/internal/shared/utils"
)

// Service is the household application service as seen by the handler.
type Service interface {
	Register(ctx context.Context, req dto.RegisterHouseholdRequest) (*dto.HouseholdResponse, error)
	Get(ctx context.Context, id uint) (*dto.HouseholdResponse, error)
	List(ctx context.Context, filter household.ListFilter) ([]*dto.HouseholdResponse, int64, error)
	GiveConsent(ctx context.Context, id uint) (*dto.HouseholdResponse, error)
	Enroll(ctx context.Context, id uint) (*dto.HouseholdResponse, error)
	Activate(ctx context.Context, id uint) (*dto.HouseholdResponse, error)
	Deactivate(ctx context.Context, id uint) (*dto.HouseholdResponse, error)
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

// Register handles POST /households
func (h *Handler) Register(c *gin.Context) {
	var req dto.RegisterHouseholdRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for register household", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Household registered successfully")
}

// List handles GET /households?project_id=&status=&page=&page_size=
func (h *Handler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := household.ListFilter{
		Status:   household.Status(c.Query("status")),
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	if c.Query("project_id") != "" {
		projectID, err := utils.ParseUintQuery(c, "project_id")
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		filter.ProjectID = projectID
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}

// Get handles GET /households/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "household")
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

// GiveConsent handles POST /households/:id/consent
func (h *Handler) GiveConsent(c *gin.Context) {
	h.change(c, h.service.GiveConsent, "Consent recorded")
}

// Enroll handles POST /households/:id/enroll
func (h *Handler) Enroll(c *gin.Context) {
	h.change(c, h.service.Enroll, "Household enrolled")
}

// Activate handles POST /households/:id/activate
func (h *Handler) Activate(c *gin.Context) {
	h.change(c, h.service.Activate, "Household activated")
}

// Deactivate handles POST /households/:id/deactivate
func (h *Handler) Deactivate(c *gin.Context) {
	h.change(c, h.service.Deactivate, "Household deactivated")
}

func (h *Handler) change(c *gin.Context, fn func(ctx context.Context, id uint) (*dto.HouseholdResponse, error), message string) {
	id, err := utils.ParseUintParam(c, "id", "household")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := fn(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, result)
}
