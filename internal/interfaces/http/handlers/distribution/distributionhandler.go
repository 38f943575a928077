package distribution

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reliefops/cva/internal/application/distribution/dto"
	"github.com/reliefops/cva/internal/application/distribution/usecases"
	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/domain/reconciliation"
	"github.com/reliefops/cva/internal/shared/logger"
	"github.com/reliefops/cva/internal/shared/utils"
)

type CreateDistributionExecutor interface {
	Execute(ctx context.Context, req dto.CreateDistributionRequest) (*dto.DistributionResponse, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd usecases.ChangeStatusCommand) (*dto.DistributionResponse, error)
}

type PlanDistributionExecutor interface {
	Execute(ctx context.Context, cmd usecases.PlanDistributionCommand) (*dto.PlanDistributionResponse, error)
}

type ConfirmRecordExecutor interface {
	Execute(ctx context.Context, cmd usecases.ConfirmRecordCommand) (*dto.ConfirmRecordResponse, error)
}

type Querier interface {
	Get(ctx context.Context, id uint) (*dto.DistributionResponse, error)
	List(ctx context.Context, filter distribution.ListFilter) ([]*dto.DistributionResponse, int64, error)
	ListRecords(ctx context.Context, distributionID uint) ([]*dto.RecordResponse, error)
	GetRecord(ctx context.Context, id uint) (*dto.RecordResponse, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, distributionID uint) (*reconciliation.Summary, error)
}

type Handler struct {
	createUC  CreateDistributionExecutor
	statusUC  ChangeStatusExecutor
	planUC    PlanDistributionExecutor
	confirmUC ConfirmRecordExecutor
	queries   Querier
	reporter  Summarizer
	logger    logger.Interface
}

func NewHandler(
	createUC CreateDistributionExecutor,
	statusUC ChangeStatusExecutor,
	planUC PlanDistributionExecutor,
	confirmUC ConfirmRecordExecutor,
	queries Querier,
	reporter Summarizer,
	log logger.Interface,
) *Handler {
	return &Handler{
		createUC:  createUC,
		statusUC:  statusUC,
		planUC:    planUC,
		confirmUC: confirmUC,
		queries:   queries,
		reporter:  reporter,
		logger:    log,
	}
}

// Create handles POST /distributions
func (h *Handler) Create(c *gin.Context) {
	var req dto.CreateDistributionRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create distribution", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Distribution created successfully")
}

// Get handles GET /distributions/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "distribution")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List handles GET /distributions?project_id=&status=&page=&page_size=
func (h *Handler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := distribution.ListFilter{
		Status:   distribution.Status(c.Query("status")),
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

	items, total, err := h.queries.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}

// Start handles POST /distributions/:id/start
func (h *Handler) Start(c *gin.Context) {
	h.changeStatus(c, usecases.TransitionStart, "Distribution started")
}

// Complete handles POST /distributions/:id/complete
func (h *Handler) Complete(c *gin.Context) {
	h.changeStatus(c, usecases.TransitionComplete, "Distribution completed")
}

// Cancel handles POST /distributions/:id/cancel
func (h *Handler) Cancel(c *gin.Context) {
	h.changeStatus(c, usecases.TransitionCancel, "Distribution cancelled")
}

func (h *Handler) changeStatus(c *gin.Context, transition usecases.Transition, message string) {
	id, err := utils.ParseUintParam(c, "id", "distribution")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.statusUC.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		DistributionID: id,
		Transition:     transition,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// Plan handles POST /distributions/:id/plan. Replaying the same plan returns
// the same record IDs.
// @Summary Plan distribution records
// @Tags Distributions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Distribution ID"
// @Param request body dto.PlanDistributionRequest true "Planned items"
// @Success 200 {object} utils.APIResponse{data=dto.PlanDistributionResponse}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /distributions/{id}/plan [post]
func (h *Handler) Plan(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "distribution")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.PlanDistributionRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for plan distribution", "distribution_id", id, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.planUC.Execute(c.Request.Context(), usecases.PlanDistributionCommand{
		DistributionID: id,
		Items:          req.Items,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Distribution planned", result)
}

// ListRecords handles GET /distributions/:id/records
func (h *Handler) ListRecords(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "distribution")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.queries.ListRecords(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Summary handles GET /distributions/:id/summary
// @Summary Summarize a distribution
// @Tags Distributions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Distribution ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /distributions/{id}/summary [get]
func (h *Handler) Summary(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "distribution")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.reporter.Summarize(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetRecord handles GET /distribution-records/:id
func (h *Handler) GetRecord(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "distribution record")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.queries.GetRecord(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ConfirmRecord handles POST /distribution-records/:id/confirm
// @Summary Confirm a distribution record
// @Description Settles the outcome and draws the actual amount from the entitlement.
// @Tags Distributions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param request body dto.ConfirmRecordRequest true "Outcome"
// @Success 200 {object} utils.APIResponse{data=dto.ConfirmRecordResponse}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /distribution-records/{id}/confirm [post]
func (h *Handler) ConfirmRecord(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "distribution record")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.ConfirmRecordRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for confirm record", "record_id", id, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.confirmUC.Execute(c.Request.Context(), usecases.ConfirmRecordCommand{
		RecordID:     id,
		Status:       distribution.RecordStatus(req.Status),
		ActualAmount: req.ActualAmount,
		Notes:        req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Record confirmed", result)
}
