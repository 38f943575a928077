package project

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reliefops/cva/internal/application/project/dto"
	"github.com/reliefops/cva/internal/domain/project"
	"github.com/reliefops/cva/internal/shared/logger"
	"github.com/reliefops/cva/internal/shared/utils"
)

type Service interface {
	Create(ctx context.Context, req dto.ProjectRequest) (*dto.ProjectResponse, error)
	Get(ctx context.Context, id uint) (*dto.ProjectResponse, error)
	List(ctx context.Context, filter project.ListFilter) ([]*dto.ProjectResponse, int64, error)
	Update(ctx context.Context, id uint, req dto.ProjectRequest) (*dto.ProjectResponse, error)
	Activate(ctx context.Context, id uint) (*dto.ProjectResponse, error)
	Close(ctx context.Context, id uint) (*dto.ProjectResponse, error)
	Summary(ctx context.Context, id uint) (*project.Summary, error)
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

// Create handles POST /projects
func (h *Handler) Create(c *gin.Context) {
	var req dto.ProjectRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create project", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Project created successfully")
}

// List handles GET /projects?country=&status=&page=&page_size=
func (h *Handler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := project.ListFilter{
		CountryCode: strings.ToUpper(c.Query("country")),
		Status:      project.Status(c.Query("status")),
		Page:        p.Page,
		PageSize:    p.PageSize,
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}

// Get handles GET /projects/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "project")
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

// Update handles PUT /projects/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.ProjectRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update project", "project_id", id, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Project updated successfully", result)
}

// Activate handles POST /projects/:id/activate
func (h *Handler) Activate(c *gin.Context) {
	h.change(c, h.service.Activate, "Project activated")
}

// Close handles POST /projects/:id/close
func (h *Handler) Close(c *gin.Context) {
	h.change(c, h.service.Close, "Project closed")
}

// Summary handles GET /projects/:id/summary
func (h *Handler) Summary(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "project")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Summary(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *Handler) change(c *gin.Context, fn func(ctx context.Context, id uint) (*dto.ProjectResponse, error), message string) {
	id, err := utils.ParseUintParam(c, "id", "project")
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
