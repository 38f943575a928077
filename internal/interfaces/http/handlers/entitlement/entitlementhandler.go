package entitlement

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reliefops/cva/internal/application/entitlement/dto"
	"github.com/reliefops/cva/internal/shared/logger"
	"github.com/reliefops/cva/internal/shared/utils"
)

// Ledger is the subset of the entitlement ledger exposed over HTTP.
// ApplyDistribution is reached only through record confirmation.
type Ledger interface {
	GetBalance(ctx context.Context, householdID, assistanceTypeID uint) (*dto.BalanceResponse, error)
	Get(ctx context.Context, entitlementID uint) (*dto.EntitlementResponse, error)
	ListByHousehold(ctx context.Context, householdID uint) ([]*dto.EntitlementResponse, error)
	CreateEntitlement(ctx context.Context, req dto.CreateEntitlementRequest) (*dto.EntitlementResponse, error)
	ZeroOut(ctx context.Context, entitlementID uint) (*dto.EntitlementResponse, error)
}

type Handler struct {
	ledger Ledger
	logger logger.Interface
}

func NewHandler(ledger Ledger, log logger.Interface) *Handler {
	return &Handler{
		ledger: ledger,
		logger: log,
	}
}

// Create handles POST /entitlements
func (h *Handler) Create(c *gin.Context) {
	var req dto.CreateEntitlementRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create entitlement", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.ledger.CreateEntitlement(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Entitlement created successfully")
}

// GetBalance handles GET /entitlements/balance?household_id=&assistance_type_id=
// @Summary Get remaining balance
// @Tags Entitlements
// @Produce json
// @Security BearerAuth
// @Param household_id query int true "Household ID"
// @Param assistance_type_id query int true "Assistance type ID"
// @Success 200 {object} utils.APIResponse{data=dto.BalanceResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /entitlements/balance [get]
func (h *Handler) GetBalance(c *gin.Context) {
	householdID, err := utils.ParseUintQuery(c, "household_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	assistanceTypeID, err := utils.ParseUintQuery(c, "assistance_type_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.ledger.GetBalance(c.Request.Context(), householdID, assistanceTypeID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Get handles GET /entitlements/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "entitlement")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.ledger.Get(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListByHousehold handles GET /households/:id/entitlements
func (h *Handler) ListByHousehold(c *gin.Context) {
	householdID, err := utils.ParseUintParam(c, "id", "household")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.ledger.ListByHousehold(c.Request.Context(), householdID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ZeroOut handles POST /entitlements/:id/zero-out
func (h *Handler) ZeroOut(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "entitlement")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.ledger.ZeroOut(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Entitlement zeroed out", result)
}
