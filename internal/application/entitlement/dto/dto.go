package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reliefops/cva/internal/domain/entitlement"
)

// CreateEntitlementRequest sets a household's programme total for one assistance type
type CreateEntitlementRequest struct {
	HouseholdID      uint            `json:"household_id" validate:"required"`
	AssistanceTypeID uint            `json:"assistance_type_id" validate:"required"`
	ProgrammeTotal   decimal.Decimal `json:"programme_total" validate:"dec_gte0"`
}

type BalanceResponse struct {
	ProgrammeTotal   decimal.Decimal `json:"programme_total"`
	DistributedTotal decimal.Decimal `json:"distributed_total"`
	Remaining        decimal.Decimal `json:"remaining"`
}

type EntitlementResponse struct {
	ID               uint            `json:"id"`
	HouseholdID      uint            `json:"household_id"`
	AssistanceTypeID uint            `json:"assistance_type_id"`
	ProgrammeTotal   decimal.Decimal `json:"programme_total"`
	DistributedTotal decimal.Decimal `json:"distributed_total"`
	Remaining        decimal.Decimal `json:"remaining"`
	Version          int             `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ApplyDistributionResponse reports the balance left after a draw
type ApplyDistributionResponse struct {
	EntitlementID uint            `json:"entitlement_id"`
	Remaining     decimal.Decimal `json:"remaining"`
}

func ToBalanceResponse(b entitlement.Balance) *BalanceResponse {
	return &BalanceResponse{
		ProgrammeTotal:   b.ProgrammeTotal,
		DistributedTotal: b.DistributedTotal,
		Remaining:        b.Remaining,
	}
}

func ToEntitlementResponse(e *entitlement.Entitlement) *EntitlementResponse {
	return &EntitlementResponse{
		ID:               e.ID(),
		HouseholdID:      e.HouseholdID(),
		AssistanceTypeID: e.AssistanceTypeID(),
		ProgrammeTotal:   e.ProgrammeTotal(),
		DistributedTotal: e.DistributedTotal(),
		Remaining:        e.Remaining(),
		Version:          e.Version(),
		CreatedAt:        e.CreatedAt(),
		UpdatedAt:        e.UpdatedAt(),
	}
}

func ToEntitlementResponses(list []*entitlement.Entitlement) []*EntitlementResponse {
	out := make([]*EntitlementResponse, 0, len(list))
	for _, e := range list {
		out = append(out, ToEntitlementResponse(e))
	}
	return out
}
