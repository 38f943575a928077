package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reliefops/cva/internal/domain/assistance"
)

type CreateAssistanceTypeRequest struct {
	ProjectID    uint            `json:"project_id" validate:"required"`
	Name         string          `json:"name" validate:"required,max=100"`
	Kind         string          `json:"kind" validate:"required,oneof=cash voucher goods services"`
	Unit         string          `json:"unit" validate:"required,max=50"`
	UnitValue    decimal.Decimal `json:"unit_value" validate:"dec_gt0"`
	CurrencyCode string          `json:"currency_code" validate:"required,iso4217"`
}

type AssistanceTypeResponse struct {
	ID           uint            `json:"id"`
	ProjectID    uint            `json:"project_id"`
	Name         string          `json:"name"`
	Kind         string          `json:"kind"`
	Unit         string          `json:"unit"`
	UnitValue    decimal.Decimal `json:"unit_value"`
	CurrencyCode string          `json:"currency_code"`
	CreatedAt    time.Time       `json:"created_at"`
}

func ToAssistanceTypeResponse(a *assistance.AssistanceType) *AssistanceTypeResponse {
	return &AssistanceTypeResponse{
		ID:           a.ID(),
		ProjectID:    a.ProjectID(),
		Name:         a.Name(),
		Kind:         string(a.Kind()),
		Unit:         a.Unit(),
		UnitValue:    a.UnitValue(),
		CurrencyCode: a.Currency(),
		CreatedAt:    a.CreatedAt(),
	}
}
