package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reliefops/cva/internal/domain/distribution"
)

type CreateDistributionRequest struct {
	ProjectID        uint      `json:"project_id" validate:"required"`
	Name             string    `json:"name" validate:"required,max=200"`
	DistributionDate time.Time `json:"distribution_date" validate:"required"`
	LocationID       *uint     `json:"location_id,omitempty"`
}

// PlanItem is one household and assistance type to be served, with the amount planned for it
type PlanItem struct {
	HouseholdID      uint            `json:"household_id" validate:"required"`
	AssistanceTypeID uint            `json:"assistance_type_id" validate:"required"`
	PlannedAmount    decimal.Decimal `json:"planned_amount" validate:"dec_gt0"`
}

type PlanDistributionRequest struct {
	Items []PlanItem `json:"items" validate:"required,min=1,dive"`
}

type PlanDistributionResponse struct {
	DistributionID uint   `json:"distribution_id"`
	RecordIDs      []uint `json:"record_ids"`
}

// ConfirmRecordRequest carries the outcome reported from the field.
// ActualAmount may be omitted for a missed record.
type ConfirmRecordRequest struct {
	Status       string           `json:"status" validate:"required"`
	ActualAmount *decimal.Decimal `json:"actual_amount,omitempty"`
	Notes        string           `json:"notes" validate:"max=1000"`
}

type DistributionResponse struct {
	ID               uint      `json:"id"`
	ProjectID        uint      `json:"project_id"`
	Name             string    `json:"name"`
	DistributionDate time.Time `json:"distribution_date"`
	LocationID       *uint     `json:"location_id,omitempty"`
	Status           string    `json:"status"`
	CreatedBy        string    `json:"created_by"`
	Version          int       `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type RecordResponse struct {
	ID               uint             `json:"id"`
	DistributionID   uint             `json:"distribution_id"`
	HouseholdID      uint             `json:"household_id"`
	EntitlementID    uint             `json:"entitlement_id"`
	AssistanceTypeID uint             `json:"assistance_type_id"`
	PlannedAmount    decimal.Decimal  `json:"planned_amount"`
	ActualAmount     *decimal.Decimal `json:"actual_amount"`
	Status           string           `json:"status"`
	DistributedAt    *time.Time       `json:"distributed_at,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	ConfirmedBy      string           `json:"confirmed_by,omitempty"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ConfirmRecordResponse is the confirmed record plus the entitlement balance it left behind.
// Remaining is nil when the outcome did not draw on the ledger.
type ConfirmRecordResponse struct {
	Record    *RecordResponse  `json:"record"`
	Remaining *decimal.Decimal `json:"remaining,omitempty"`
}

func ToDistributionResponse(d *distribution.Distribution) *DistributionResponse {
	return &DistributionResponse{
		ID:               d.ID(),
		ProjectID:        d.ProjectID(),
		Name:             d.Name(),
		DistributionDate: d.DistributionDate(),
		LocationID:       d.LocationID(),
		Status:           d.Status().String(),
		CreatedBy:        d.CreatedBy(),
		Version:          d.Version(),
		CreatedAt:        d.CreatedAt(),
		UpdatedAt:        d.UpdatedAt(),
	}
}

func ToDistributionResponses(list []*distribution.Distribution) []*DistributionResponse {
	out := make([]*DistributionResponse, 0, len(list))
	for _, d := range list {
		out = append(out, ToDistributionResponse(d))
	}
	return out
}

func ToRecordResponse(r *distribution.Record) *RecordResponse {
	return &RecordResponse{
		ID:               r.ID(),
		DistributionID:   r.DistributionID(),
		HouseholdID:      r.HouseholdID(),
		EntitlementID:    r.EntitlementID(),
		AssistanceTypeID: r.AssistanceTypeID(),
		PlannedAmount:    r.PlannedAmount(),
		ActualAmount:     r.ActualAmount(),
		Status:           r.Status().String(),
		DistributedAt:    r.DistributedAt(),
		Notes:            r.Notes(),
		ConfirmedBy:      r.ConfirmedBy(),
		UpdatedAt:        r.UpdatedAt(),
	}
}

func ToRecordResponses(list []*distribution.Record) []*RecordResponse {
	out := make([]*RecordResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ToRecordResponse(r))
	}
	return out
}
