package dto

import (
	"time"

	"github.com/reliefops/cva/internal/domain/project"
)

type ProjectRequest struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	CountryCode string     `json:"country_code" validate:"required,len=2"`
	StartDate   time.Time  `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	FinanceCode string     `json:"finance_code" validate:"max=50"`
}

type ProjectResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CountryCode string     `json:"country_code"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	FinanceCode string     `json:"finance_code,omitempty"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"created_by,omitempty"`
	Version     int        `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (r ProjectRequest) ToDetails() project.Details {
	return project.Details{
		Name:        r.Name,
		Description: r.Description,
		CountryCode: r.CountryCode,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		FinanceCode: r.FinanceCode,
	}
}

func ToProjectResponse(p *project.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		CountryCode: p.CountryCode(),
		StartDate:   p.StartDate(),
		EndDate:     p.EndDate(),
		FinanceCode: p.FinanceCode(),
		Status:      p.Status().String(),
		CreatedBy:   p.CreatedBy(),
		Version:     p.Version(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}
