package mappers

import (
	"fmt"

	"github.com/reliefops/cva/internal/domain/project"
	"github.com/reliefops/cva/internal/infrastructure/persistence/models"
)

func ProjectToEntity(model *models.ProjectModel) (*project.Project, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := project.ReconstructProject(
		model.ID,
		model.Name,
		model.Description,
		model.CountryCode,
		model.StartDate,
		model.EndDate,
		model.FinanceCode,
		project.Status(model.Status),
		model.CreatedBy,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct project entity: %w", err)
	}
	return entity, nil
}

func ProjectToModel(entity *project.Project) *models.ProjectModel {
	return &models.ProjectModel{
		ID:          entity.ID(),
		Name:        entity.Name(),
		Description: entity.Description(),
		CountryCode: entity.CountryCode(),
		StartDate:   entity.StartDate(),
		EndDate:     entity.EndDate(),
		FinanceCode: entity.FinanceCode(),
		Status:      entity.Status().String(),
		CreatedBy:   entity.CreatedBy(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
		Version:     entity.Version(),
	}
}
