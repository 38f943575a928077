package mappers

import (
	"fmt"

	"github.com/reliefops/cva/internal/domain/assistance"
	"github.com/reliefops/cva/internal/infrastructure/persistence/models"
)

// AssistanceTypeToEntity converts a persistence model to an assistance type
func AssistanceTypeToEntity(model *models.AssistanceTypeModel) (*assistance.AssistanceType, error) {
	entity, err := assistance.ReconstructAssistanceType(
		model.ID,
		model.ProjectID,
		model.Name,
		assistance.Kind(model.Kind),
		model.Unit,
		model.UnitValue,
		model.Currency,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct assistance type entity: %w", err)
	}
	return entity, nil
}

// AssistanceTypeToModel converts an assistance type to a persistence model
func AssistanceTypeToModel(entity *assistance.AssistanceType) *models.AssistanceTypeModel {
	return &models.AssistanceTypeModel{
		ID:        entity.ID(),
		ProjectID: entity.ProjectID(),
		Name:      entity.Name(),
		Kind:      string(entity.Kind()),
		Unit:      entity.Unit(),
		UnitValue: entity.UnitValue(),
		Currency:  entity.Currency(),
		CreatedAt: entity.CreatedAt(),
	}
}
