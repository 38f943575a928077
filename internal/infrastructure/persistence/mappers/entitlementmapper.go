package mappers

import (
	"fmt"

	"github.com/reliefops/cva/internal/domain/entitlement"
	"github.com/reliefops/cva/internal/infrastructure/persistence/models"
)

// EntitlementMapper handles the conversion between ledger entities and persistence models
type EntitlementMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.EntitlementModel) (*entitlement.Entitlement, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *entitlement.Entitlement) *models.EntitlementModel

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.EntitlementModel) ([]*entitlement.Entitlement, error)
}

type entitlementMapper struct{}

// NewEntitlementMapper creates a new entitlement mapper
func NewEntitlementMapper() EntitlementMapper {
	return &entitlementMapper{}
}

func (m *entitlementMapper) ToEntity(model *models.EntitlementModel) (*entitlement.Entitlement, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := entitlement.ReconstructEntitlement(
		model.ID,
		model.HouseholdID,
		model.AssistanceTypeID,
		model.ProgrammeTotal,
		model.DistributedTotal,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct entitlement entity: %w", err)
	}
	return entity, nil
}

func (m *entitlementMapper) ToModel(entity *entitlement.Entitlement) *models.EntitlementModel {
	if entity == nil {
		return nil
	}

	return &models.EntitlementModel{
		ID:               entity.ID(),
		HouseholdID:      entity.HouseholdID(),
		AssistanceTypeID: entity.AssistanceTypeID(),
		ProgrammeTotal:   entity.ProgrammeTotal(),
		DistributedTotal: entity.DistributedTotal(),
		Remaining:        entity.Remaining(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
		Version:          entity.Version(),
	}
}

func (m *entitlementMapper) ToEntities(models []*models.EntitlementModel) ([]*entitlement.Entitlement, error) {
	entities := make([]*entitlement.Entitlement, 0, len(models))
	for i, model := range models {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map model at index %d (ID %d): %w", i, model.ID, err)
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}
