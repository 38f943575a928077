package mappers

import (
	"fmt"

	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/infrastructure/persistence/models"
)

// DistributionToEntity converts a persistence model to a distribution aggregate
func DistributionToEntity(model *models.DistributionModel) (*distribution.Distribution, error) {
	entity, err := distribution.ReconstructDistribution(
		model.ID,
		model.ProjectID,
		model.Name,
		model.DistributionDate,
		model.LocationID,
		distribution.Status(model.Status),
		model.CreatedBy,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct distribution entity: %w", err)
	}
	return entity, nil
}

// DistributionToModel converts a distribution aggregate to a persistence model
func DistributionToModel(entity *distribution.Distribution) *models.DistributionModel {
	return &models.DistributionModel{
		ID:               entity.ID(),
		ProjectID:        entity.ProjectID(),
		Name:             entity.Name(),
		DistributionDate: entity.DistributionDate(),
		LocationID:       entity.LocationID(),
		Status:           entity.Status().String(),
		CreatedBy:        entity.CreatedBy(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
		Version:          entity.Version(),
	}
}

// RecordToEntity converts a persistence model to a distribution record
func RecordToEntity(model *models.DistributionRecordModel) (*distribution.Record, error) {
	entity, err := distribution.ReconstructRecord(
		model.ID,
		model.DistributionID,
		model.HouseholdID,
		model.EntitlementID,
		model.AssistanceTypeID,
		model.PlannedAmount,
		model.ActualAmount,
		distribution.RecordStatus(model.Status),
		model.DistributedAt,
		model.Notes,
		model.ConfirmedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct distribution record entity: %w", err)
	}
	return entity, nil
}

// RecordToModel converts a distribution record to a persistence model
func RecordToModel(entity *distribution.Record) *models.DistributionRecordModel {
	return &models.DistributionRecordModel{
		ID:               entity.ID(),
		DistributionID:   entity.DistributionID(),
		HouseholdID:      entity.HouseholdID(),
		AssistanceTypeID: entity.AssistanceTypeID(),
		EntitlementID:    entity.EntitlementID(),
		PlannedAmount:    entity.PlannedAmount(),
		ActualAmount:     entity.ActualAmount(),
		Status:           entity.Status().String(),
		DistributedAt:    entity.DistributedAt(),
		Notes:            entity.Notes(),
		ConfirmedBy:      entity.ConfirmedBy(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}
}
