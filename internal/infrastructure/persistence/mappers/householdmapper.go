package mappers

import (
	"fmt"

	"github.com/reliefops/cva/internal/domain/household"
	"github.com/reliefops/cva/internal/infrastructure/persistence/models"
)

// HouseholdToEntity rebuilds a household with whatever members were preloaded
func HouseholdToEntity(model *models.HouseholdModel) (*household.Household, error) {
	if model == nil {
		return nil, nil
	}

	members := make([]*household.Beneficiary, 0, len(model.Members))
	for _, m := range model.Members {
		members = append(members, &household.Beneficiary{
			ID:          m.ID,
			FirstName:   m.FirstName,
			LastName:    m.LastName,
			DateOfBirth: m.DateOfBirth,
			Gender:      household.Gender(m.Gender),
			NationalID:  m.NationalID,
			Phone:       m.Phone,
			Email:       m.Email,
			IsHead:      m.IsHead,
			IsProxy:     m.IsProxy,
		})
	}

	entity, err := household.ReconstructHousehold(
		model.ID,
		model.ProjectID,
		model.RegistrationNumber,
		model.LocationID,
		model.Address,
		household.Status(model.Status),
		model.ConsentGiven,
		model.ConsentDate,
		members,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct household entity: %w", err)
	}
	return entity, nil
}

// HouseholdToModel converts a household and its members to persistence models
func HouseholdToModel(entity *household.Household) *models.HouseholdModel {
	model := &models.HouseholdModel{
		ID:                 entity.ID(),
		ProjectID:          entity.ProjectID(),
		RegistrationNumber: entity.RegistrationNumber(),
		LocationID:         entity.LocationID(),
		Address:            entity.Address(),
		Status:             entity.Status().String(),
		ConsentGiven:       entity.ConsentGiven(),
		ConsentDate:        entity.ConsentDate(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
		Version:            entity.Version(),
	}
	for _, m := range entity.Members() {
		model.Members = append(model.Members, models.BeneficiaryModel{
			ID:          m.ID,
			HouseholdID: entity.ID(),
			FirstName:   m.FirstName,
			LastName:    m.LastName,
			DateOfBirth: m.DateOfBirth,
			Gender:      string(m.Gender),
			NationalID:  m.NationalID,
			Phone:       m.Phone,
			Email:       m.Email,
			IsHead:      m.IsHead,
			IsProxy:     m.IsProxy,
		})
	}
	return model
}
