package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/reliefops/cva/internal/domain/household"
	"github.com/reliefops/cva/internal/infrastructure/persistence/mappers"
	"github.com/reliefops/cva/internal/infrastructure/persistence/models"
	"github.com/reliefops/cva/internal/shared/db"
	apperrors "github.com/reliefops/cva/internal/shared/errors"
	"github.com/reliefops/cva/internal/shared/logger"
)

// HouseholdRepositoryImpl implements household.Repository
type HouseholdRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewHouseholdRepository creates a new household repository instance
func NewHouseholdRepository(gdb *gorm.DB, log logger.Interface) household.Repository {
	return &HouseholdRepositoryImpl{
		db:     gdb,
		logger: log,
	}
}

// Create inserts the household and its members in one statement batch
func (r *HouseholdRepositoryImpl) Create(ctx context.Context, h *household.Household) error {
	model := mappers.HouseholdToModel(h)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return household.ErrDuplicateRegistration
		}
		r.logger.Errorw("failed to create household",
			"project_id", h.ProjectID(),
			"registration_number", h.RegistrationNumber(),
			"error", err)
		return fmt.Errorf("failed to create household: %w", err)
	}

	if err := h.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set household ID: %w", err)
	}
	for i, m := range h.Members() {
		m.ID = model.Members[i].ID
	}

	r.logger.Infow("household registered",
		"id", model.ID,
		"project_id", model.ProjectID,
		"members", len(model.Members))
	return nil
}

// Update writes lifecycle and consent fields under optimistic locking
func (r *HouseholdRepositoryImpl) Update(ctx context.Context, h *household.Household) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.HouseholdModel{}).
		Where("id = ? AND version = ?", h.ID(), h.Version()-1).
		Updates(map[string]any{
			"status":        h.Status().String(),
			"consent_given": h.ConsentGiven(),
			"consent_date":  h.ConsentDate(),
			"address":       h.Address(),
			"location_id":   h.LocationID(),
			"version":       h.Version(),
			"updated_at":    h.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update household", "id", h.ID(), "error", result.Error)
		return fmt.Errorf("failed to update household: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return household.ErrVersionConflict
	}
	return nil
}

func (r *HouseholdRepositoryImpl) GetByID(ctx context.Context, id uint) (*household.Household, error) {
	var model models.HouseholdModel
	err := db.GetTxFromContext(ctx, r.db).
		Preload("Members", orderMembers).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, household.ErrHouseholdNotFound
		}
		return nil, fmt.Errorf("failed to get household: %w", err)
	}
	return mappers.HouseholdToEntity(&model)
}

func (r *HouseholdRepositoryImpl) List(ctx context.Context, filter household.ListFilter) ([]*household.Household, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.HouseholdModel{})
	if filter.ProjectID != 0 {
		query = query.Scopes(db.ByProject(filter.ProjectID))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count households", "error", err)
		return nil, 0, fmt.Errorf("failed to count households: %w", err)
	}

	var rows []models.HouseholdModel
	if err := query.
		Preload("Members", orderMembers).
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list households", "error", err)
		return nil, 0, fmt.Errorf("failed to list households: %w", err)
	}

	result := make([]*household.Household, 0, len(rows))
	for i := range rows {
		h, err := mappers.HouseholdToEntity(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, h)
	}
	return result, total, nil
}

func orderMembers(tx *gorm.DB) *gorm.DB {
	return tx.Order("is_head DESC, id ASC")
}
