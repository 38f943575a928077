package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/reliefops/cva/internal/domain/entitlement"
	"github.com/reliefops/cva/internal/infrastructure/persistence/mappers"
	"github.com/reliefops/cva/internal/infrastructure/persistence/models"
	"github.com/reliefops/cva/internal/shared/db"
	apperrors "github.com/reliefops/cva/internal/shared/errors"
	"github.com/reliefops/cva/internal/shared/logger"
)

// EntitlementRepositoryImpl implements entitlement.Repository on gorm
type EntitlementRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.EntitlementMapper
	logger logger.Interface
}

// NewEntitlementRepository creates a new entitlement repository instance
func NewEntitlementRepository(gdb *gorm.DB, log logger.Interface) entitlement.Repository {
	return &EntitlementRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewEntitlementMapper(),
		logger: log,
	}
}

// Create inserts a ledger row. The unique index on (household_id, assistance_type_id)
// decides races between concurrent creators.
func (r *EntitlementRepositoryImpl) Create(ctx context.Context, e *entitlement.Entitlement) error {
	model := r.mapper.ToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return entitlement.ErrDuplicateEntitlement
		}
		r.logger.Errorw("failed to create entitlement",
			"household_id", e.HouseholdID(),
			"assistance_type_id", e.AssistanceTypeID(),
			"error", err)
		return fmt.Errorf("failed to create entitlement: %w", err)
	}

	if err := e.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set entitlement ID: %w", err)
	}
	return nil
}

// Update writes the totals when the stored version is the one the aggregate was loaded with
func (r *EntitlementRepositoryImpl) Update(ctx context.Context, e *entitlement.Entitlement) error {
	model := r.mapper.ToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.EntitlementModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]any{
			"programme_total":   model.ProgrammeTotal,
			"distributed_total": model.DistributedTotal,
			"remaining":         model.Remaining,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update entitlement", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update entitlement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entitlement.ErrVersionConflict
	}
	return nil
}

func (r *EntitlementRepositoryImpl) GetByID(ctx context.Context, id uint) (*entitlement.Entitlement, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("id = ?", id))
}

// GetByIDForUpdate must run inside a transaction for the lock to outlive the query
func (r *EntitlementRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint) (*entitlement.Entitlement, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()).Where("id = ?", id))
}

func (r *EntitlementRepositoryImpl) GetByHouseholdAndType(ctx context.Context, householdID, assistanceTypeID uint) (*entitlement.Entitlement, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).
		Where("household_id = ? AND assistance_type_id = ?", householdID, assistanceTypeID))
}

func (r *EntitlementRepositoryImpl) ListByHousehold(ctx context.Context, householdID uint) ([]*entitlement.Entitlement, error) {
	var rows []*models.EntitlementModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("household_id = ?", householdID).
		Order("assistance_type_id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list entitlements", "household_id", householdID, "error", err)
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}
	return r.mapper.ToEntities(rows)
}

func (r *EntitlementRepositoryImpl) first(query *gorm.DB) (*entitlement.Entitlement, error) {
	var model models.EntitlementModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitlement.ErrEntitlementNotFound
		}
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}
	return r.mapper.ToEntity(&model)
}
