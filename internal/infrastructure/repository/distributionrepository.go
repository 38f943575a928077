package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/infrastructure/persistence/mappers"
	"github.com/reliefops/cva/internal/infrastructure/persistence/models"
	"github.com/reliefops/cva/internal/shared/db"
	"github.com/reliefops/cva/internal/shared/logger"
)

// DistributionRepositoryImpl implements distribution.Repository
type DistributionRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewDistributionRepository creates a new distribution repository instance
func NewDistributionRepository(gdb *gorm.DB, log logger.Interface) distribution.Repository {
	return &DistributionRepositoryImpl{db: gdb, logger: log}
}

func (r *DistributionRepositoryImpl) Create(ctx context.Context, d *distribution.Distribution) error {
	model := mappers.DistributionToModel(d)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create distribution", "project_id", d.ProjectID(), "name", d.Name(), "error", err)
		return fmt.Errorf("failed to create distribution: %w", err)
	}
	return d.SetID(model.ID)
}

// Update persists a status transition. A concurrent transition on the same row
// surfaces as ErrVersionConflict.
func (r *DistributionRepositoryImpl) Update(ctx context.Context, d *distribution.Distribution) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.DistributionModel{}).
		Where("id = ? AND version = ?", d.ID(), d.Version()-1).
		Updates(map[string]any{
			"status":     d.Status().String(),
			"version":    d.Version(),
			"updated_at": d.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update distribution", "id", d.ID(), "error", result.Error)
		return fmt.Errorf("failed to update distribution: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return distribution.ErrVersionConflict
	}
	return nil
}

func (r *DistributionRepositoryImpl) GetByID(ctx context.Context, id uint) (*distribution.Distribution, error) {
	return r.first(db.GetTxFromContext(ctx, r.db), id)
}

// GetByIDForShare reads the distribution under a shared row lock so that a
// status change by another transaction waits for the caller to commit.
func (r *DistributionRepositoryImpl) GetByIDForShare(ctx context.Context, id uint) (*distribution.Distribution, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "SHARE"})
	}
	return r.first(tx, id)
}

func (r *DistributionRepositoryImpl) List(ctx context.Context, filter distribution.ListFilter) ([]*distribution.Distribution, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.DistributionModel{})
	if filter.ProjectID != 0 {
		query = query.Scopes(db.ByProject(filter.ProjectID))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count distributions: %w", err)
	}

	var rows []models.DistributionModel
	if err := query.
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Order("distribution_date DESC, id DESC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list distributions", "error", err)
		return nil, 0, fmt.Errorf("failed to list distributions: %w", err)
	}

	result := make([]*distribution.Distribution, 0, len(rows))
	for i := range rows {
		d, err := mappers.DistributionToEntity(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, d)
	}
	return result, total, nil
}

func (r *DistributionRepositoryImpl) first(tx *gorm.DB, id uint) (*distribution.Distribution, error) {
	var model models.DistributionModel
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, distribution.ErrDistributionNotFound
		}
		return nil, fmt.Errorf("failed to get distribution: %w", err)
	}
	return mappers.DistributionToEntity(&model)
}
