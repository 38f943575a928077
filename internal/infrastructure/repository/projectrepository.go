package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/domain/project"
	"github.com/reliefops/cva/internal/infrastructure/persistence/mappers"
	"github.com/reliefops/cva/internal/infrastructure/persistence/models"
	"github.com/reliefops/cva/internal/shared/db"
	"github.com/reliefops/cva/internal/shared/logger"
)

// ProjectRepositoryImpl implements project.Repository
type ProjectRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(gdb *gorm.DB, log logger.Interface) project.Repository {
	return &ProjectRepositoryImpl{db: gdb, logger: log}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, p *project.Project) error {
	model := mappers.ProjectToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create project", "name", p.Name(), "country", p.CountryCode(), "error", err)
		return fmt.Errorf("failed to create project: %w", err)
	}
	return p.SetID(model.ID)
}

// Update writes details and status under optimistic locking
func (r *ProjectRepositoryImpl) Update(ctx context.Context, p *project.Project) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ProjectModel{}).
		Where("id = ? AND version = ?", p.ID(), p.Version()-1).
		Updates(map[string]any{
			"name":         p.Name(),
			"description":  p.Description(),
			"country_code": p.CountryCode(),
			"start_date":   p.StartDate(),
			"end_date":     p.EndDate(),
			"finance_code": p.FinanceCode(),
			"status":       p.Status().String(),
			"version":      p.Version(),
			"updated_at":   p.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update project", "id", p.ID(), "error", result.Error)
		return fmt.Errorf("failed to update project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return project.ErrVersionConflict
	}
	return nil
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id uint) (*project.Project, error) {
	return r.first(db.GetTxFromContext(ctx, r.db), id)
}

func (r *ProjectRepositoryImpl) GetByIDForShare(ctx context.Context, id uint) (*project.Project, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Scopes(db.ForShare()), id)
}

func (r *ProjectRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint) (*project.Project, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()), id)
}

func (r *ProjectRepositoryImpl) List(ctx context.Context, filter project.ListFilter) ([]*project.Project, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ProjectModel{})
	if filter.CountryCode != "" {
		query = query.Where("country_code = ?", filter.CountryCode)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count projects", "error", err)
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	var rows []models.ProjectModel
	if err := query.
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Order("start_date DESC, id DESC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list projects", "error", err)
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	result := make([]*project.Project, 0, len(rows))
	for i := range rows {
		p, err := mappers.ProjectToEntity(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, nil
}

type ledgerTotalsRow struct {
	Budget      decimal.Decimal
	Distributed decimal.Decimal
}

// Stats reads the household and distribution counts and the entitlement totals
// of the project. Each figure is one query against the caller's transaction.
func (r *ProjectRepositoryImpl) Stats(ctx context.Context, id uint) (*project.Stats, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	stats := &project.Stats{}

	if err := tx.Model(&models.HouseholdModel{}).
		Scopes(db.ByProject(id)).
		Count(&stats.Households).Error; err != nil {
		return nil, r.statsError(id, "households", err)
	}
	if err := tx.Model(&models.DistributionModel{}).
		Scopes(db.ByProject(id)).
		Count(&stats.Distributions).Error; err != nil {
		return nil, r.statsError(id, "distributions", err)
	}
	if err := tx.Model(&models.DistributionModel{}).
		Scopes(db.ByProject(id)).
		Where("status IN ?", []string{distribution.StatusPlanned.String(), distribution.StatusInProgress.String()}).
		Count(&stats.OpenDistributions).Error; err != nil {
		return nil, r.statsError(id, "open distributions", err)
	}

	var totals ledgerTotalsRow
	if err := tx.Model(&models.EntitlementModel{}).
		Select("COALESCE(SUM(entitlements.programme_total), 0) AS budget, "+
			"COALESCE(SUM(entitlements.distributed_total), 0) AS distributed").
		Joins("JOIN households ON households.id = entitlements.household_id").
		Where("households.project_id = ?", id).
		Scan(&totals).Error; err != nil {
		return nil, r.statsError(id, "entitlements", err)
	}
	stats.Budget = totals.Budget.Round(2)
	stats.Distributed = totals.Distributed.Round(2)
	return stats, nil
}

func (r *ProjectRepositoryImpl) statsError(id uint, what string, err error) error {
	r.logger.Errorw("failed to read project stats", "project_id", id, "part", what, "error", err)
	return fmt.Errorf("failed to read project %s: %w", what, err)
}

func (r *ProjectRepositoryImpl) first(tx *gorm.DB, id uint) (*project.Project, error) {
	var model models.ProjectModel
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return mappers.ProjectToEntity(&model)
}
