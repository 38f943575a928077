package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/reliefops/cva/internal/domain/assistance"
	"github.com/reliefops/cva/internal/infrastructure/persistence/mappers"
	"github.com/reliefops/cva/internal/infrastructure/persistence/models"
	"github.com/reliefops/cva/internal/shared/db"
	apperrors "github.com/reliefops/cva/internal/shared/errors"
	"github.com/reliefops/cva/internal/shared/logger"
)

// AssistanceTypeRepositoryImpl implements assistance.Repository
type AssistanceTypeRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewAssistanceTypeRepository creates a new assistance type repository instance
func NewAssistanceTypeRepository(gdb *gorm.DB, log logger.Interface) assistance.Repository {
	return &AssistanceTypeRepositoryImpl{db: gdb, logger: log}
}

func (r *AssistanceTypeRepositoryImpl) Create(ctx context.Context, a *assistance.AssistanceType) error {
	model := mappers.AssistanceTypeToModel(a)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return assistance.ErrDuplicateName
		}
		r.logger.Errorw("failed to create assistance type", "project_id", a.ProjectID(), "name", a.Name(), "error", err)
		return fmt.Errorf("failed to create assistance type: %w", err)
	}
	return a.SetID(model.ID)
}

func (r *AssistanceTypeRepositoryImpl) GetByID(ctx context.Context, id uint) (*assistance.AssistanceType, error) {
	var model models.AssistanceTypeModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assistance.ErrAssistanceTypeNotFound
		}
		return nil, fmt.Errorf("failed to get assistance type: %w", err)
	}
	return mappers.AssistanceTypeToEntity(&model)
}

func (r *AssistanceTypeRepositoryImpl) ListByProject(ctx context.Context, projectID uint) ([]*assistance.AssistanceType, error) {
	var rows []models.AssistanceTypeModel
	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ByProject(projectID)).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list assistance types", "project_id", projectID, "error", err)
		return nil, fmt.Errorf("failed to list assistance types: %w", err)
	}

	result := make([]*assistance.AssistanceType, 0, len(rows))
	for i := range rows {
		a, err := mappers.AssistanceTypeToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}
