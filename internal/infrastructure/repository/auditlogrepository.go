package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/infrastructure/persistence/mappers"
	"github.com/reliefops/cva/internal/infrastructure/persistence/models"
	"github.com/reliefops/cva/internal/shared/db"
	"github.com/reliefops/cva/internal/shared/logger"
)

// AuditLogRepositoryImpl implements audit.Repository. Entries are never updated.
type AuditLogRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewAuditLogRepository creates a new audit log repository instance
func NewAuditLogRepository(gdb *gorm.DB, log logger.Interface) audit.Repository {
	return &AuditLogRepositoryImpl{db: gdb, logger: log}
}

// Append writes the entry in the caller's transaction when there is one
func (r *AuditLogRepositoryImpl) Append(ctx context.Context, entry *audit.Entry) error {
	model, err := mappers.AuditEntryToModel(entry)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to append audit entry",
			"table", entry.TableName,
			"record_id", entry.RecordID,
			"action", entry.Action,
			"error", err)
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	entry.ID = model.ID
	return nil
}

func (r *AuditLogRepositoryImpl) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.AuditLogModel{})
	if filter.TableName != "" {
		query = query.Where("table_name = ?", filter.TableName)
	}
	if filter.RecordID != 0 {
		query = query.Where("record_id = ?", filter.RecordID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	var rows []models.AuditLogModel
	if err := query.
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Order("id DESC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list audit entries", "error", err)
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]*audit.Entry, 0, len(rows))
	for i := range rows {
		e, err := mappers.AuditEntryToEntity(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, nil
}
