package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/infrastructure/persistence/mappers"
	"github.com/reliefops/cva/internal/infrastructure/persistence/models"
	"github.com/reliefops/cva/internal/shared/db"
	"github.com/reliefops/cva/internal/shared/logger"
)

// DistributionRecordRepositoryImpl implements distribution.RecordRepository
type DistributionRecordRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewDistributionRecordRepository creates a new record repository instance
func NewDistributionRecordRepository(gdb *gorm.DB, log logger.Interface) distribution.RecordRepository {
	return &DistributionRecordRepositoryImpl{db: gdb, logger: log}
}

// CreateIfAbsent inserts with ON CONFLICT DO NOTHING on the natural key and then
// resolves every key to its stored ID, so retries return the original IDs.
func (r *DistributionRecordRepositoryImpl) CreateIfAbsent(ctx context.Context, records []*distribution.Record) ([]uint, error) {
	if len(records) == 0 {
		return []uint{}, nil
	}
	tx := db.GetTxFromContext(ctx, r.db)

	rows := make([]*models.DistributionRecordModel, 0, len(records))
	householdIDs := make([]uint, 0, len(records))
	distributionID := records[0].DistributionID()
	for _, rec := range records {
		if rec.DistributionID() != distributionID {
			return nil, fmt.Errorf("records span distributions %d and %d", distributionID, rec.DistributionID())
		}
		rows = append(rows, mappers.RecordToModel(rec))
		householdIDs = append(householdIDs, rec.HouseholdID())
	}

	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		r.logger.Errorw("failed to insert distribution records",
			"distribution_id", distributionID,
			"count", len(rows),
			"error", err)
		return nil, fmt.Errorf("failed to insert distribution records: %w", err)
	}

	var stored []models.DistributionRecordModel
	if err := tx.
		Select("id", "household_id", "assistance_type_id").
		Where("distribution_id = ? AND household_id IN ?", distributionID, householdIDs).
		Find(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve distribution record IDs: %w", err)
	}

	byKey := make(map[distribution.RecordKey]uint, len(stored))
	for _, s := range stored {
		byKey[distribution.RecordKey{
			DistributionID:   distributionID,
			HouseholdID:      s.HouseholdID,
			AssistanceTypeID: s.AssistanceTypeID,
		}] = s.ID
	}

	ids := make([]uint, 0, len(records))
	for _, rec := range records {
		id, ok := byKey[rec.Key()]
		if !ok {
			return nil, fmt.Errorf("distribution record for household %d and assistance type %d was not stored",
				rec.HouseholdID(), rec.AssistanceTypeID())
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *DistributionRecordRepositoryImpl) GetByID(ctx context.Context, id uint) (*distribution.Record, error) {
	var model models.DistributionRecordModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, distribution.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get distribution record: %w", err)
	}
	return mappers.RecordToEntity(&model)
}

func (r *DistributionRecordRepositoryImpl) ListByDistribution(ctx context.Context, distributionID uint) ([]*distribution.Record, error) {
	var rows []models.DistributionRecordModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("distribution_id = ?", distributionID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list distribution records", "distribution_id", distributionID, "error", err)
		return nil, fmt.Errorf("failed to list distribution records: %w", err)
	}

	records := make([]*distribution.Record, 0, len(rows))
	for i := range rows {
		rec, err := mappers.RecordToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ConfirmIfOpen guards the write on both the record still being pending and the
// owning distribution still being open at the moment of the update.
func (r *DistributionRecordRepositoryImpl) ConfirmIfOpen(ctx context.Context, rec *distribution.Record) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	openDistribution := r.db.Session(&gorm.Session{NewDB: true}).
		Model(&models.DistributionModel{}).
		Select("1").
		Where("distributions.id = distribution_records.distribution_id").
		Where("distributions.status IN ?", []string{
			distribution.StatusPlanned.String(),
			distribution.StatusInProgress.String(),
		})

	result := tx.Model(&models.DistributionRecordModel{}).
		Where("id = ? AND status = ?", rec.ID(), distribution.RecordStatusPending.String()).
		Where("EXISTS (?)", openDistribution).
		Updates(map[string]any{
			"status":         rec.Status().String(),
			"actual_amount":  rec.ActualAmount(),
			"distributed_at": rec.DistributedAt(),
			"notes":          rec.Notes(),
			"confirmed_by":   rec.ConfirmedBy(),
			"updated_at":     rec.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to confirm distribution record", "id", rec.ID(), "error", result.Error)
		return false, fmt.Errorf("failed to confirm distribution record: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

type statusAggregateRow struct {
	Status  string
	Count   int64
	Planned decimal.Decimal
	Actual  decimal.Decimal
}

// Aggregate sums planned and actual amounts per status in one grouped query.
// A missing actual amount counts as zero.
func (r *DistributionRecordRepositoryImpl) Aggregate(ctx context.Context, distributionID uint) (*distribution.Aggregate, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.DistributionRecordModel{}).
		Where("distribution_id = ?", distributionID)
	agg, err := aggregateByStatus(query)
	if err != nil {
		r.logger.Errorw("failed to aggregate distribution records", "distribution_id", distributionID, "error", err)
		return nil, err
	}
	return agg, nil
}

// AggregateByProject runs the same grouping over every distribution of the project.
func (r *DistributionRecordRepositoryImpl) AggregateByProject(ctx context.Context, projectID uint) (*distribution.Aggregate, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.DistributionRecordModel{}).
		Where("distribution_id IN (?)", tx.Model(&models.DistributionModel{}).Select("id").Scopes(db.ByProject(projectID)))
	agg, err := aggregateByStatus(query)
	if err != nil {
		r.logger.Errorw("failed to aggregate project records", "project_id", projectID, "error", err)
		return nil, err
	}
	return agg, nil
}

func aggregateByStatus(query *gorm.DB) (*distribution.Aggregate, error) {
	var rows []statusAggregateRow
	if err := query.
		Select("status, COUNT(*) AS count, " +
			"COALESCE(SUM(planned_amount), 0) AS planned, " +
			"COALESCE(SUM(COALESCE(actual_amount, 0)), 0) AS actual").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate distribution records: %w", err)
	}

	agg := &distribution.Aggregate{ByStatus: make([]distribution.StatusTotals, 0, len(rows))}
	for _, row := range rows {
		agg.ByStatus = append(agg.ByStatus, distribution.StatusTotals{
			Status:  distribution.RecordStatus(row.Status),
			Count:   row.Count,
			Planned: row.Planned.Round(2),
			Actual:  row.Actual.Round(2),
		})
	}
	return agg, nil
}
