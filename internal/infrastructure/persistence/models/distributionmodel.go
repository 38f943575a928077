package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reliefops/cva/internal/shared/constants"
)

// DistributionModel represents the database persistence model for distribution events
type DistributionModel struct {
	ID               uint      `gorm:"primarykey"`
	ProjectID        uint      `gorm:"not null;index:idx_distribution_project_status,priority:1"`
	Name             string    `gorm:"not null;size:200"`
	DistributionDate time.Time `gorm:"not null"`
	LocationID       *uint     `gorm:"index"`
	Status           string    `gorm:"not null;size:20;default:planned;index:idx_distribution_project_status,priority:2"`
	CreatedBy        string    `gorm:"size:64"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Version          int `gorm:"not null;default:1"`
}

// TableName specifies the table name for GORM
func (DistributionModel) TableName() string {
	return constants.TableDistributions
}

// DistributionRecordModel is one planned line item. The unique index on the
// natural key makes planning retry-safe.
type DistributionRecordModel struct {
	ID               uint             `gorm:"primarykey"`
	DistributionID   uint             `gorm:"not null;uniqueIndex:idx_record_natural_key,priority:1;index:idx_record_distribution_status,priority:1"`
	HouseholdID      uint             `gorm:"not null;uniqueIndex:idx_record_natural_key,priority:2"`
	AssistanceTypeID uint             `gorm:"not null;uniqueIndex:idx_record_natural_key,priority:3"`
	EntitlementID    uint             `gorm:"not null;index"`
	PlannedAmount    decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	ActualAmount     *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Status           string           `gorm:"not null;size:20;default:pending;index:idx_record_distribution_status,priority:2"`
	DistributedAt    *time.Time
	Notes            string `gorm:"size:1000"`
	ConfirmedBy      string `gorm:"size:64"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (DistributionRecordModel) TableName() string {
	return constants.TableDistributionRecords
}
