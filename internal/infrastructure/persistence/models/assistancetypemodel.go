package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reliefops/cva/internal/shared/constants"
)

// AssistanceTypeModel is append-only reference data; it has no UpdatedAt.
type AssistanceTypeModel struct {
	ID        uint            `gorm:"primarykey"`
	ProjectID uint            `gorm:"not null;uniqueIndex:idx_assistance_project_name,priority:1"`
	Name      string          `gorm:"not null;size:100;uniqueIndex:idx_assistance_project_name,priority:2"`
	Kind      string          `gorm:"not null;size:20"`
	Unit      string          `gorm:"not null;size:50"`
	UnitValue decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency  string          `gorm:"not null;size:3"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (AssistanceTypeModel) TableName() string {
	return constants.TableAssistanceTypes
}
