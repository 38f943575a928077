package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reliefops/cva/internal/shared/constants"
)

// EntitlementModel is the ledger row for one household and assistance type.
// Remaining is stored alongside the totals for reporting queries and is
// always written together with them.
type EntitlementModel struct {
	ID               uint            `gorm:"primarykey"`
	HouseholdID      uint            `gorm:"not null;uniqueIndex:idx_entitlement_household_type,priority:1"`
	AssistanceTypeID uint            `gorm:"not null;uniqueIndex:idx_entitlement_household_type,priority:2;index:idx_entitlement_type"`
	ProgrammeTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DistributedTotal decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Remaining        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Version          int `gorm:"not null;default:1"`
}

// TableName specifies the table name for GORM
func (EntitlementModel) TableName() string {
	return constants.TableEntitlements
}
