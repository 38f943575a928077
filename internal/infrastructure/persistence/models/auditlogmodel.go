package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/reliefops/cva/internal/shared/constants"
)

// AuditLogModel is an append-only change log row
type AuditLogModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    string `gorm:"not null;size:64;index"`
	Action    string `gorm:"not null;size:40"`
	TableRef  string `gorm:"column:table_name;not null;size:64;index:idx_audit_table_record,priority:1"`
	RecordID  uint   `gorm:"not null;index:idx_audit_table_record,priority:2"`
	OldValues datatypes.JSON
	NewValues datatypes.JSON
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the table name for GORM
func (AuditLogModel) TableName() string {
	return constants.TableAuditLogs
}
