package models

import (
	"time"

	"github.com/reliefops/cva/internal/shared/constants"
)

// ProjectModel represents the database persistence model for projects
type ProjectModel struct {
	ID          uint       `gorm:"primarykey"`
	Name        string     `gorm:"not null;size:200"`
	Description string     `gorm:"type:text"`
	CountryCode string     `gorm:"not null;size:2;index:idx_project_country_status,priority:1"`
	StartDate   time.Time  `gorm:"not null"`
	EndDate     *time.Time
	FinanceCode string     `gorm:"size:50;index"`
	Status      string     `gorm:"not null;size:20;default:draft;index:idx_project_country_status,priority:2"`
	CreatedBy   string     `gorm:"size:64"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int `gorm:"not null;default:1"`
}

// TableName specifies the table name for GORM
func (ProjectModel) TableName() string {
	return constants.TableProjects
}
