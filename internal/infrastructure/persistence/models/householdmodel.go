package models

import (
	"time"

	"github.com/reliefops/cva/internal/shared/constants"
)

// HouseholdModel represents the database persistence model for households
type HouseholdModel struct {
	ID                 uint       `gorm:"primarykey"`
	ProjectID          uint       `gorm:"not null;uniqueIndex:idx_household_project_regno,priority:1;index:idx_household_project_status,priority:1"`
	RegistrationNumber string     `gorm:"not null;size:64;uniqueIndex:idx_household_project_regno,priority:2"`
	LocationID         *uint      `gorm:"index"`
	Address            string     `gorm:"size:500"`
	Status             string     `gorm:"not null;size:20;default:registered;index:idx_household_project_status,priority:2"`
	ConsentGiven       bool       `gorm:"not null;default:false"`
	ConsentDate        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int `gorm:"not null;default:1"`

	Members []BeneficiaryModel `gorm:"foreignKey:HouseholdID"`
}

// TableName specifies the table name for GORM
func (HouseholdModel) TableName() string {
	return constants.TableHouseholds
}

// BeneficiaryModel is a household member row
type BeneficiaryModel struct {
	ID          uint   `gorm:"primarykey"`
	HouseholdID uint   `gorm:"not null;index"`
	FirstName   string `gorm:"not null;size:100"`
	LastName    string `gorm:"not null;size:100"`
	DateOfBirth *time.Time
	Gender      string `gorm:"size:10"`
	NationalID  string `gorm:"size:64;index"`
	Phone       string `gorm:"size:32"`
	Email       string `gorm:"size:255"`
	IsHead      bool   `gorm:"not null;default:false"`
	IsProxy     bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (BeneficiaryModel) TableName() string {
	return constants.TableBeneficiaries
}
