package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Paginate is a GORM scope applying LIMIT/OFFSET for 1-based pages.
//
// Example usage:
//
//	db.Model(&models.HouseholdModel{}).Scopes(db.Paginate(2, 20)).Find(&rows)
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// ByProject filters rows owned by the given project.
func ByProject(projectID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("project_id = ?", projectID)
	}
}

// ForUpdate takes a row lock for the rest of the transaction.
// SQLite has no row locks and ignores the clause.
func ForUpdate() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if db.Dialector != nil && db.Dialector.Name() == "sqlite" {
			return db
		}
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
}

// ForShare takes a shared row lock for the rest of the transaction.
// SQLite has no row locks and ignores the clause.
func ForShare() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if db.Dialector != nil && db.Dialector.Name() == "sqlite" {
			return db
		}
		return db.Clauses(clause.Locking{Strength: "SHARE"})
	}
}
