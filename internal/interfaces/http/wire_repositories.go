package http

import (
	"gorm.io/gorm"

	"github.com/reliefops/cva/internal/domain/assistance"
	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/domain/entitlement"
	"github.com/reliefops/cva/internal/domain/household"
	"github.com/reliefops/cva/internal/domain/project"
	"github.com/reliefops/cva/internal/infrastructure/repository"
	"github.com/reliefops/cva/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	projects      project.Repository
	households    household.Repository
	assistance    assistance.Repository
	entitlements  entitlement.Repository
	distributions distribution.Repository
	records       distribution.RecordRepository
	auditLog      audit.Repository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		projects:      repository.NewProjectRepository(db, log),
		households:    repository.NewHouseholdRepository(db, log),
		assistance:    repository.NewAssistanceTypeRepository(db, log),
		entitlements:  repository.NewEntitlementRepository(db, log),
		distributions: repository.NewDistributionRepository(db, log),
		records:       repository.NewDistributionRecordRepository(db, log),
		auditLog:      repository.NewAuditLogRepository(db, log),
	}
}
