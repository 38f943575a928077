// Package apptest wires the real repositories over an in-memory SQLite database
// for application-level tests.
package apptest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	auditApp "github.com/reliefops/cva/internal/application/audit"
	projectApp "github.com/reliefops/cva/internal/application/project"
	"github.com/reliefops/cva/internal/domain/assistance"
	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/domain/entitlement"
	"github.com/reliefops/cva/internal/domain/household"
	"github.com/reliefops/cva/internal/domain/project"
	"github.com/reliefops/cva/internal/infrastructure/lock"
	"github.com/reliefops/cva/internal/infrastructure/persistence/testdb"
	"github.com/reliefops/cva/internal/infrastructure/repository"
	"github.com/reliefops/cva/internal/shared/db"
	"github.com/reliefops/cva/internal/shared/logger"
)

// ProjectID is the active project every Env starts with.
const ProjectID uint = 1

type Env struct {
	DB            *gorm.DB
	Projects      project.Repository
	ProjectGuard  *projectApp.Service
	Households    household.Repository
	Assistance    assistance.Repository
	Entitlements  entitlement.Repository
	Distributions distribution.Repository
	Records       distribution.RecordRepository
	AuditLog      audit.Repository
	Recorder      *auditApp.Recorder
	Tx            *db.TransactionManager
	Locker        *lock.LocalLocker
	Logger        logger.Interface
}

func New(t *testing.T) *Env {
	t.Helper()
	gdb := testdb.New(t)
	log := logger.NewNopLogger()
	auditRepo := repository.NewAuditLogRepository(gdb, log)
	projects := repository.NewProjectRepository(gdb, log)
	records := repository.NewDistributionRecordRepository(gdb, log)
	recorder := auditApp.NewRecorder(auditRepo, log)
	txm := db.NewTransactionManager(gdb)

	env := &Env{
		DB:            gdb,
		Projects:      projects,
		ProjectGuard:  projectApp.NewService(projects, records, txm, recorder, log),
		Households:    repository.NewHouseholdRepository(gdb, log),
		Assistance:    repository.NewAssistanceTypeRepository(gdb, log),
		Entitlements:  repository.NewEntitlementRepository(gdb, log),
		Distributions: repository.NewDistributionRepository(gdb, log),
		Records:       records,
		AuditLog:      auditRepo,
		Recorder:      recorder,
		Tx:            txm,
		Locker:        lock.NewLocalLocker(),
		Logger:        log,
	}
	p := env.Project(t, project.StatusActive)
	require.Equal(t, ProjectID, p.ID())
	return env
}

// Project stores a project moved to status.
func (e *Env) Project(t *testing.T, status project.Status) *project.Project {
	t.Helper()
	p, err := project.NewProject(project.Details{
		Name:        fmt.Sprintf("Project %d", time.Now().UnixNano()),
		CountryCode: "KE",
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}, "tester")
	require.NoError(t, err)
	require.NoError(t, e.Projects.Create(context.Background(), p))

	switch status {
	case project.StatusActive:
		require.NoError(t, p.Activate())
	case project.StatusClosed:
		require.NoError(t, p.Close())
	}
	if status != project.StatusDraft {
		require.NoError(t, e.Projects.Update(context.Background(), p))
	}
	return p
}

func (e *Env) Household(t *testing.T, regNo string) *household.Household {
	t.Helper()
	h, err := household.NewHousehold(ProjectID, regNo, nil, "Block A", []*household.Beneficiary{
		{FirstName: "Amina", LastName: "Yusuf", Gender: household.GenderFemale, IsHead: true},
	})
	require.NoError(t, err)
	require.NoError(t, e.Households.Create(context.Background(), h))
	return h
}

func (e *Env) AssistanceType(t *testing.T, name string) *assistance.AssistanceType {
	t.Helper()
	a, err := assistance.NewAssistanceType(ProjectID, name, assistance.KindCash, "transfer", decimal.NewFromInt(1), "USD")
	require.NoError(t, err)
	require.NoError(t, e.Assistance.Create(context.Background(), a))
	return a
}

func (e *Env) Entitlement(t *testing.T, h *household.Household, a *assistance.AssistanceType, total string) *entitlement.Entitlement {
	t.Helper()
	ent, err := entitlement.NewEntitlement(h.ID(), a.ID(), decimal.RequireFromString(total))
	require.NoError(t, err)
	require.NoError(t, e.Entitlements.Create(context.Background(), ent))
	return ent
}

func (e *Env) Distribution(t *testing.T, name string) *distribution.Distribution {
	t.Helper()
	d, err := distribution.NewDistribution(ProjectID, name, time.Now().UTC(), nil, "tester")
	require.NoError(t, err)
	require.NoError(t, e.Distributions.Create(context.Background(), d))
	return d
}

// Funded creates n households, each with an entitlement of total for a shared cash type.
func (e *Env) Funded(t *testing.T, n int, total string) (*assistance.AssistanceType, []*household.Household, []*entitlement.Entitlement) {
	t.Helper()
	at := e.AssistanceType(t, fmt.Sprintf("Cash %d", time.Now().UnixNano()))
	households := make([]*household.Household, 0, n)
	ents := make([]*entitlement.Entitlement, 0, n)
	for i := 0; i < n; i++ {
		h := e.Household(t, fmt.Sprintf("HH-%d-%d", at.ID(), i))
		households = append(households, h)
		ents = append(ents, e.Entitlement(t, h, at, total))
	}
	return at, households, ents
}

func (e *Env) Balance(t *testing.T, entitlementID uint) entitlement.Balance {
	t.Helper()
	ent, err := e.Entitlements.GetByID(context.Background(), entitlementID)
	require.NoError(t, err)
	return ent.Balance()
}
