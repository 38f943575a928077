package http

import (
	"github.com/reliefops/cva/internal/interfaces/http/handlers"
	assistancehandlers "github.com/reliefops/cva/internal/interfaces/http/handlers/assistance"
	audithandlers "github.com/reliefops/cva/internal/interfaces/http/handlers/audit"
	distributionhandlers "github.com/reliefops/cva/internal/interfaces/http/handlers/distribution"
	entitlementhandlers "github.com/reliefops/cva/internal/interfaces/http/handlers/entitlement"
	householdhandlers "github.com/reliefops/cva/internal/interfaces/http/handlers/household"
	projecthandlers "github.com/reliefops/cva/internal/interfaces/http/handlers/project"
	"github.com/reliefops/cva/internal/shared/logger"
)

type allHandlers struct {
	health       *handlers.HealthHandler
	project      *projecthandlers.Handler
	household    *householdhandlers.Handler
	assistance   *assistancehandlers.Handler
	entitlement  *entitlementhandlers.Handler
	distribution *distributionhandlers.Handler
	audit        *audithandlers.Handler
}

func newHandlers(svcs *Services, db handlers.Pinger, version string, log logger.Interface) *allHandlers {
	return &allHandlers{
		health:      handlers.NewHealthHandler(db, version, log),
		project:     projecthandlers.NewHandler(svcs.Projects, log),
		household:   householdhandlers.NewHandler(svcs.Households, log),
		assistance:  assistancehandlers.NewHandler(svcs.Assistance, log),
		entitlement: entitlementhandlers.NewHandler(svcs.Ledger, log),
		distribution: distributionhandlers.NewHandler(
			svcs.CreateDistribution,
			svcs.ChangeStatus,
			svcs.PlanDistribution,
			svcs.ConfirmRecord,
			svcs.DistributionQuery,
			svcs.Reporter,
			log,
		),
		audit: audithandlers.NewHandler(svcs.Recorder, log),
	}
}
