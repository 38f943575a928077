package http

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	assistanceApp "github.com/reliefops/cva/internal/application/assistance"
	auditApp "github.com/reliefops/cva/internal/application/audit"
	"github.com/reliefops/cva/internal/application/distribution/usecases"
	entitlementApp "github.com/reliefops/cva/internal/application/entitlement"
	householdApp "github.com/reliefops/cva/internal/application/household"
	notificationApp "github.com/reliefops/cva/internal/application/notification"
	projectApp "github.com/reliefops/cva/internal/application/project"
	reconciliationApp "github.com/reliefops/cva/internal/application/reconciliation"
	"github.com/reliefops/cva/internal/domain/reconciliation"
	"github.com/reliefops/cva/internal/infrastructure/cache"
	"github.com/reliefops/cva/internal/infrastructure/config"
	"github.com/reliefops/cva/internal/infrastructure/email"
	"github.com/reliefops/cva/internal/infrastructure/lock"
	"github.com/reliefops/cva/internal/shared/db"
	"github.com/reliefops/cva/internal/shared/logger"
	"github.com/reliefops/cva/internal/shared/services/markdown"
)

// Services are the application services behind the HTTP API. The CLI seed
// command builds the same set without an HTTP engine.
type Services struct {
	Recorder   *auditApp.Recorder
	Ledger     *entitlementApp.Ledger
	Projects   *projectApp.Service
	Households *householdApp.Service
	Assistance *assistanceApp.Service
	Reporter   *reconciliationApp.Reporter

	CreateDistribution *usecases.CreateDistributionUseCase
	ChangeStatus       *usecases.ChangeStatusUseCase
	PlanDistribution   *usecases.PlanDistributionUseCase
	ConfirmRecord      *usecases.ConfirmRecordUseCase
	DistributionQuery  *usecases.QueryUseCase
}

// NewServices wires the ledger and its collaborators. rdb may be nil, in which
// case locks are process-local and summaries are not cached.
func NewServices(gdb *gorm.DB, rdb *redis.Client, cfg *config.Config, log logger.Interface) *Services {
	return newServices(newRepositories(gdb, log), gdb, rdb, cfg, log)
}

func newServices(repos *repositories, gdb *gorm.DB, rdb *redis.Client, cfg *config.Config, log logger.Interface) *Services {
	txm := db.NewTransactionManager(gdb)
	recorder := auditApp.NewRecorder(repos.auditLog, log.Named("audit"))
	locker := newLocker(rdb, cfg, log)

	projects := projectApp.NewService(repos.projects, repos.records, txm, recorder, log.Named("project"))
	ledger := entitlementApp.NewLedger(
		repos.entitlements, repos.households, repos.assistance, projects,
		txm, locker, recorder, cfg.Ledger.MaxCASRetries, log.Named("ledger"),
	)

	var summaryCache reconciliation.Cache = cache.NopSummaryCache{}
	if rdb != nil {
		ttl := time.Duration(cfg.Ledger.SummaryCacheTTLMinutes) * time.Minute
		summaryCache = cache.NewRedisSummaryCache(rdb, ttl, log.Named("summary-cache"))
	}
	reporter := reconciliationApp.NewReporter(repos.distributions, repos.records, summaryCache, log.Named("reporter"))

	var notifier usecases.ClosureNotifier
	if cfg.Email.Enabled() {
		notifier = notificationApp.NewClosureReporter(
			repos.distributions,
			reporter,
			markdown.NewReportRenderer(),
			email.NewSMTPEmailService(cfg.Email),
			cfg.Email.ReportTo,
			log.Named("closure-report"),
		)
	} else {
		log.Infow("closure report e-mails disabled, no SMTP host or recipients configured")
	}

	distLog := log.Named("distribution")
	return &Services{
		Recorder:   recorder,
		Ledger:     ledger,
		Projects:   projects,
		Households: householdApp.NewService(repos.households, projects, txm, recorder, log.Named("household")),
		Assistance: assistanceApp.NewService(repos.assistance, projects, txm, recorder, log.Named("assistance")),
		Reporter:   reporter,

		CreateDistribution: usecases.NewCreateDistributionUseCase(repos.distributions, projects, txm, recorder, distLog),
		ChangeStatus:       usecases.NewChangeStatusUseCase(repos.distributions, txm, recorder, notifier, distLog),
		PlanDistribution:   usecases.NewPlanDistributionUseCase(repos.distributions, repos.records, repos.entitlements, txm, recorder, distLog),
		ConfirmRecord:      usecases.NewConfirmRecordUseCase(repos.distributions, repos.records, ledger, txm, locker, recorder, distLog),
		DistributionQuery:  usecases.NewQueryUseCase(repos.distributions, repos.records, distLog),
	}
}

func newLocker(rdb *redis.Client, cfg *config.Config, log logger.Interface) lock.Locker {
	if cfg.Ledger.LockBackend == "redis" {
		if rdb != nil {
			ttl := time.Duration(cfg.Ledger.LockTTLSecond) * time.Second
			return lock.NewRedisLocker(rdb, ttl, log.Named("lock"))
		}
		log.Warnw("ledger.lock_backend is redis but redis is disabled, using local locks")
	}
	return lock.NewLocalLocker()
}
