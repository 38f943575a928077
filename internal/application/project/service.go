// Package project manages projects and guards writes against closed ones.
package project

import (
	"context"
	"fmt"

	"github.com/reliefops/cva/internal/application/common"
	"github.com/reliefops/cva/internal/application/project/dto"
	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/domain/project"
	"github.com/reliefops/cva/internal/shared/authorization"
	"github.com/reliefops/cva/internal/shared/constants"
	"github.com/reliefops/cva/internal/shared/db"
	"github.com/reliefops/cva/internal/shared/logger"
)

type AuditRecorder interface {
	Record(ctx context.Context, action audit.Action, table string, recordID uint, oldValues, newValues map[string]any) error
}

type Service struct {
	projects project.Repository
	records  distribution.RecordRepository
	txm      db.Transactor
	audit    AuditRecorder
	logger   logger.Interface
}

func NewService(
	projects project.Repository,
	records distribution.RecordRepository,
	txm db.Transactor,
	recorder AuditRecorder,
	log logger.Interface,
) *Service {
	return &Service{
		projects: projects,
		records:  records,
		txm:      txm,
		audit:    recorder,
		logger:   log,
	}
}

func (s *Service) Create(ctx context.Context, req dto.ProjectRequest) (*dto.ProjectResponse, error) {
	actor := authorization.ActorFromContext(ctx)

	p, err := project.NewProject(req.ToDetails(), actor.ID)
	if err != nil {
		return nil, common.ToAppError(err, "invalid project")
	}

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.projects.Create(ctx, p); err != nil {
			return err
		}
		return s.audit.Record(ctx, audit.ActionCreate, constants.TableProjects, p.ID(), nil, projectValues(p))
	})
	if err != nil {
		s.logger.Warnw("failed to create project", "name", req.Name, "error", err)
		return nil, common.ToAppError(err, "failed to create project")
	}

	s.logger.Infow("project created", "project_id", p.ID(), "country", p.CountryCode())
	return dto.ToProjectResponse(p), nil
}

func (s *Service) Get(ctx context.Context, id uint) (*dto.ProjectResponse, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, common.ToAppError(err, "failed to get project")
	}
	return dto.ToProjectResponse(p), nil
}

func (s *Service) List(ctx context.Context, filter project.ListFilter) ([]*dto.ProjectResponse, int64, error) {
	list, total, err := s.projects.List(ctx, filter)
	if err != nil {
		s.logger.Errorw("failed to list projects", "error", err)
		return nil, 0, common.ToAppError(err, "failed to list projects")
	}
	out := make([]*dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ToProjectResponse(p))
	}
	return out, total, nil
}

func (s *Service) Update(ctx context.Context, id uint, req dto.ProjectRequest) (*dto.ProjectResponse, error) {
	return s.change(ctx, id, audit.ActionUpdate, func(ctx context.Context, p *project.Project) error {
		return p.UpdateDetails(req.ToDetails())
	})
}

func (s *Service) Activate(ctx context.Context, id uint) (*dto.ProjectResponse, error) {
	return s.change(ctx, id, audit.ActionStatusChange, func(ctx context.Context, p *project.Project) error {
		return p.Activate()
	})
}

// Close refuses while a distribution of the project is planned or in progress.
func (s *Service) Close(ctx context.Context, id uint) (*dto.ProjectResponse, error) {
	return s.change(ctx, id, audit.ActionStatusChange, func(ctx context.Context, p *project.Project) error {
		stats, err := s.projects.Stats(ctx, p.ID())
		if err != nil {
			return err
		}
		if stats.OpenDistributions > 0 {
			return fmt.Errorf("%w: %d still planned or in progress", project.ErrOpenDistributions, stats.OpenDistributions)
		}
		return p.Close()
	})
}

// Summary rolls up the ledger totals and the distribution records of the project.
func (s *Service) Summary(ctx context.Context, id uint) (*project.Summary, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, common.ToAppError(err, "failed to get project")
	}
	stats, err := s.projects.Stats(ctx, id)
	if err != nil {
		return nil, common.ToAppError(err, "failed to summarize project")
	}
	agg, err := s.records.AggregateByProject(ctx, id)
	if err != nil {
		return nil, common.ToAppError(err, "failed to summarize project")
	}
	return project.Summarize(p, stats, agg), nil
}

// EnsureWritable fails with ErrProjectNotFound or ErrProjectClosed. Inside a
// transaction the project row stays share-locked until commit, so a concurrent
// Close waits for the caller's write.
func (s *Service) EnsureWritable(ctx context.Context, projectID uint) error {
	p, err := s.projects.GetByIDForShare(ctx, projectID)
	if err != nil {
		return err
	}
	return p.AcceptsWrites()
}

func (s *Service) change(ctx context.Context, id uint, action audit.Action, fn func(ctx context.Context, p *project.Project) error) (*dto.ProjectResponse, error) {
	var p *project.Project
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.projects.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		before := projectValues(p)
		if err := fn(ctx, p); err != nil {
			return err
		}
		if err := s.projects.Update(ctx, p); err != nil {
			return err
		}
		return s.audit.Record(ctx, action, constants.TableProjects, p.ID(), before, projectValues(p))
	})
	if err != nil {
		s.logger.Warnw("project change rejected", "project_id", id, "action", string(action), "error", err)
		return nil, common.ToAppError(err, "failed to update project")
	}

	s.logger.Infow("project changed", "project_id", id, "action", string(action), "status", p.Status().String())
	return dto.ToProjectResponse(p), nil
}

func projectValues(p *project.Project) map[string]any {
	values := map[string]any{
		"name":         p.Name(),
		"country_code": p.CountryCode(),
		"start_date":   p.StartDate().Format("2006-01-02"),
		"finance_code": p.FinanceCode(),
		"status":       p.Status().String(),
		"version":      p.Version(),
	}
	if p.EndDate() != nil {
		values["end_date"] = p.EndDate().Format("2006-01-02")
	}
	return values
}
