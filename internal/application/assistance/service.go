// Package assistance manages the catalogue of benefits a project hands out.
package assistance

import (
	"context"

	"github.com/reliefops/cva/internal/application/assistance/dto"
	"github.com/reliefops/cva/internal/application/common"
	"github.com/reliefops/cva/internal/domain/assistance"
	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/shared/constants"
	"github.com/reliefops/cva/internal/shared/db"
	"github.com/reliefops/cva/internal/shared/logger"
)

type AuditRecorder interface {
	Record(ctx context.Context, action audit.Action, table string, recordID uint, oldValues, newValues map[string]any) error
}

type Service struct {
	types    assistance.Repository
	projects common.ProjectGuard
	txm      db.Transactor
	audit    AuditRecorder
	logger   logger.Interface
}

func NewService(types assistance.Repository, projects common.ProjectGuard, txm db.Transactor, recorder AuditRecorder, log logger.Interface) *Service {
	return &Service{
		types:    types,
		projects: projects,
		txm:      txm,
		audit:    recorder,
		logger:   log,
	}
}

func (s *Service) Create(ctx context.Context, req dto.CreateAssistanceTypeRequest) (*dto.AssistanceTypeResponse, error) {
	a, err := assistance.NewAssistanceType(req.ProjectID, req.Name, assistance.Kind(req.Kind), req.Unit, req.UnitValue, req.CurrencyCode)
	if err != nil {
		return nil, common.ToAppError(err, "invalid assistance type")
	}

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.projects.EnsureWritable(ctx, a.ProjectID()); err != nil {
			return err
		}
		if err := s.types.Create(ctx, a); err != nil {
			return err
		}
		return s.audit.Record(ctx, audit.ActionCreate, constants.TableAssistanceTypes, a.ID(), nil, map[string]any{
			"name":       a.Name(),
			"kind":       string(a.Kind()),
			"unit_value": a.UnitValue().String(),
			"currency":   a.Currency(),
		})
	})
	if err != nil {
		s.logger.Warnw("failed to create assistance type", "name", req.Name, "error", err)
		return nil, common.ToAppError(err, "failed to create assistance type")
	}

	s.logger.Infow("assistance type created", "assistance_type_id", a.ID(), "name", a.Name())
	return dto.ToAssistanceTypeResponse(a), nil
}

func (s *Service) Get(ctx context.Context, id uint) (*dto.AssistanceTypeResponse, error) {
	a, err := s.types.GetByID(ctx, id)
	if err != nil {
		return nil, common.ToAppError(err, "failed to get assistance type")
	}
	return dto.ToAssistanceTypeResponse(a), nil
}

func (s *Service) ListByProject(ctx context.Context, projectID uint) ([]*dto.AssistanceTypeResponse, error) {
	list, err := s.types.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Errorw("failed to list assistance types", "project_id", projectID, "error", err)
		return nil, common.ToAppError(err, "failed to list assistance types")
	}
	out := make([]*dto.AssistanceTypeResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToAssistanceTypeResponse(a))
	}
	return out, nil
}
