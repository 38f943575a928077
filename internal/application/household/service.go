// Package household registers households and moves them through enrolment.
package household

import (
	"context"
	"time"

	"github.com/reliefops/cva/internal/application/common"
	"github.com/reliefops/cva/internal/application/household/dto"
	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/domain/household"
	"github.com/reliefops/cva/internal/shared/constants"
	"github.com/reliefops/cva/internal/shared/db"
	apperrors "github.com/reliefops/cva/internal/shared/errors"
	"github.com/reliefops/cva/internal/shared/logger"
)

type AuditRecorder interface {
	Record(ctx context.Context, action audit.Action, table string, recordID uint, oldValues, newValues map[string]any) error
}

type Service struct {
	households household.Repository
	projects   common.ProjectGuard
	txm        db.Transactor
	audit      AuditRecorder
	logger     logger.Interface
}

func NewService(households household.Repository, projects common.ProjectGuard, txm db.Transactor, recorder AuditRecorder, log logger.Interface) *Service {
	return &Service{
		households: households,
		projects:   projects,
		txm:        txm,
		audit:      recorder,
		logger:     log,
	}
}

func (s *Service) Register(ctx context.Context, req dto.RegisterHouseholdRequest) (*dto.HouseholdResponse, error) {
	members := make([]*household.Beneficiary, 0, len(req.Members))
	for _, m := range req.Members {
		members = append(members, m.ToBeneficiary())
	}

	h, err := household.NewHousehold(req.ProjectID, req.RegistrationNumber, req.LocationID, req.Address, members)
	if err != nil {
		return nil, common.ToAppError(err, "invalid household")
	}

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.projects.EnsureWritable(ctx, h.ProjectID()); err != nil {
			return err
		}
		if err := s.households.Create(ctx, h); err != nil {
			return err
		}
		return s.audit.Record(ctx, audit.ActionCreate, constants.TableHouseholds, h.ID(), nil, householdValues(h))
	})
	if err != nil {
		s.logger.Warnw("failed to register household",
			"registration_number", req.RegistrationNumber,
			"error", err)
		return nil, common.ToAppError(err, "failed to register household")
	}

	s.logger.Infow("household registered", "household_id", h.ID(), "members", len(members))
	return dto.ToHouseholdResponse(h), nil
}

func (s *Service) Get(ctx context.Context, id uint) (*dto.HouseholdResponse, error) {
	h, err := s.households.GetByID(ctx, id)
	if err != nil {
		return nil, common.ToAppError(err, "failed to get household")
	}
	return dto.ToHouseholdResponse(h), nil
}

func (s *Service) List(ctx context.Context, filter household.ListFilter) ([]*dto.HouseholdResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = constants.DefaultPage
	}
	if filter.PageSize < 1 || filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, apperrors.NewValidationError("invalid household status", filter.Status.String())
	}

	list, total, err := s.households.List(ctx, filter)
	if err != nil {
		s.logger.Errorw("failed to list households", "error", err)
		return nil, 0, common.ToAppError(err, "failed to list households")
	}
	return dto.ToHouseholdResponses(list), total, nil
}

// GiveConsent records consent. Repeating it changes nothing.
func (s *Service) GiveConsent(ctx context.Context, id uint) (*dto.HouseholdResponse, error) {
	return s.change(ctx, id, audit.ActionConsent, func(h *household.Household) error {
		return h.GiveConsent(time.Now().UTC())
	})
}

func (s *Service) Enroll(ctx context.Context, id uint) (*dto.HouseholdResponse, error) {
	return s.change(ctx, id, audit.ActionStatusChange, (*household.Household).Enroll)
}

func (s *Service) Activate(ctx context.Context, id uint) (*dto.HouseholdResponse, error) {
	return s.change(ctx, id, audit.ActionStatusChange, (*household.Household).Activate)
}

func (s *Service) Deactivate(ctx context.Context, id uint) (*dto.HouseholdResponse, error) {
	return s.change(ctx, id, audit.ActionStatusChange, (*household.Household).Deactivate)
}

// change loads, mutates and saves a household in one transaction. Nothing is
// written when the mutation leaves the version unchanged.
func (s *Service) change(ctx context.Context, id uint, action audit.Action, fn func(h *household.Household) error) (*dto.HouseholdResponse, error) {
	var h *household.Household
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		h, err = s.households.GetByID(ctx, id)
		if err != nil {
			return err
		}
		before := householdValues(h)
		version := h.Version()

		if err := fn(h); err != nil {
			return err
		}
		if h.Version() == version {
			return nil
		}

		if err := s.households.Update(ctx, h); err != nil {
			return err
		}
		return s.audit.Record(ctx, action, constants.TableHouseholds, h.ID(), before, householdValues(h))
	})
	if err != nil {
		s.logger.Warnw("household change rejected", "household_id", id, "action", action, "error", err)
		return nil, common.ToAppError(err, "failed to update household")
	}
	return dto.ToHouseholdResponse(h), nil
}

func householdValues(h *household.Household) map[string]any {
	return map[string]any{
		"registration_number": h.RegistrationNumber(),
		"status":              h.Status().String(),
		"consent_given":       h.ConsentGiven(),
		"version":             h.Version(),
	}
}
