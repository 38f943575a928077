// Package common holds helpers shared by the application use cases.
package common

import (
	"context"
	"errors"

	"github.com/reliefops/cva/internal/domain/assistance"
	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/domain/entitlement"
	"github.com/reliefops/cva/internal/domain/household"
	"github.com/reliefops/cva/internal/domain/project"
	"github.com/reliefops/cva/internal/infrastructure/lock"
	apperrors "github.com/reliefops/cva/internal/shared/errors"
)

type errorRule struct {
	sentinel error
	build    func(message string, details ...string) *apperrors.AppError
}

// rules are checked in order; the first sentinel matched by errors.Is wins.
var rules = []errorRule{
	{entitlement.ErrEntitlementNotFound, apperrors.NewNotFoundError},
	{household.ErrHouseholdNotFound, apperrors.NewNotFoundError},
	{assistance.ErrAssistanceTypeNotFound, apperrors.NewNotFoundError},
	{distribution.ErrDistributionNotFound, apperrors.NewNotFoundError},
	{distribution.ErrRecordNotFound, apperrors.NewNotFoundError},
	{distribution.ErrNoEntitlement, apperrors.NewNotFoundError},
	{project.ErrProjectNotFound, apperrors.NewNotFoundError},

	{distribution.ErrDistributionClosed, apperrors.NewConflictError},
	{project.ErrProjectClosed, apperrors.NewConflictError},
	{project.ErrInvalidState, apperrors.NewConflictError},
	{project.ErrOpenDistributions, apperrors.NewConflictError},
	{project.ErrVersionConflict, apperrors.NewConflictError},
	{distribution.ErrAlreadyFinalized, apperrors.NewConflictError},
	{distribution.ErrInvalidState, apperrors.NewConflictError},
	{household.ErrInvalidState, apperrors.NewConflictError},
	{entitlement.ErrDuplicateEntitlement, apperrors.NewConflictError},
	{household.ErrDuplicateRegistration, apperrors.NewConflictError},
	{assistance.ErrDuplicateName, apperrors.NewConflictError},
	{entitlement.ErrVersionConflict, apperrors.NewConflictError},
	{distribution.ErrVersionConflict, apperrors.NewConflictError},
	{household.ErrVersionConflict, apperrors.NewConflictError},
	{lock.ErrNotObtained, apperrors.NewConflictError},

	{entitlement.ErrInsufficientBalance, apperrors.NewUnprocessableError},

	{entitlement.ErrInvalidAmount, apperrors.NewValidationError},
	{distribution.ErrInvalidAmount, apperrors.NewValidationError},
	{distribution.ErrInvalidOutcome, apperrors.NewValidationError},
	{distribution.ErrNameRequired, apperrors.NewValidationError},
	{entitlement.ErrHouseholdIDRequired, apperrors.NewValidationError},
	{entitlement.ErrAssistanceTypeIDRequired, apperrors.NewValidationError},
	{household.ErrRegistrationNumberRequired, apperrors.NewValidationError},
	{household.ErrMultipleHeads, apperrors.NewValidationError},
	{household.ErrInvalidMember, apperrors.NewValidationError},
	{household.ErrConsentRequired, apperrors.NewConflictError},
	{assistance.ErrInvalidAssistanceType, apperrors.NewValidationError},
	{project.ErrInvalidProject, apperrors.NewValidationError},
}

// ProjectGuard rejects writes that would add to a missing or closed project.
type ProjectGuard interface {
	EnsureWritable(ctx context.Context, projectID uint) error
}

// ToAppError converts a domain error into an AppError that still unwraps to the
// domain sentinel. AppErrors pass through; anything unrecognised becomes an
// internal error whose message is the fallback.
func ToAppError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	for _, rule := range rules {
		if errors.Is(err, rule.sentinel) {
			return rule.build(err.Error()).WithCause(err)
		}
	}
	return apperrors.NewInternalError(fallback).WithCause(err)
}
