package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/domain/entitlement"
	"github.com/reliefops/cva/internal/domain/household"
	"github.com/reliefops/cva/internal/domain/project"
	apperrors "github.com/reliefops/cva/internal/shared/errors"
)

func TestToAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"entitlement not found", entitlement.ErrEntitlementNotFound, http.StatusNotFound},
		{"no entitlement", fmt.Errorf("plan: %w", distribution.ErrNoEntitlement), http.StatusNotFound},
		{"duplicate", entitlement.ErrDuplicateEntitlement, http.StatusConflict},
		{"already finalized", distribution.ErrAlreadyFinalized, http.StatusConflict},
		{"closed", distribution.ErrDistributionClosed, http.StatusConflict},
		{"invalid state", fmt.Errorf("%w: cannot activate", household.ErrInvalidState), http.StatusConflict},
		{"invalid amount", entitlement.ErrInvalidAmount, http.StatusBadRequest},
		{"invalid outcome", distribution.ErrInvalidOutcome, http.StatusBadRequest},
		{"project not found", project.ErrProjectNotFound, http.StatusNotFound},
		{"project closed", fmt.Errorf("%w: project 3", project.ErrProjectClosed), http.StatusConflict},
		{"open distributions", project.ErrOpenDistributions, http.StatusConflict},
		{"invalid project", project.ErrInvalidProject, http.StatusBadRequest},
		{"insufficient balance", entitlement.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToAppError(tt.err, "operation failed")

			appErr := apperrors.GetAppError(got)
			if assert.NotNil(t, appErr) {
				assert.Equal(t, tt.wantCode, appErr.Code)
			}
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestToAppError_PassesThrough(t *testing.T) {
	assert.NoError(t, ToAppError(nil, "x"))

	original := apperrors.NewForbiddenError("nope")
	assert.Same(t, original, ToAppError(original, "x"))
}
