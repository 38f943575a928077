package household

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/cva/internal/application/apptest"
	"github.com/reliefops/cva/internal/application/household/dto"
	"github.com/reliefops/cva/internal/domain/audit"
	"github.com/reliefops/cva/internal/domain/household"
	"github.com/reliefops/cva/internal/domain/project"
	"github.com/reliefops/cva/internal/shared/constants"
	apperrors "github.com/reliefops/cva/internal/shared/errors"
)

func newService(env *apptest.Env) *Service {
	return NewService(env.Households, env.ProjectGuard, env.Tx, env.Recorder, env.Logger)
}

func registerRequest(regNo string) dto.RegisterHouseholdRequest {
	return dto.RegisterHouseholdRequest{
		ProjectID:          apptest.ProjectID,
		RegistrationNumber: regNo,
		Address:            "Camp 2, Block C",
		Members: []dto.MemberRequest{
			{FirstName: "Omar", LastName: "Said", Gender: "male"},
			{FirstName: "Hodan", LastName: "Said", Gender: "female", IsHead: true},
		},
	}
}

func TestService_Register(t *testing.T) {
	env := apptest.New(t)
	svc := newService(env)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest("REG-001"))
	require.NoError(t, err)
	assert.Equal(t, household.StatusRegistered.String(), resp.Status)
	require.Len(t, resp.Members, 2)
	assert.True(t, resp.Members[0].IsHead, "the head is listed first")

	_, err = svc.Register(ctx, registerRequest("REG-001"))
	assert.ErrorIs(t, err, household.ErrDuplicateRegistration)
	assert.True(t, apperrors.IsConflictError(err))

	twoHeads := registerRequest("REG-002")
	twoHeads.Members[0].IsHead = true
	_, err = svc.Register(ctx, twoHeads)
	assert.ErrorIs(t, err, household.ErrMultipleHeads)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestService_RegisterChecksProject(t *testing.T) {
	env := apptest.New(t)
	svc := newService(env)
	ctx := context.Background()

	unknown := registerRequest("REG-404")
	unknown.ProjectID = 404
	_, err := svc.Register(ctx, unknown)
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
	assert.True(t, apperrors.IsNotFoundError(err))

	draft := registerRequest("REG-DRAFT")
	draft.ProjectID = env.Project(t, project.StatusDraft).ID()
	_, err = svc.Register(ctx, draft)
	assert.NoError(t, err, "a draft project is being set up")

	closed := registerRequest("REG-CLOSED")
	closed.ProjectID = env.Project(t, project.StatusClosed).ID()
	_, err = svc.Register(ctx, closed)
	assert.ErrorIs(t, err, project.ErrProjectClosed)
	assert.True(t, apperrors.IsConflictError(err))

	_, total, err := env.Households.List(ctx, household.ListFilter{ProjectID: closed.ProjectID})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestService_Lifecycle(t *testing.T) {
	env := apptest.New(t)
	svc := newService(env)
	ctx := context.Background()

	h, err := svc.Register(ctx, registerRequest("REG-100"))
	require.NoError(t, err)

	_, err = svc.Activate(ctx, h.ID)
	assert.ErrorIs(t, err, household.ErrInvalidState)

	enrolled, err := svc.Enroll(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, household.StatusEnrolled.String(), enrolled.Status)

	_, err = svc.Activate(ctx, h.ID)
	assert.ErrorIs(t, err, household.ErrConsentRequired)

	consented, err := svc.GiveConsent(ctx, h.ID)
	require.NoError(t, err)
	require.NotNil(t, consented.ConsentDate)

	again, err := svc.GiveConsent(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, consented.Version, again.Version)
	assert.Equal(t, consented.ConsentDate.Unix(), again.ConsentDate.Unix())

	active, err := svc.Activate(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, household.StatusActive.String(), active.Status)

	_, err = svc.Deactivate(ctx, h.ID)
	require.NoError(t, err)

	_, err = svc.GiveConsent(ctx, h.ID)
	assert.ErrorIs(t, err, household.ErrInvalidState)

	_, total, err := env.AuditLog.List(ctx, audit.Filter{TableName: constants.TableHouseholds, RecordID: h.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total, "create, enroll, consent, activate, deactivate")
}

func TestService_GetAndList(t *testing.T) {
	env := apptest.New(t)
	svc := newService(env)
	ctx := context.Background()

	for _, regNo := range []string{"A-1", "A-2", "A-3"} {
		_, err := svc.Register(ctx, registerRequest(regNo))
		require.NoError(t, err)
	}

	list, total, err := svc.List(ctx, household.ListFilter{ProjectID: apptest.ProjectID, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)

	_, err = svc.Get(ctx, 9999)
	assert.True(t, apperrors.IsNotFoundError(err))
}
