package household

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/cva/internal/application/common"
	"github.com/reliefops/cva/internal/application/household/dto"
	"github.com/reliefops/cva/internal/domain/household"
	"github.com/reliefops/cva/internal/interfaces/http/handlers/testutil"
	"github.com/reliefops/cva/internal/shared/logger"
)

type mockService struct {
	registerFn func(ctx context.Context, req dto.RegisterHouseholdRequest) (*dto.HouseholdResponse, error)
	listFn     func(ctx context.Context, filter household.ListFilter) ([]*dto.HouseholdResponse, int64, error)
	changed    []string
	changeErr  error
}

func (m *mockService) Register(ctx context.Context, req dto.RegisterHouseholdRequest) (*dto.HouseholdResponse, error) {
	return m.registerFn(ctx, req)
}

func (m *mockService) Get(_ context.Context, id uint) (*dto.HouseholdResponse, error) {
	return &dto.HouseholdResponse{ID: id}, nil
}

func (m *mockService) List(ctx context.Context, filter household.ListFilter) ([]*dto.HouseholdResponse, int64, error) {
	return m.listFn(ctx, filter)
}

func (m *mockService) record(action string, id uint) (*dto.HouseholdResponse, error) {
	m.changed = append(m.changed, action)
	if m.changeErr != nil {
		return nil, m.changeErr
	}
	return &dto.HouseholdResponse{ID: id}, nil
}

func (m *mockService) GiveConsent(_ context.Context, id uint) (*dto.HouseholdResponse, error) {
	return m.record("consent", id)
}

func (m *mockService) Enroll(_ context.Context, id uint) (*dto.HouseholdResponse, error) {
	return m.record("enroll", id)
}

func (m *mockService) Activate(_ context.Context, id uint) (*dto.HouseholdResponse, error) {
	return m.record("activate", id)
}

func (m *mockService) Deactivate(_ context.Context, id uint) (*dto.HouseholdResponse, error) {
	return m.record("deactivate", id)
}

func TestRegister(t *testing.T) {
	svc := &mockService{
		registerFn: func(_ context.Context, req dto.RegisterHouseholdRequest) (*dto.HouseholdResponse, error) {
			if req.RegistrationNumber == "HH-DUP" {
				return nil, common.ToAppError(household.ErrDuplicateRegistration, "failed")
			}
			return &dto.HouseholdResponse{ID: 1, RegistrationNumber: req.RegistrationNumber}, nil
		},
	}
	h := NewHandler(svc, logger.NewNopLogger())

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"created", `{"project_id":1,"registration_number":"HH-1","members":[{"first_name":"Amina","last_name":"Yusuf","is_head":true}]}`, http.StatusCreated},
		{"duplicate", `{"project_id":1,"registration_number":"HH-DUP"}`, http.StatusConflict},
		{"missing registration number", `{"project_id":1}`, http.StatusBadRequest},
		{"bad member email", `{"project_id":1,"registration_number":"HH-2","members":[{"first_name":"A","last_name":"B","email":"nope"}]}`, http.StatusBadRequest},
		{"bad gender", `{"project_id":1,"registration_number":"HH-3","members":[{"first_name":"A","last_name":"B","gender":"x"}]}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/households", tt.body)
			h.Register(c)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestLifecycle(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/households/3/consent", nil)
	testutil.SetURLParam(c, "id", "3")
	h.GiveConsent(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/v1/households/3/enroll", nil)
	testutil.SetURLParam(c, "id", "3")
	h.Enroll(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/v1/households/3/activate", nil)
	testutil.SetURLParam(c, "id", "3")
	h.Activate(c)
	assert.Equal(t, http.StatusOK, w.Code)

	svc.changeErr = common.ToAppError(household.ErrInvalidState, "failed")
	c, w = testutil.NewTestContext(http.MethodPost, "/api/v1/households/3/deactivate", nil)
	testutil.SetURLParam(c, "id", "3")
	h.Deactivate(c)
	assert.Equal(t, http.StatusConflict, w.Code)

	assert.Equal(t, []string{"consent", "enroll", "activate", "deactivate"}, svc.changed)
}

func TestList(t *testing.T) {
	var got household.ListFilter
	svc := &mockService{
		listFn: func(_ context.Context, filter household.ListFilter) ([]*dto.HouseholdResponse, int64, error) {
			got = filter
			return []*dto.HouseholdResponse{}, 0, nil
		},
	}
	h := NewHandler(svc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/households", nil)
	testutil.SetQueryParams(c, map[string]string{"project_id": "2", "status": "enrolled"})
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(2), got.ProjectID)
	assert.Equal(t, household.StatusEnrolled, got.Status)
	assert.Equal(t, 1, got.Page)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/v1/households", nil)
	testutil.SetQueryParams(c, map[string]string{"project_id": "zero"})
	h.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
