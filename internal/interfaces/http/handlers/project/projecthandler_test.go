package project

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/cva/internal/application/common"
	"github.com/reliefops/cva/internal/application/project/dto"
	"github.com/reliefops/cva/internal/domain/project"
	"github.com/reliefops/cva/internal/interfaces/http/handlers/testutil"
	"github.com/reliefops/cva/internal/shared/logger"
)

type mockService struct {
	created   []dto.ProjectRequest
	filter    project.ListFilter
	changed   []string
	changeErr error
}

func (m *mockService) Create(_ context.Context, req dto.ProjectRequest) (*dto.ProjectResponse, error) {
	m.created = append(m.created, req)
	return &dto.ProjectResponse{ID: 1, Name: req.Name, Status: "draft"}, nil
}

func (m *mockService) Get(_ context.Context, id uint) (*dto.ProjectResponse, error) {
	if id == 404 {
		return nil, common.ToAppError(project.ErrProjectNotFound, "failed")
	}
	return &dto.ProjectResponse{ID: id}, nil
}

func (m *mockService) List(_ context.Context, filter project.ListFilter) ([]*dto.ProjectResponse, int64, error) {
	m.filter = filter
	return []*dto.ProjectResponse{}, 0, nil
}

func (m *mockService) record(action string, id uint) (*dto.ProjectResponse, error) {
	m.changed = append(m.changed, action)
	if m.changeErr != nil {
		return nil, m.changeErr
	}
	return &dto.ProjectResponse{ID: id}, nil
}

func (m *mockService) Update(_ context.Context, id uint, _ dto.ProjectRequest) (*dto.ProjectResponse, error) {
	return m.record("update", id)
}

func (m *mockService) Activate(_ context.Context, id uint) (*dto.ProjectResponse, error) {
	return m.record("activate", id)
}

func (m *mockService) Close(_ context.Context, id uint) (*dto.ProjectResponse, error) {
	return m.record("close", id)
}

func (m *mockService) Summary(_ context.Context, id uint) (*project.Summary, error) {
	return &project.Summary{
		ProjectID:          id,
		Status:             project.StatusActive,
		Budget:             decimal.NewFromInt(300),
		Distributed:        decimal.NewFromInt(100),
		Remaining:          decimal.NewFromInt(200),
		DistributedPercent: decimal.RequireFromString("33.33"),
	}, nil
}

func TestCreate(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, logger.NewNopLogger())

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"created", `{"name":"Flood Response","country_code":"ke","start_date":"2026-03-01T00:00:00Z"}`, http.StatusCreated},
		{"missing name", `{"country_code":"KE","start_date":"2026-03-01T00:00:00Z"}`, http.StatusBadRequest},
		{"three letter country", `{"name":"X","country_code":"KEN","start_date":"2026-03-01T00:00:00Z"}`, http.StatusBadRequest},
		{"missing start date", `{"name":"X","country_code":"KE"}`, http.StatusBadRequest},
		{"malformed", `{"name":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/projects", tt.body)
			h.Create(c)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	require.Len(t, svc.created, 1)
	assert.Equal(t, "Flood Response", svc.created[0].Name)
}

func TestGet(t *testing.T) {
	h := NewHandler(&mockService{}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/projects/404", nil)
	testutil.SetURLParam(c, "id", "404")
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/v1/projects/abc", nil)
	testutil.SetURLParam(c, "id", "abc")
	h.Get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLifecycle(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/v1/projects/2",
		`{"name":"Renamed","country_code":"SO","start_date":"2026-03-01T00:00:00Z"}`)
	testutil.SetURLParam(c, "id", "2")
	h.Update(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/v1/projects/2/activate", nil)
	testutil.SetURLParam(c, "id", "2")
	h.Activate(c)
	assert.Equal(t, http.StatusOK, w.Code)

	svc.changeErr = common.ToAppError(project.ErrOpenDistributions, "failed")
	c, w = testutil.NewTestContext(http.MethodPost, "/api/v1/projects/2/close", nil)
	testutil.SetURLParam(c, "id", "2")
	h.Close(c)
	assert.Equal(t, http.StatusConflict, w.Code)

	assert.Equal(t, []string{"update", "activate", "close"}, svc.changed)
}

func TestList(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/projects", nil)
	testutil.SetQueryParams(c, map[string]string{"country": "ug", "status": "closed", "page_size": "5"})
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "UG", svc.filter.CountryCode)
	assert.Equal(t, project.StatusClosed, svc.filter.Status)
	assert.Equal(t, 5, svc.filter.PageSize)
}

func TestSummary(t *testing.T) {
	h := NewHandler(&mockService{}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/projects/7/summary", nil)
	testutil.SetURLParam(c, "id", "7")
	h.Summary(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			ProjectID          uint   `json:"project_id"`
			Remaining          string `json:"remaining"`
			DistributedPercent string `json:"distributed_percent"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint(7), body.Data.ProjectID)
	assert.Equal(t, "200", body.Data.Remaining)
	assert.Equal(t, "33.33", body.Data.DistributedPercent)
}
