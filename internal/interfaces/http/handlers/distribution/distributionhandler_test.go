package distribution

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/cva/internal/application/common"
	"github.com/reliefops/cva/internal/application/distribution/dto"
	"github.com/reliefops/cva/internal/application/distribution/usecases"
	"github.com/reliefops/cva/internal/domain/distribution"
	"github.com/reliefops/cva/internal/domain/entitlement"
	"github.com/reliefops/cva/internal/domain/reconciliation"
	"github.com/reliefops/cva/internal/interfaces/http/handlers/testutil"
	"github.com/reliefops/cva/internal/shared/authorization"
	"github.com/reliefops/cva/internal/shared/logger"
)

type fixture struct {
	handler  *Handler
	create   *mockCreate
	status   *mockChangeStatus
	plan     *mockPlan
	confirm  *mockConfirm
	queries  *mockQuerier
	reporter *mockSummarizer
}

func newFixture() *fixture {
	f := &fixture{
		create:   &mockCreate{},
		status:   &mockChangeStatus{},
		plan:     &mockPlan{},
		confirm:  &mockConfirm{},
		queries:  &mockQuerier{},
		reporter: &mockSummarizer{},
	}
	f.handler = NewHandler(f.create, f.status, f.plan, f.confirm, f.queries, f.reporter, logger.NewNopLogger())
	return f
}

func TestConfirmRecord_Success(t *testing.T) {
	f := newFixture()
	var got usecases.ConfirmRecordCommand
	var gotActor string
	f.confirm.fn = func(ctx context.Context, cmd usecases.ConfirmRecordCommand) (*dto.ConfirmRecordResponse, error) {
		got = cmd
		gotActor = authorization.ActorFromContext(ctx).ID
		remaining := decimal.NewFromInt(60)
		return &dto.ConfirmRecordResponse{
			Record:    &dto.RecordResponse{ID: cmd.RecordID, Status: string(cmd.Status)},
			Remaining: &remaining,
		}, nil
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/distribution-records/7/confirm",
		`{"status":"distributed","actual_amount":"40","notes":"paid in full"}`)
	testutil.SetURLParam(c, "id", "7")
	testutil.SetActor(c, "enumerator-3", authorization.RoleFieldStaff)

	f.handler.ConfirmRecord(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), got.RecordID)
	assert.Equal(t, distribution.RecordStatusDistributed, got.Status)
	require.NotNil(t, got.ActualAmount)
	assert.True(t, got.ActualAmount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "paid in full", got.Notes)
	assert.Equal(t, "enumerator-3", gotActor)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data struct {
		Remaining string `json:"remaining"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "60", data.Remaining)
}

func TestConfirmRecord_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"insufficient balance", entitlement.ErrInsufficientBalance, http.StatusUnprocessableEntity, "unprocessable"},
		{"distribution closed", distribution.ErrDistributionClosed, http.StatusConflict, "conflict"},
		{"already finalized", distribution.ErrAlreadyFinalized, http.StatusConflict, "conflict"},
		{"invalid outcome", distribution.ErrInvalidOutcome, http.StatusBadRequest, "validation_error"},
		{"invalid amount", distribution.ErrInvalidAmount, http.StatusBadRequest, "validation_error"},
		{"unknown record", distribution.ErrRecordNotFound, http.StatusNotFound, "not_found"},
		{"unexpected", assert.AnError, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.confirm.fn = func(context.Context, usecases.ConfirmRecordCommand) (*dto.ConfirmRecordResponse, error) {
				return nil, common.ToAppError(tt.err, "failed to confirm record")
			}

			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/distribution-records/1/confirm",
				`{"status":"partial","actual_amount":"5"}`)
			testutil.SetURLParam(c, "id", "1")

			f.handler.ConfirmRecord(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantType, resp.Error.Type)
		})
	}
}

func TestConfirmRecord_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		param string
		body  string
	}{
		{"non numeric id", "abc", `{"status":"distributed","actual_amount":"1"}`},
		{"zero id", "0", `{"status":"distributed","actual_amount":"1"}`},
		{"malformed json", "1", `{"status":`},
		{"missing status", "1", `{"actual_amount":"1"}`},
		{"amount not a number", "1", `{"status":"distributed","actual_amount":"ten"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.confirm.fn = func(context.Context, usecases.ConfirmRecordCommand) (*dto.ConfirmRecordResponse, error) {
				t.Fatal("use case must not be called")
				return nil, nil
			}

			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/distribution-records/"+tt.param+"/confirm", tt.body)
			testutil.SetURLParam(c, "id", tt.param)

			f.handler.ConfirmRecord(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, f.confirm.calls)
		})
	}
}

func TestPlan(t *testing.T) {
	f := newFixture()
	f.plan.fn = func(_ context.Context, cmd usecases.PlanDistributionCommand) (*dto.PlanDistributionResponse, error) {
		ids := make([]uint, 0, len(cmd.Items))
		for i := range cmd.Items {
			ids = append(ids, uint(100+i))
		}
		return &dto.PlanDistributionResponse{DistributionID: cmd.DistributionID, RecordIDs: ids}, nil
	}

	body := `{"items":[
		{"household_id":1,"assistance_type_id":2,"planned_amount":"50"},
		{"household_id":3,"assistance_type_id":2,"planned_amount":"25.5"}
	]}`
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/distributions/9/plan", body)
	testutil.SetURLParam(c, "id", "9")

	f.handler.Plan(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data dto.PlanDistributionResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, uint(9), data.DistributionID)
	assert.Equal(t, []uint{100, 101}, data.RecordIDs)
}

func TestPlan_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no items", `{"items":[]}`},
		{"zero amount", `{"items":[{"household_id":1,"assistance_type_id":2,"planned_amount":"0"}]}`},
		{"negative amount", `{"items":[{"household_id":1,"assistance_type_id":2,"planned_amount":"-3"}]}`},
		{"missing household", `{"items":[{"assistance_type_id":2,"planned_amount":"3"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/distributions/9/plan", tt.body)
			testutil.SetURLParam(c, "id", "9")

			f.handler.Plan(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, f.plan.calls)
		})
	}
}

func TestLifecycleEndpoints(t *testing.T) {
	f := newFixture()

	run := func(handle func(*Handler, *gin.Context), id string) int {
		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/distributions/"+id, nil)
		testutil.SetURLParam(c, "id", id)
		handle(f.handler, c)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, run((*Handler).Start, "4"))
	assert.Equal(t, http.StatusOK, run((*Handler).Complete, "4"))
	assert.Equal(t, http.StatusOK, run((*Handler).Cancel, "5"))

	require.Len(t, f.status.calls, 3)
	assert.Equal(t, usecases.ChangeStatusCommand{DistributionID: 4, Transition: usecases.TransitionStart}, f.status.calls[0])
	assert.Equal(t, usecases.TransitionComplete, f.status.calls[1].Transition)
	assert.Equal(t, usecases.ChangeStatusCommand{DistributionID: 5, Transition: usecases.TransitionCancel}, f.status.calls[2])

	f.status.err = common.ToAppError(distribution.ErrInvalidState, "failed")
	assert.Equal(t, http.StatusConflict, run((*Handler).Start, "4"))
}

func TestList_PassesFilter(t *testing.T) {
	f := newFixture()
	var got distribution.ListFilter
	f.queries.listFn = func(_ context.Context, filter distribution.ListFilter) ([]*dto.DistributionResponse, int64, error) {
		got = filter
		return []*dto.DistributionResponse{{ID: 1}}, 41, nil
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/distributions", nil)
	testutil.SetQueryParams(c, map[string]string{
		"project_id": "3",
		"status":     "in_progress",
		"page":       "2",
		"page_size":  "20",
	})

	f.handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, distribution.ListFilter{ProjectID: 3, Status: distribution.StatusInProgress, Page: 2, PageSize: 20}, got)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, int64(41), list.Total)
	assert.Equal(t, 3, list.TotalPages)
}

func TestSummary(t *testing.T) {
	f := newFixture()
	f.reporter.fn = func(_ context.Context, id uint) (*reconciliation.Summary, error) {
		if id != 12 {
			return nil, common.ToAppError(distribution.ErrDistributionNotFound, "failed")
		}
		return &reconciliation.Summary{
			DistributionID: 12,
			PlannedTotal:   decimal.NewFromInt(950),
			ActualTotal:    decimal.NewFromInt(450),
			Variance:       decimal.NewFromInt(-500),
			ByStatus:       map[distribution.RecordStatus]int64{distribution.RecordStatusDistributed: 1},
		}, nil
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/distributions/12/summary", nil)
	testutil.SetURLParam(c, "id", "12")
	f.handler.Summary(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"variance":"-500"`)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/v1/distributions/13/summary", nil)
	testutil.SetURLParam(c, "id", "13")
	f.handler.Summary(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
