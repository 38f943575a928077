package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assistanceApp "github.com/reliefops/cva/internal/application/assistance"
	"github.com/reliefops/cva/internal/application/apptest"
	entitlementApp "github.com/reliefops/cva/internal/application/entitlement"
	householdApp "github.com/reliefops/cva/internal/application/household"
	"github.com/reliefops/cva/internal/domain/household"
	"github.com/reliefops/cva/internal/domain/project"
	apperrors "github.com/reliefops/cva/internal/shared/errors"
)

const document = `
project_id: 1
assistance_types:
  - name: Cash
    kind: cash
    unit: transfer
    unit_value: "75.00"
    currency: USD
  - name: Food voucher
    kind: voucher
    unit: voucher
    unit_value: "20"
    currency: KES
households:
  - registration_number: HH-001
    address: Camp 1
    consent: true
    members:
      - {first_name: Amina, last_name: Yusuf, gender: female, is_head: true}
      - {first_name: Ali, last_name: Yusuf, gender: male}
    entitlements:
      - {assistance_type: Cash, programme_total: "900"}
      - {assistance_type: Food voucher, programme_total: "240"}
  - registration_number: HH-002
    members:
      - {first_name: Fatuma, last_name: Noor, gender: female, is_head: true}
    entitlements:
      - {assistance_type: Cash, programme_total: "450"}
`

func newSeeder(env *apptest.Env) *Seeder {
	return NewSeeder(
		env.ProjectGuard,
		assistanceApp.NewService(env.Assistance, env.ProjectGuard, env.Tx, env.Recorder, env.Logger),
		householdApp.NewService(env.Households, env.ProjectGuard, env.Tx, env.Recorder, env.Logger),
		entitlementApp.NewLedger(env.Entitlements, env.Households, env.Assistance, env.ProjectGuard, env.Tx, env.Locker, env.Recorder, 3, env.Logger),
		env.Logger,
	)
}

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(document))
	require.NoError(t, err)
	assert.Equal(t, uint(1), f.ProjectID)
	require.Len(t, f.Households, 2)
	assert.Equal(t, "900", f.Households[0].Entitlements[0].ProgrammeTotal.String())

	_, err = Parse(strings.NewReader("project_id: 1\nhouseholds_typo: []\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("households: []\n"))
	assert.ErrorContains(t, err, "project_id")

	_, err = Parse(strings.NewReader("project_id: 1\nproject: {name: Cash, country: KE}\n"))
	assert.ErrorContains(t, err, "exactly one")
}

func TestSeeder_CreatesDescribedProject(t *testing.T) {
	env := apptest.New(t)
	seeder := newSeeder(env)
	ctx := context.Background()

	f, err := Parse(strings.NewReader(`
project: {name: Shelter Response, country: so, start_date: 2026-02-01, finance_code: FC-9}
assistance_types:
  - {name: Cash, kind: cash, unit: transfer, unit_value: "50", currency: USD}
households:
  - registration_number: HH-1
    members: [{first_name: Hodan, last_name: Ali, gender: female, is_head: true}]
    entitlements: [{assistance_type: Cash, programme_total: "150"}]
`))
	require.NoError(t, err)

	res, err := seeder.Apply(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, &Result{Projects: 1, AssistanceTypes: 1, Households: 1, Entitlements: 1}, res)

	list, _, err := env.Projects.List(ctx, project.ListFilter{CountryCode: "SO"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, project.StatusActive, list[0].Status())
	assert.Equal(t, "FC-9", list[0].FinanceCode())

	again, err := seeder.Apply(ctx, f)
	require.NoError(t, err)
	assert.Zero(t, again.Projects)
	assert.Equal(t, 4, again.Skipped)
}

func TestSeeder_ClosedProjectRejected(t *testing.T) {
	env := apptest.New(t)
	closed := env.Project(t, project.StatusClosed)

	f := &File{ProjectID: closed.ID(), AssistanceTypes: []AssistanceType{
		{Name: "Cash", Kind: "cash", Unit: "transfer", UnitValue: decimal.NewFromInt(50), Currency: "USD"},
	}}
	_, err := newSeeder(env).Apply(context.Background(), f)
	assert.ErrorIs(t, err, project.ErrProjectClosed)
	assert.True(t, apperrors.IsConflictError(err))
}

func TestSeeder_Apply(t *testing.T) {
	env := apptest.New(t)
	seeder := newSeeder(env)
	ctx := context.Background()

	f, err := Parse(strings.NewReader(document))
	require.NoError(t, err)

	res, err := seeder.Apply(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, &Result{AssistanceTypes: 2, Households: 2, Entitlements: 3}, res)

	list, _, err := env.Households.List(ctx, household.ListFilter{ProjectID: 1, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, h := range list {
		assert.Equal(t, household.StatusEnrolled, h.Status(), "an entitlement enrolls the household")
	}

	again, err := seeder.Apply(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 4, again.Skipped)
	assert.Zero(t, again.Households)
}

func TestSeeder_UnknownAssistanceType(t *testing.T) {
	env := apptest.New(t)
	f, err := Parse(strings.NewReader(`
project_id: 1
households:
  - registration_number: HH-9
    entitlements: [{assistance_type: Shelter, programme_total: "10"}]
`))
	require.NoError(t, err)

	_, err = newSeeder(env).Apply(context.Background(), f)
	assert.ErrorContains(t, err, "Shelter")
}
