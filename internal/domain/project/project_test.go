package project

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/cva/internal/domain/distribution"
)

func details() Details {
	return Details{
		Name:        " Cash for Shelter ",
		Description: "Winterisation top-ups",
		CountryCode: "ke",
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		FinanceCode: "FC-2026-01",
	}
}

func TestNewProject(t *testing.T) {
	p, err := NewProject(details(), "pm-1")
	require.NoError(t, err)

	assert.Equal(t, "Cash for Shelter", p.Name())
	assert.Equal(t, "KE", p.CountryCode())
	assert.Equal(t, StatusDraft, p.Status())
	assert.Equal(t, "pm-1", p.CreatedBy())
	assert.Equal(t, 1, p.Version())
	assert.NoError(t, p.AcceptsWrites())
}

func TestNewProject_Validation(t *testing.T) {
	before := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		modify func(d *Details)
	}{
		{"missing name", func(d *Details) { d.Name = "  " }},
		{"missing start date", func(d *Details) { d.StartDate = time.Time{} }},
		{"end before start", func(d *Details) { d.EndDate = &before }},
		{"unknown country", func(d *Details) { d.CountryCode = "QQ" }},
		{"numeric region", func(d *Details) { d.CountryCode = "419" }},
		{"long finance code", func(d *Details) { d.FinanceCode = string(make([]byte, 51)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := details()
			tt.modify(&d)
			_, err := NewProject(d, "pm-1")
			assert.ErrorIs(t, err, ErrInvalidProject)
		})
	}
}

func TestProject_Lifecycle(t *testing.T) {
	p, _ := NewProject(details(), "pm-1")

	require.NoError(t, p.Activate())
	assert.Equal(t, StatusActive, p.Status())
	assert.ErrorIs(t, p.Activate(), ErrInvalidState)

	require.NoError(t, p.Close())
	assert.Equal(t, 3, p.Version())
	assert.ErrorIs(t, p.AcceptsWrites(), ErrProjectClosed)
	assert.ErrorIs(t, p.Activate(), ErrInvalidState)
	assert.ErrorIs(t, p.UpdateDetails(details()), ErrProjectClosed)
}

func TestProject_DraftCanClose(t *testing.T) {
	p, _ := NewProject(details(), "pm-1")
	require.NoError(t, p.Close())
	assert.Equal(t, StatusClosed, p.Status())
}

func TestProject_UpdateDetails(t *testing.T) {
	p, _ := NewProject(details(), "pm-1")

	d := details()
	end := d.StartDate.AddDate(1, 0, 0)
	d.EndDate = &end
	d.CountryCode = "SO"
	require.NoError(t, p.UpdateDetails(d))
	assert.Equal(t, "SO", p.CountryCode())
	assert.Equal(t, end, *p.EndDate())
	assert.Equal(t, 2, p.Version())

	d.Name = ""
	assert.ErrorIs(t, p.UpdateDetails(d), ErrInvalidProject)
	assert.Equal(t, "Cash for Shelter", p.Name())
}

func TestSummarize(t *testing.T) {
	p, err := ReconstructProject(7, "Cash", "", "KE", time.Now(), nil, "", StatusActive, "pm-1", time.Now(), time.Now(), 2)
	require.NoError(t, err)

	stats := &Stats{
		Households:        3,
		Distributions:     2,
		OpenDistributions: 1,
		Budget:            decimal.RequireFromString("900.00"),
		Distributed:       decimal.RequireFromString("300.00"),
	}
	agg := &distribution.Aggregate{ByStatus: []distribution.StatusTotals{
		{Status: distribution.RecordStatusDistributed, Count: 2, Planned: decimal.RequireFromString("250.00"), Actual: decimal.RequireFromString("250.00")},
		{Status: distribution.RecordStatusPartial, Count: 1, Planned: decimal.RequireFromString("100.00"), Actual: decimal.RequireFromString("50.00")},
		{Status: distribution.RecordStatusPending, Count: 1, Planned: decimal.RequireFromString("75.00"), Actual: decimal.Zero},
	}}

	s := Summarize(p, stats, agg)
	assert.Equal(t, uint(7), s.ProjectID)
	assert.Equal(t, int64(3), s.Households)
	assert.Equal(t, "600", s.Remaining.String())
	assert.Equal(t, "33.33", s.DistributedPercent.String())
	assert.Equal(t, "425", s.PlannedTotal.String())
	assert.Equal(t, "300", s.ActualTotal.String())
	assert.Equal(t, int64(4), s.RecordCount)
	assert.Equal(t, int64(1), s.RecordsByStatus[distribution.RecordStatusPartial])
}

func TestSummarize_Empty(t *testing.T) {
	p, err := ReconstructProject(1, "Cash", "", "KE", time.Now(), nil, "", StatusDraft, "pm-1", time.Now(), time.Now(), 1)
	require.NoError(t, err)

	s := Summarize(p, &Stats{Budget: decimal.Zero, Distributed: decimal.Zero}, nil)
	assert.True(t, s.DistributedPercent.IsZero())
	assert.True(t, s.PlannedTotal.IsZero())
	assert.Empty(t, s.RecordsByStatus)
}
