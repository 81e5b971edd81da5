package processors

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/acctfolio/src/models"
)

func TestProjectionReproducesAnnualRate(t *testing.T) {
	p := NewProjectionProcessor()

	result, err := p.Process(models.ProjectionInput{
		StartingAmount:    1000,
		AnnualRatePercent: 8,
		Years:             1,
		StartDate:         "2023-01-15",
	})
	require.NoError(t, err)
	require.Len(t, result.Monthly, 13)

	// Twelve monthly compoundings of (1.08)^(1/12)-1 must land exactly on
	// the stated 8% annual return; annualRate/12 would overshoot.
	final := result.Monthly[12]
	assert.Equal(t, 12, final.MonthIndex)
	assert.InDelta(t, 1080, final.EndingBalance, 1e-6)
	assert.InDelta(t, 80, final.CumulativeInterest, 1e-6)
	assert.Zero(t, final.CumulativeContribution)
}

func TestProjectionContributionBeforeAccrual(t *testing.T) {
	p := NewProjectionProcessor()

	result, err := p.Process(models.ProjectionInput{
		MonthlyContribution: 100,
		AnnualRatePercent:   12,
		Years:               1,
		StartDate:           "2023-01-01",
	})
	require.NoError(t, err)

	monthlyRate := math.Pow(1.12, 1.0/12) - 1
	first := result.Monthly[1]
	// The contribution lands at the start of the month and accrues interest
	// for that same month.
	assert.InDelta(t, 100*(1+monthlyRate), first.EndingBalance, 1e-9)
	assert.InDelta(t, 100, first.CumulativeContribution, 1e-9)
	assert.InDelta(t, 100*monthlyRate, first.CumulativeInterest, 1e-9)
}

func TestProjectionMonthKeysAnchorOnCalendarMonths(t *testing.T) {
	p := NewProjectionProcessor()

	// A start date late in January must still step through February.
	result, err := p.Process(models.ProjectionInput{
		StartingAmount:    100,
		AnnualRatePercent: 5,
		Years:             1,
		StartDate:         "2023-01-31",
	})
	require.NoError(t, err)

	assert.Equal(t, "2023-01", result.Monthly[0].MonthKey)
	assert.Equal(t, "2023-02", result.Monthly[1].MonthKey)
	assert.Equal(t, "2024-01", result.Monthly[12].MonthKey)
}

func TestProjectionAnnualRollupSumsMonthlyIncrements(t *testing.T) {
	p := NewProjectionProcessor()

	result, err := p.Process(models.ProjectionInput{
		StartingAmount:      1000,
		MonthlyContribution: 50,
		AnnualRatePercent:   6,
		Years:               2,
		StartDate:           "2023-01-01",
	})
	require.NoError(t, err)
	require.Len(t, result.Annual, 3) // 2023 (11 months), 2024, 2025 (1 month)

	var totalDeposit, totalInterest float64
	for _, year := range result.Annual {
		totalDeposit += year.Deposit
		totalInterest += year.Interest
	}
	final := result.Monthly[len(result.Monthly)-1]
	assert.InDelta(t, final.CumulativeContribution, totalDeposit, 1e-9)
	assert.InDelta(t, final.CumulativeInterest, totalInterest, 1e-9)
	assert.InDelta(t, final.EndingBalance, result.Annual[len(result.Annual)-1].EndingBalance, 1e-9)
}

func TestProjectionComparisonLeavesMissingActualsNull(t *testing.T) {
	p := NewProjectionProcessor()

	result, err := p.Process(models.ProjectionInput{
		StartingAmount:    1000,
		AnnualRatePercent: 8,
		Years:             1,
		StartDate:         "2023-01-01",
		ActualSeries: []models.SnapshotPoint{
			{Date: "2023-03-10", TotalValue: 980, TotalInvested: 1000},
			{Date: "2023-03-28", TotalValue: 1020, TotalInvested: 1000},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Comparison, 13)

	matched := 0
	for _, point := range result.Comparison {
		if point.MonthKey == "2023-03" {
			require.NotNil(t, point.Actual)
			// The latest snapshot within the month wins.
			assert.InDelta(t, 1020, *point.Actual, 1e-9)
			matched++
		} else {
			assert.Nil(t, point.Actual)
		}
	}
	assert.Equal(t, 1, matched)
}

func TestProjectionComparisonOmittedWithoutActuals(t *testing.T) {
	p := NewProjectionProcessor()

	result, err := p.Process(models.ProjectionInput{
		StartingAmount:    1000,
		AnnualRatePercent: 8,
		Years:             1,
		StartDate:         "2023-01-01",
	})
	require.NoError(t, err)
	assert.Nil(t, result.Comparison)
}

func TestProjectionRejectsBadInput(t *testing.T) {
	p := NewProjectionProcessor()

	_, err := p.Process(models.ProjectionInput{StartDate: "not-a-date", Years: 1})
	assert.Error(t, err)

	_, err = p.Process(models.ProjectionInput{StartDate: "2023-01-01", Years: 0})
	assert.Error(t, err)
}
