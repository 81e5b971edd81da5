package processors

import (
	"fmt"
	"math"
	"time"

	"github.com/username/acctfolio/src/models"
	"github.com/username/acctfolio/src/utils"
)

// projectionProcessorImpl implements the ProjectionProcessor interface.
type projectionProcessorImpl struct{}

// NewProjectionProcessor creates a new instance of ProjectionProcessor.
func NewProjectionProcessor() ProjectionProcessor {
	return &projectionProcessorImpl{}
}

// Process builds the monthly compound-growth schedule. The contribution is
// applied at the start of each month, before that month's interest accrues.
func (p *projectionProcessorImpl) Process(input models.ProjectionInput) (models.ProjectionResult, error) {
	start, err := utils.ParseDate(input.StartDate)
	if err != nil {
		return models.ProjectionResult{}, err
	}
	if input.Years < 1 {
		return models.ProjectionResult{}, fmt.Errorf("projection requires at least one year, got %d", input.Years)
	}

	// Monthly rate such that twelve compoundings reproduce the stated annual
	// return exactly. annualRate/12 would understate the compounding.
	monthlyRate := math.Pow(1+input.AnnualRatePercent/100, 1.0/12) - 1

	// Month stepping anchors on the first of the month so that a start date
	// late in a month cannot skip short months.
	base := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)

	months := input.Years * 12
	balance := input.StartingAmount
	contribution := 0.0
	interest := 0.0

	monthly := make([]models.ProjectionPoint, 0, months+1)
	monthly = append(monthly, models.ProjectionPoint{
		MonthIndex:    0,
		MonthKey:      utils.MonthKey(base),
		EndingBalance: balance,
	})

	annualIndex := make(map[int]int)
	var annual []models.AnnualRollup

	for m := 1; m <= months; m++ {
		balance += input.MonthlyContribution
		contribution += input.MonthlyContribution
		accrued := balance * monthlyRate
		balance += accrued
		interest += accrued

		date := base.AddDate(0, m, 0)
		monthly = append(monthly, models.ProjectionPoint{
			MonthIndex:             m,
			MonthKey:               utils.MonthKey(date),
			EndingBalance:          balance,
			CumulativeContribution: contribution,
			CumulativeInterest:     interest,
		})

		year := date.Year()
		idx, ok := annualIndex[year]
		if !ok {
			idx = len(annual)
			annualIndex[year] = idx
			annual = append(annual, models.AnnualRollup{Year: year})
		}
		annual[idx].Deposit += input.MonthlyContribution
		annual[idx].Interest += accrued
		annual[idx].EndingBalance = balance
	}

	result := models.ProjectionResult{Monthly: monthly, Annual: annual}
	if input.ActualSeries != nil {
		result.Comparison = buildComparison(monthly, input.ActualSeries)
	}
	return result, nil
}

// buildComparison aligns the projected schedule against the actual portfolio
// history by calendar-month key. Months without actual data keep a null
// actual, never zero, so charts can tell "no data yet" from "worthless".
func buildComparison(monthly []models.ProjectionPoint, actualSeries []models.SnapshotPoint) []models.ComparisonPoint {
	type dated struct {
		at    time.Time
		value float64
	}
	latestByMonth := make(map[string]dated)
	for _, point := range actualSeries {
		t, err := utils.ParseDate(point.Date)
		if err != nil {
			continue
		}
		key := utils.MonthKey(t)
		if existing, ok := latestByMonth[key]; !ok || t.After(existing.at) {
			latestByMonth[key] = dated{at: t, value: point.TotalValue}
		}
	}

	comparison := make([]models.ComparisonPoint, 0, len(monthly))
	for _, point := range monthly {
		cp := models.ComparisonPoint{MonthKey: point.MonthKey, Projected: point.EndingBalance}
		if entry, ok := latestByMonth[point.MonthKey]; ok {
			value := entry.value
			cp.Actual = &value
		}
		comparison = append(comparison, cp)
	}
	return comparison
}
