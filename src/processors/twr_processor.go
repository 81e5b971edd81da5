package processors

import (
	"sort"

	"github.com/username/acctfolio/src/models"
	"github.com/username/acctfolio/src/utils"
)

// twrProcessorImpl implements the TwrProcessor interface.
type twrProcessorImpl struct{}

// NewTwrProcessor creates a new instance of TwrProcessor.
func NewTwrProcessor() TwrProcessor {
	return &twrProcessorImpl{}
}

// Process chains sub-period returns between consecutive snapshots, with each
// interval's net cash flow (the invested delta) subtracted from the ending
// value before the return is taken. The result is a return series that does
// not move when the caller merely deposits or withdraws cash.
//
// Intervals starting from a zero or negative value carry the cumulative
// factor forward unchanged: there is no meaningful return from a zero base.
func (p *twrProcessorImpl) Process(series []models.SnapshotPoint) []models.TwrPoint {
	sorted := make([]models.SnapshotPoint, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, _ := utils.ParseDate(sorted[i].Date)
		tj, _ := utils.ParseDate(sorted[j].Date)
		return ti.Before(tj)
	})

	points := make([]models.TwrPoint, 0, len(sorted))
	cumulative := 1.0

	for i, point := range sorted {
		if i > 0 {
			prev := sorted[i-1]
			cashFlow := point.TotalInvested - prev.TotalInvested
			if prev.TotalValue > 0 {
				periodReturn := (point.TotalValue - cashFlow - prev.TotalValue) / prev.TotalValue
				cumulative *= 1 + periodReturn
			}
		}
		points = append(points, models.TwrPoint{
			SnapshotPoint: point,
			TwrPercent:    utils.RoundFloat((cumulative-1)*100, 6),
		})
	}

	return points
}
