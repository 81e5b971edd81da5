package services

import (
	"github.com/username/acctfolio/src/models"
)

// AccountingService defines the engine's request-scoped operations. Every
// call receives the complete input payload and returns new values; nothing is
// retained between calls beyond the digest-keyed report cache.
type AccountingService interface {
	ComputeCostBasis(req models.CostBasisRequest) (models.CostBasisResult, error)
	ComputeFifoPerformance(req models.TransactionsRequest) ([]models.ClosedTradePerformance, error)
	GroupTrades(req models.TransactionsRequest) ([]models.Trade, error)
	ComputeTwr(req models.TwrRequest) ([]models.TwrPoint, error)
	Project(input models.ProjectionInput) (models.ProjectionResult, error)
	SummarizePerformance(req models.PerformanceRequest) (models.PerformanceSummary, error)
}
