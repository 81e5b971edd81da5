package processors

import (
	"github.com/username/acctfolio/src/models"
)

// CostBasisProcessor tracks weighted-average cost basis over one symbol's
// chronological transaction stream and prices the remainder at currentPrice.
// Callers holding a multi-symbol stream split it with GroupBySymbol first.
type CostBasisProcessor interface {
	Process(transactions []models.Transaction, currentPrice float64) (models.CostBasisResult, error)
}

// FifoProcessor computes closed-trade profit percentages by consuming buy
// lots in first-in-first-out order.
type FifoProcessor interface {
	Process(transactions []models.Transaction) ([]models.ClosedTradePerformance, error)
}

// TradeProcessor segments a transaction stream per symbol into discrete
// OPEN/CLOSED trades.
type TradeProcessor interface {
	Process(transactions []models.Transaction) ([]models.Trade, error)
}

// TwrProcessor annotates a portfolio value series with cumulative
// time-weighted return percentages.
type TwrProcessor interface {
	Process(series []models.SnapshotPoint) []models.TwrPoint
}

// ProjectionProcessor produces the monthly compound-growth schedule for the
// goal-planning calculator.
type ProjectionProcessor interface {
	Process(input models.ProjectionInput) (models.ProjectionResult, error)
}
