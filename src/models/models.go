package models

// Transaction types accepted by the accounting engine. The wallet view of the
// originating system also labels trades as STOCK_BUY/STOCK_SELL for display,
// but those are not separate accounting types and are rejected here.
const (
	TxBuy      = "BUY"
	TxSell     = "SELL"
	TxDeposit  = "DEPOSIT"
	TxWithdraw = "WITHDRAW"
)

// Trade lifecycle states.
const (
	TradeOpen   = "OPEN"
	TradeClosed = "CLOSED"
)

// Transaction is an immutable record of one trade or cash movement, supplied
// by the caller. TotalCost is the stored quantity*price at trade time; it is
// kept verbatim so historical amounts survive later quote changes.
type Transaction struct {
	ID         string  `json:"id,omitempty"`
	Symbol     string  `json:"symbol,omitempty"`
	Type       string  `json:"type"`
	Quantity   float64 `json:"quantity,omitempty"`
	Price      float64 `json:"price,omitempty"`
	TotalCost  float64 `json:"totalCost,omitempty"`
	Commission float64 `json:"commission,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
	Date       string  `json:"date"`
}

// CostBasisResult is the weighted-average cost basis report for one symbol's
// transaction stream, priced at the caller-supplied current price.
type CostBasisResult struct {
	Quantity         float64 `json:"quantity"`
	TotalCost        float64 `json:"totalCost"`
	TotalCommission  float64 `json:"totalCommission"`
	RealizedProfit   float64 `json:"realizedProfit"`
	MarketValue      float64 `json:"marketValue"`
	UnrealizedProfit float64 `json:"unrealizedProfit"`
	TotalProfit      float64 `json:"totalProfit"`
	PercentChange    float64 `json:"percentChange"`
}

// ClosedTradePerformance is one FIFO-matched sell, aggregated across however
// many buy lots the sell straddled.
type ClosedTradePerformance struct {
	Symbol        string  `json:"symbol"`
	ProfitPercent float64 `json:"profitPercent"`
}

// Trade is a contiguous run of transactions in one symbol from zero net
// quantity back to zero net quantity (or still open).
type Trade struct {
	Symbol              string        `json:"symbol"`
	Status              string        `json:"status"`
	StartDate           string        `json:"startDate"`
	EndDate             string        `json:"endDate,omitempty"`
	Transactions        []Transaction `json:"transactions"`
	NetQuantity         float64       `json:"netQuantity"`
	TotalRealizedProfit float64       `json:"totalRealizedProfit"`
	TotalCommission     float64       `json:"totalCommission"`
}

// SnapshotPoint is one element of a portfolio value time series.
// TotalInvested is the cumulative net cash contributed up to that date.
type SnapshotPoint struct {
	Date          string  `json:"date"`
	TotalValue    float64 `json:"totalValue"`
	TotalInvested float64 `json:"totalInvested"`
}

// TwrPoint is a SnapshotPoint annotated with the cumulative time-weighted
// return percentage up to that date.
type TwrPoint struct {
	SnapshotPoint
	TwrPercent float64 `json:"twrPercent"`
}

// ProjectionPoint is one month of the compound-growth schedule.
type ProjectionPoint struct {
	MonthIndex             int     `json:"monthIndex"`
	MonthKey               string  `json:"monthKey"`
	EndingBalance          float64 `json:"endingBalance"`
	CumulativeContribution float64 `json:"cumulativeContribution"`
	CumulativeInterest     float64 `json:"cumulativeInterest"`
}

// AnnualRollup sums the monthly increments of one calendar year.
type AnnualRollup struct {
	Year          int     `json:"year"`
	Deposit       float64 `json:"deposit"`
	Interest      float64 `json:"interest"`
	EndingBalance float64 `json:"endingBalance"`
}

// ComparisonPoint aligns a projected month against the actual portfolio value
// for the same calendar month. Actual stays null for months with no data yet,
// so charts can distinguish "no data" from "zero value".
type ComparisonPoint struct {
	MonthKey  string   `json:"monthKey"`
	Projected float64  `json:"projected"`
	Actual    *float64 `json:"actual"`
}

// ProjectionInput holds the goal-planning parameters.
type ProjectionInput struct {
	StartingAmount      float64         `json:"startingAmount"`
	MonthlyContribution float64         `json:"monthlyContribution"`
	AnnualRatePercent   float64         `json:"annualRatePercent"`
	Years               int             `json:"years"`
	StartDate           string          `json:"startDate"`
	ActualSeries        []SnapshotPoint `json:"actualSeries,omitempty"`
}

// ProjectionResult is the full growth schedule. Comparison is only present
// when the caller supplied an actual series.
type ProjectionResult struct {
	Monthly    []ProjectionPoint `json:"monthly"`
	Annual     []AnnualRollup    `json:"annual"`
	Comparison []ComparisonPoint `json:"comparison,omitempty"`
}

// SymbolPerformance names one symbol and its profit percentage under a single
// performance definition (weighted-average for open positions, FIFO for
// closed trades). The two definitions are never mixed in one ranking.
type SymbolPerformance struct {
	Symbol        string  `json:"symbol"`
	ProfitPercent float64 `json:"profitPercent"`
}

// PerformanceSummary ranks best/worst performers. Open entries use the
// weighted-average unrealized percent at current prices; Closed entries use
// FIFO closed-trade percentages.
type PerformanceSummary struct {
	BestOpen    *SymbolPerformance `json:"bestOpen"`
	WorstOpen   *SymbolPerformance `json:"worstOpen"`
	BestClosed  *SymbolPerformance `json:"bestClosed"`
	WorstClosed *SymbolPerformance `json:"worstClosed"`
}
