package models

// Request bodies for the accounting endpoints. Every request carries the full
// input payload; the engine keeps no state between calls.

type CostBasisRequest struct {
	Transactions []Transaction `json:"transactions"`
	CurrentPrice float64       `json:"currentPrice"`
}

type TransactionsRequest struct {
	Transactions []Transaction `json:"transactions"`
}

type TwrRequest struct {
	Series []SnapshotPoint `json:"series"`
}

type PerformanceRequest struct {
	Transactions  []Transaction      `json:"transactions"`
	CurrentPrices map[string]float64 `json:"currentPrices"`
}
