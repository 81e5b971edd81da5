package processors

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/username/acctfolio/src/models"
	"github.com/username/acctfolio/src/utils"
)

// costBasisProcessorImpl implements the CostBasisProcessor interface.
type costBasisProcessorImpl struct{}

// NewCostBasisProcessor creates a new instance of CostBasisProcessor.
func NewCostBasisProcessor() CostBasisProcessor {
	return &costBasisProcessorImpl{}
}

// Process replays the transaction stream in ascending date order, maintaining
// quantity and cost basis under the weighted-average method. Buy commissions
// are capitalized into the basis; sell commissions reduce proceeds. A sell
// larger than the tracked inventory rejects the whole batch.
func (p *costBasisProcessorImpl) Process(transactions []models.Transaction, currentPrice float64) (models.CostBasisResult, error) {
	sorted := sortTransactionsByDate(transactions)

	quantity := decimal.Zero
	costBasis := decimal.Zero
	realized := decimal.Zero
	totalCommission := decimal.Zero

	for _, tx := range sorted {
		commission := decimal.NewFromFloat(tx.Commission)
		totalCommission = totalCommission.Add(commission)

		switch tx.Type {
		case models.TxBuy:
			qty := decimal.NewFromFloat(tx.Quantity)
			quantity = quantity.Add(qty)
			costBasis = costBasis.Add(qty.Mul(decimal.NewFromFloat(tx.Price))).Add(commission)

		case models.TxSell:
			sellQty := decimal.NewFromFloat(tx.Quantity)
			if quantity.IsZero() || sellQty.Sub(quantity).GreaterThan(utils.EpsilonDec) {
				return models.CostBasisResult{}, &models.InsufficientInventoryError{
					Symbol:    tx.Symbol,
					Requested: tx.Quantity,
					Available: quantity.InexactFloat64(),
				}
			}
			if sellQty.GreaterThan(quantity) {
				sellQty = quantity
			}

			avgCost := costBasis.Div(quantity)
			costOfSold := avgCost.Mul(sellQty)
			revenue := sellQty.Mul(decimal.NewFromFloat(tx.Price)).Sub(commission)
			realized = realized.Add(revenue.Sub(costOfSold))
			costBasis = costBasis.Sub(costOfSold)
			quantity = quantity.Sub(sellQty)
		}
	}

	// Selling exactly the remaining quantity must zero both figures; clamp
	// the float residue the caller-supplied numbers can leave behind.
	if utils.NearZeroDec(quantity) {
		quantity = decimal.Zero
		costBasis = decimal.Zero
	}

	marketValue := quantity.Mul(decimal.NewFromFloat(currentPrice))
	unrealized := marketValue.Sub(costBasis)
	percentChange := 0.0
	if costBasis.IsPositive() {
		percentChange = utils.RoundFloat(unrealized.Div(costBasis).InexactFloat64()*100, 6)
	}

	return models.CostBasisResult{
		Quantity:         quantity.InexactFloat64(),
		TotalCost:        costBasis.InexactFloat64(),
		TotalCommission:  totalCommission.InexactFloat64(),
		RealizedProfit:   realized.InexactFloat64(),
		MarketValue:      marketValue.InexactFloat64(),
		UnrealizedProfit: unrealized.InexactFloat64(),
		TotalProfit:      realized.Add(unrealized).InexactFloat64(),
		PercentChange:    percentChange,
	}, nil
}

// sortTransactionsByDate returns a copy of the transactions in ascending date
// order. The sort is stable: equal timestamps keep their original relative
// order. Dates are validated upstream; an unparseable date sorts to the front.
func sortTransactionsByDate(transactions []models.Transaction) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, _ := utils.ParseDate(sorted[i].Date)
		tj, _ := utils.ParseDate(sorted[j].Date)
		return ti.Before(tj)
	})
	return sorted
}

// GroupBySymbol splits a transaction stream per symbol, preserving order.
// Transactions without a symbol (pure cash movements) are skipped.
func GroupBySymbol(transactions []models.Transaction) map[string][]models.Transaction {
	grouped := make(map[string][]models.Transaction)
	for _, tx := range transactions {
		if tx.Symbol == "" {
			continue
		}
		grouped[tx.Symbol] = append(grouped[tx.Symbol], tx)
	}
	return grouped
}
