package processors

import (
	"github.com/shopspring/decimal"

	"github.com/username/acctfolio/src/models"
	"github.com/username/acctfolio/src/utils"
)

// fifoLot is one open buy lot awaiting consumption.
type fifoLot struct {
	remaining decimal.Decimal
	unitPrice decimal.Decimal
}

// fifoProcessorImpl implements the FifoProcessor interface.
type fifoProcessorImpl struct{}

// NewFifoProcessor creates a new instance of FifoProcessor.
func NewFifoProcessor() FifoProcessor {
	return &fifoProcessorImpl{}
}

// Process consumes buy lots oldest-first. A single sell can straddle several
// lots; the result is still one aggregated profit percentage per sell, not
// one per lot. This ranking deliberately differs from the weighted-average
// percent of CostBasisProcessor: FIFO feeds closed-trade rankings, the
// average method feeds open positions.
func (p *fifoProcessorImpl) Process(transactions []models.Transaction) ([]models.ClosedTradePerformance, error) {
	sorted := sortTransactionsByDate(transactions)

	lotsBySymbol := make(map[string][]*fifoLot)
	var results []models.ClosedTradePerformance

	for _, tx := range sorted {
		switch tx.Type {
		case models.TxBuy:
			lotsBySymbol[tx.Symbol] = append(lotsBySymbol[tx.Symbol], &fifoLot{
				remaining: decimal.NewFromFloat(tx.Quantity),
				unitPrice: decimal.NewFromFloat(tx.Price),
			})

		case models.TxSell:
			lots := lotsBySymbol[tx.Symbol]
			remaining := decimal.NewFromFloat(tx.Quantity)
			costBasis := decimal.Zero
			soldQty := decimal.Zero

			for remaining.IsPositive() && len(lots) > 0 {
				lot := lots[0]
				matched := decimal.Min(remaining, lot.remaining)
				costBasis = costBasis.Add(matched.Mul(lot.unitPrice))
				soldQty = soldQty.Add(matched)
				lot.remaining = lot.remaining.Sub(matched)
				remaining = remaining.Sub(matched)
				if lot.remaining.IsZero() {
					lots = lots[1:]
				}
			}
			lotsBySymbol[tx.Symbol] = lots

			if remaining.GreaterThan(utils.EpsilonDec) {
				return nil, &models.InsufficientInventoryError{
					Symbol:    tx.Symbol,
					Requested: tx.Quantity,
					Available: soldQty.InexactFloat64(),
				}
			}

			if soldQty.IsPositive() && costBasis.IsPositive() {
				revenue := soldQty.Mul(decimal.NewFromFloat(tx.Price))
				percent := revenue.Sub(costBasis).Div(costBasis).InexactFloat64() * 100
				results = append(results, models.ClosedTradePerformance{
					Symbol:        tx.Symbol,
					ProfitPercent: utils.RoundFloat(percent, 6),
				})
			}
		}
	}

	return results, nil
}
